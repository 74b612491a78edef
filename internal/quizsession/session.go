package quizsession

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

// ContentSeconds is how long a content item stays on screen.
const ContentSeconds = 30

var (
	ErrWrongState    = errors.New("action not allowed in current state")
	ErrUnknownOption = errors.New("option is not one of the rendered options")
)

// View is a point-in-time copy of what the session shows.
type View struct {
	State     State
	Index     int
	Total     int
	Item      *Item
	Remaining int
	Err       error
}

// Results counts what came back from answer submissions.
type Results struct {
	Submitted int
	Correct   int
	Failed    int
}

type Option func(*Session)

func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// Session walks a generated quiz one item at a time. It is driven from a
// single loop: Start once, then Tick every second and Answer on input.
type Session struct {
	api       API
	clock     Clock
	subjectID string
	submitter *Submitter

	mu          sync.Mutex
	state       State
	starting    bool
	quiz        *Quiz
	index       int
	seq         int
	current     *Item
	remaining   int
	presentedAt time.Time
	err         error

	resultsMu sync.Mutex
	results   Results
	failures  []SubmissionResult
}

func New(api API, subjectID string, opts ...Option) *Session {
	s := &Session{
		api:       api,
		clock:     realClock{},
		subjectID: subjectID,
		state:     StateLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.submitter = NewSubmitter(api, s.recordSubmission)
	return s
}

// Start requests a fresh quiz and presents its first item. The lock is
// released while the quiz is generated so View keeps reporting Loading.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading || s.quiz != nil || s.starting {
		return ErrWrongState
	}
	s.starting = true

	s.mu.Unlock()
	quiz, err := s.api.GenerateQuiz(ctx, s.subjectID)
	s.mu.Lock()
	s.starting = false

	if err != nil {
		return s.fail(fmt.Errorf("generate quiz: %w", err))
	}
	if len(quiz.Items) == 0 {
		return s.fail(errors.New("generate quiz: no items returned"))
	}

	config.WithContext(ctx).WithField("quiz_id", quiz.ID).Infof("Quiz ready with %d items", len(quiz.Items))
	s.quiz = quiz
	return s.present(ctx, 0)
}

// Tick counts a content item down by one second and advances at zero.
// Outside Timing it does nothing.
func (s *Session) Tick(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateTiming {
		return nil
	}
	s.remaining--
	if s.remaining > 0 {
		return nil
	}
	return s.present(ctx, s.index+1)
}

// Answer submits option for the question on screen in the background and
// advances right away.
func (s *Session) Answer(ctx context.Context, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingAnswer {
		return ErrWrongState
	}
	if !slices.Contains(s.current.Options, option) {
		return ErrUnknownOption
	}

	elapsed := s.clock.Now().Sub(s.presentedAt)
	s.submitter.Submit(ctx, AnswerSubmission{
		QuizItemID:     s.current.ID,
		SelectedOption: option,
		TimeTakenMs:    elapsed.Milliseconds(),
	})

	return s.present(ctx, s.index+1)
}

// present moves the pointer to index and fetches that item. It is called
// with s.mu held and drops it for the fetch, so View reports Presenting
// until the item arrives. A result for a pointer that has since moved is
// discarded.
func (s *Session) present(ctx context.Context, index int) error {
	s.index = index
	s.current = nil
	s.remaining = 0
	s.seq++

	if index >= len(s.quiz.Items) {
		s.state = StateFinished
		return nil
	}

	s.state = StatePresenting
	seq := s.seq
	ref := s.quiz.Items[index]

	s.mu.Unlock()
	item, err := s.api.Item(ctx, ref.ID)
	s.mu.Lock()

	if s.seq != seq || s.state != StatePresenting {
		return nil
	}
	if err != nil {
		return s.fail(fmt.Errorf("fetch item %s: %w", ref.ID, err))
	}

	s.current = item
	s.presentedAt = s.clock.Now()
	if item.IsQuestion() {
		s.state = StateAwaitingAnswer
	} else {
		s.state = StateTiming
		s.remaining = ContentSeconds
	}
	return nil
}

func (s *Session) fail(err error) error {
	s.state = StateFailed
	s.err = err
	return err
}

func (s *Session) recordSubmission(r SubmissionResult) {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()

	s.results.Submitted++
	switch {
	case r.Err != nil:
		s.results.Failed++
		s.failures = append(s.failures, r)
	case r.IsCorrect:
		s.results.Correct++
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		State:     s.state,
		Index:     s.index,
		Item:      s.current,
		Remaining: s.remaining,
		Err:       s.err,
	}
	if s.quiz != nil {
		v.Total = len(s.quiz.Items)
	}
	return v
}

// Wait blocks until all answer submissions have reported.
func (s *Session) Wait() {
	s.submitter.Wait()
}

func (s *Session) Results() Results {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	return s.results
}

// Failures lists submissions that did not reach the server.
func (s *Session) Failures() []SubmissionResult {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	return slices.Clone(s.failures)
}
