package quizsession

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu         sync.Mutex
	quiz       *Quiz
	items      map[string]*Item
	genErr     error
	itemErr    map[string]error
	submitErr  error
	fetched    []string
	submitted  []AnswerSubmission
	correctFor map[string]string
	gates      map[string]chan struct{}
}

// newFakeAPI builds a quiz of blocks, each one content item plus three
// questions whose correct answer is the first option.
func newFakeAPI(blocks ...string) *fakeAPI {
	api := &fakeAPI{
		quiz:       &Quiz{ID: "quiz-1"},
		items:      map[string]*Item{},
		itemErr:    map[string]error{},
		correctFor: map[string]string{},
		gates:      map[string]chan struct{}{},
	}
	for b, kind := range blocks {
		id := fmt.Sprintf("c%d", b)
		api.quiz.Items = append(api.quiz.Items, ItemRef{ID: id, Type: kind})
		api.items[id] = &Item{ID: id, QuestionText: "passage", Options: []string{}, ContentType: kind}
		for q := 0; q < 3; q++ {
			qid := fmt.Sprintf("q%d-%d", b, q)
			api.quiz.Items = append(api.quiz.Items, ItemRef{ID: qid, Type: "mcq"})
			api.items[qid] = &Item{ID: qid, QuestionText: "question", Options: []string{"A", "B", "C"}, ContentType: "mcq"}
			api.correctFor[qid] = "A"
		}
	}
	return api
}

func (f *fakeAPI) GenerateQuiz(_ context.Context, _ string) (*Quiz, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.quiz, nil
}

func (f *fakeAPI) Item(_ context.Context, id string) (*Item, error) {
	f.mu.Lock()
	gate := f.gates[id]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, id)
	if err := f.itemErr[id]; err != nil {
		return nil, err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return item, nil
}

func (f *fakeAPI) SubmitAnswer(_ context.Context, in AnswerSubmission) (*AnswerOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, in)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &AnswerOutcome{IsCorrect: in.SelectedOption == f.correctFor[in.QuizItemID], CorrectOption: f.correctFor[in.QuizItemID]}, nil
}

func tickN(t *testing.T, s *Session, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, s.Tick(context.Background()))
	}
}

func TestSession_FullWalkthrough(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI("text", "audio", "visual")
	clock := NewManualClock(time.Unix(0, 0))
	s := New(api, "subject-1", WithClock(clock))

	assert.Equal(t, StateLoading, s.View().State)
	require.NoError(t, s.Start(ctx))

	for block := 0; block < 3; block++ {
		v := s.View()
		require.Equal(t, StateTiming, v.State, "block %d", block)
		assert.Equal(t, ContentSeconds, v.Remaining)
		assert.Equal(t, 12, v.Total)

		tickN(t, s, ContentSeconds-1)
		assert.Equal(t, StateTiming, s.View().State)
		assert.Equal(t, 1, s.View().Remaining)
		tickN(t, s, 1)

		for q := 0; q < 3; q++ {
			v := s.View()
			require.Equal(t, StateAwaitingAnswer, v.State)
			clock.Advance(1500 * time.Millisecond)
			option := "A"
			if q == 2 {
				option = "B"
			}
			require.NoError(t, s.Answer(ctx, option))
		}
	}

	assert.Equal(t, StateFinished, s.View().State)
	assert.Nil(t, s.View().Item)

	s.Wait()
	res := s.Results()
	assert.Equal(t, Results{Submitted: 9, Correct: 6, Failed: 0}, res)
	assert.Empty(t, s.Failures())

	require.Len(t, api.submitted, 9)
	for _, sub := range api.submitted {
		assert.EqualValues(t, 1500, sub.TimeTakenMs)
	}
}

func TestSession_FetchesLazily(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI("text")
	s := New(api, "subject-1", WithClock(NewManualClock(time.Unix(0, 0))))

	require.NoError(t, s.Start(ctx))
	assert.Equal(t, []string{"c0"}, api.fetched)

	tickN(t, s, ContentSeconds)
	assert.Equal(t, []string{"c0", "q0-0"}, api.fetched)
}

func TestSession_PresentingVisibleWhileFetching(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI("text")
	release := make(chan struct{})
	api.gates["q0-0"] = release
	s := New(api, "subject-1", WithClock(NewManualClock(time.Unix(0, 0))))

	require.NoError(t, s.Start(ctx))
	tickN(t, s, ContentSeconds-1)

	done := make(chan error, 1)
	go func() { done <- s.Tick(ctx) }()

	assert.Eventually(t, func() bool {
		return s.View().State == StatePresenting
	}, time.Second, 5*time.Millisecond)

	v := s.View()
	assert.Equal(t, 1, v.Index)
	assert.Nil(t, v.Item)
	assert.ErrorIs(t, s.Answer(ctx, "A"), ErrWrongState)
	require.NoError(t, s.Tick(ctx))

	close(release)
	require.NoError(t, <-done)

	v = s.View()
	assert.Equal(t, StateAwaitingAnswer, v.State)
	require.NotNil(t, v.Item)
	assert.Equal(t, "q0-0", v.Item.ID)
}

func TestSession_LoadingVisibleWhileGenerating(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI("text")
	release := make(chan struct{})
	gated := &gatedGenerateAPI{fakeAPI: api, release: release, entered: make(chan struct{})}
	s := New(gated, "subject-1", WithClock(NewManualClock(time.Unix(0, 0))))

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	<-gated.entered
	assert.Equal(t, StateLoading, s.View().State)
	assert.ErrorIs(t, s.Start(ctx), ErrWrongState)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateTiming, s.View().State)
}

type gatedGenerateAPI struct {
	*fakeAPI
	release chan struct{}
	entered chan struct{}
}

func (g *gatedGenerateAPI) GenerateQuiz(ctx context.Context, subjectID string) (*Quiz, error) {
	close(g.entered)
	<-g.release
	return g.fakeAPI.GenerateQuiz(ctx, subjectID)
}

func TestSession_TickIgnoredOutsideTiming(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI("text")
	s := New(api, "subject-1", WithClock(NewManualClock(time.Unix(0, 0))))

	require.NoError(t, s.Start(ctx))
	tickN(t, s, ContentSeconds)
	require.Equal(t, StateAwaitingAnswer, s.View().State)

	tickN(t, s, 100)
	assert.Equal(t, StateAwaitingAnswer, s.View().State)
	assert.Equal(t, 1, s.View().Index)
}

func TestSession_AnswerValidation(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI("text")
	s := New(api, "subject-1", WithClock(NewManualClock(time.Unix(0, 0))))

	require.NoError(t, s.Start(ctx))
	assert.ErrorIs(t, s.Answer(ctx, "A"), ErrWrongState)

	tickN(t, s, ContentSeconds)
	assert.ErrorIs(t, s.Answer(ctx, "Z"), ErrUnknownOption)
	assert.Equal(t, 1, s.View().Index)
}

func TestSession_GenerationFailure(t *testing.T) {
	api := newFakeAPI("text")
	api.genErr = errors.New("boom")
	s := New(api, "subject-1")

	err := s.Start(context.Background())
	require.Error(t, err)

	v := s.View()
	assert.Equal(t, StateFailed, v.State)
	assert.ErrorContains(t, v.Err, "boom")
	assert.ErrorIs(t, s.Start(context.Background()), ErrWrongState)
}

func TestSession_ItemFetchFailure(t *testing.T) {
	api := newFakeAPI("text")
	api.itemErr["q0-0"] = errors.New("unreachable")
	s := New(api, "subject-1", WithClock(NewManualClock(time.Unix(0, 0))))

	require.NoError(t, s.Start(context.Background()))
	for i := 0; i < ContentSeconds-1; i++ {
		require.NoError(t, s.Tick(context.Background()))
	}
	require.Error(t, s.Tick(context.Background()))
	assert.Equal(t, StateFailed, s.View().State)
}

func TestSession_SubmissionFailuresObservable(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI("text")
	api.submitErr = errors.New("server down")
	s := New(api, "subject-1", WithClock(NewManualClock(time.Unix(0, 0))))

	require.NoError(t, s.Start(ctx))
	tickN(t, s, ContentSeconds)
	require.NoError(t, s.Answer(ctx, "A"))
	require.NoError(t, s.Answer(ctx, "B"))

	s.Wait()
	failures := s.Failures()
	require.Len(t, failures, 2)
	ids := []string{failures[0].ItemID, failures[1].ItemID}
	assert.ElementsMatch(t, []string{"q0-0", "q0-1"}, ids)
	assert.Equal(t, 2, s.Results().Failed)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_answer", StateAwaitingAnswer.String())
	assert.True(t, StateFinished.Terminal())
	assert.False(t, StateTiming.Terminal())
}
