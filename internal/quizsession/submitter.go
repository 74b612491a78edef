package quizsession

import (
	"context"
	"sync"
	"time"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

// SubmitTimeout bounds a single background answer submission.
const SubmitTimeout = 15 * time.Second

type SubmissionResult struct {
	ItemID    string
	IsCorrect bool
	Err       error
}

// Submitter posts answers in the background so the session can advance
// without waiting. Every submission ends in exactly one onDone call.
type Submitter struct {
	api    API
	onDone func(SubmissionResult)
	wg     sync.WaitGroup
}

func NewSubmitter(api API, onDone func(SubmissionResult)) *Submitter {
	if onDone == nil {
		onDone = func(SubmissionResult) {}
	}
	return &Submitter{api: api, onDone: onDone}
}

func (s *Submitter) Submit(ctx context.Context, in AnswerSubmission) {
	s.wg.Add(1)

	// Detached from ctx: the session moves on while this is in flight.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SubmitTimeout)

	go func() {
		defer s.wg.Done()
		defer cancel()

		result := SubmissionResult{ItemID: in.QuizItemID}
		outcome, err := s.api.SubmitAnswer(ctx, in)
		if err != nil {
			config.WithContext(ctx).WithError(err).WithField("item_id", in.QuizItemID).Warn("Answer submission failed")
			result.Err = err
		} else {
			result.IsCorrect = outcome.IsCorrect
		}
		s.onDone(result)
	}()
}

// Wait blocks until every submission so far has reported.
func (s *Submitter) Wait() {
	s.wg.Wait()
}
