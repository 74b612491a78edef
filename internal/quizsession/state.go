package quizsession

import "fmt"

// State is the phase of a quiz-taking session.
type State int

const (
	StateLoading        State = iota // Waiting for quiz generation
	StatePresenting                  // Fetching the item under the pointer
	StateTiming                      // Content item on screen, countdown running
	StateAwaitingAnswer              // Question on screen, no timeout
	StateFinished                    // Pointer ran past the last item
	StateFailed                      // Generation or item fetch failed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePresenting:
		return "presenting"
	case StateTiming:
		return "timing"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateFinished:
		return "finished"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the session can no longer change state.
func (s State) Terminal() bool {
	return s == StateFinished || s == StateFailed
}
