package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrAuth        = errors.New("unauthorized")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
)

// MinSubtopics is how many subtopics a subject needs before a quiz can be built.
const MinSubtopics = 3

type InsufficientSubtopicsError struct {
	SubjectID string
	Have      int
}

func (e *InsufficientSubtopicsError) Error() string {
	return fmt.Sprintf("subject %s has %d subtopics, need at least %d", e.SubjectID, e.Have, MinSubtopics)
}

// ContentGenerationError is returned when the generative service output
// cannot be turned into a block. Raw keeps the untouched response.
type ContentGenerationError struct {
	Kind string
	Raw  string
	Err  error
}

func (e *ContentGenerationError) Error() string {
	return fmt.Sprintf("content generation failed (%s): %v", e.Kind, e.Err)
}

func (e *ContentGenerationError) Unwrap() error { return e.Err }

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

func Status(err error) int {
	var insufficient *InsufficientSubtopicsError
	var generation *ContentGenerationError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.As(err, &insufficient):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &generation), errors.Is(err, ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Message is the client-visible text for err. Server-side failures are
// reduced to a generic message; details stay in the logs.
func Message(err error) string {
	var insufficient *InsufficientSubtopicsError

	switch {
	case errors.As(err, &insufficient):
		return "this subject needs at least 3 subtopics, try another subject"
	case Status(err) >= http.StatusInternalServerError:
		return "internal server error"
	default:
		return err.Error()
	}
}
