package quiz

import "github.com/google/uuid"

type GenerateQuizRequest struct {
	SubjectID string `json:"subject_id" validate:"required,uuid"`
}

type SubmitAnswerRequest struct {
	QuizItemID     string  `json:"quiz_item_id" validate:"required,uuid"`
	SelectedOption *string `json:"selected_option" validate:"required"`
	TimeTakenMs    *int64  `json:"time_taken_ms" validate:"required,gte=0"`
}

type ItemDescriptor struct {
	ID   uuid.UUID   `json:"id"`
	Type ContentType `json:"type"`
}

type GeneratedQuiz struct {
	QuizID uuid.UUID        `json:"quiz_id"`
	Items  []ItemDescriptor `json:"items"`
}

// ItemView is the client-facing projection of an Item. CorrectOption is only
// populated when answers are configured to be revealed before answering.
type ItemView struct {
	ID            uuid.UUID   `json:"id"`
	QuestionText  string      `json:"question_text"`
	Options       []string    `json:"options"`
	CorrectOption *string     `json:"correct_option,omitempty"`
	ContentType   ContentType `json:"content_type"`
	MediaURL      *string     `json:"media_url"`
}

type AnswerInput struct {
	QuizItemID     uuid.UUID
	UserID         uuid.UUID
	SelectedOption string
	TimeTakenMs    int64
}

type AnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectOption string `json:"correct_option"`
}
