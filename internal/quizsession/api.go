package quizsession

import "context"

// ItemRef is one entry of the ordered item list returned by generation.
type ItemRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type Quiz struct {
	ID    string    `json:"quiz_id"`
	Items []ItemRef `json:"items"`
}

type Item struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	ContentType  string   `json:"content_type"`
	MediaURL     *string  `json:"media_url"`
}

// IsQuestion reports whether the item waits for an answer instead of a timer.
func (i *Item) IsQuestion() bool {
	return i.ContentType == "mcq"
}

type AnswerSubmission struct {
	QuizItemID     string `json:"quiz_item_id"`
	SelectedOption string `json:"selected_option"`
	TimeTakenMs    int64  `json:"time_taken_ms"`
}

type AnswerOutcome struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectOption string `json:"correct_option"`
}

// API is the server surface a session drives.
type API interface {
	GenerateQuiz(ctx context.Context, subjectID string) (*Quiz, error)
	Item(ctx context.Context, id string) (*Item, error)
	SubmitAnswer(ctx context.Context, in AnswerSubmission) (*AnswerOutcome, error)
}
