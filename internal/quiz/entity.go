package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Items []Item `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Quiz) TableName() string { return "quizzes" }

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Item is either a content passage or a multiple-choice question. Position
// is the presentation order inside the quiz.
type Item struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_quiz_item_position,priority:1" json:"quiz_id"`
	Position      int            `gorm:"not null;index:idx_quiz_item_position,priority:2" json:"position"`
	ContentType   ContentType    `gorm:"type:text;not null" json:"content_type"`
	QuestionText  string         `gorm:"type:text;not null" json:"question_text"`
	Options       datatypes.JSON `gorm:"not null" json:"options"`
	CorrectOption string         `gorm:"type:text;not null;default:''" json:"correct_option"`
	MediaURL      *string        `gorm:"type:text" json:"media_url"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Item) TableName() string { return "quiz_items" }

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Answer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizItemID     uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_item_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SelectedOption string    `gorm:"type:text;not null" json:"selected_option"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	TimeTakenMs    int64     `gorm:"not null" json:"time_taken_ms"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Answer) TableName() string { return "quiz_answers" }

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
