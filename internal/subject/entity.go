package subject

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Subtopic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subtopic_subject_name" json:"subject_id"`
	Name      string    `gorm:"type:text;not null;uniqueIndex:idx_subtopic_subject_name" json:"name"`
	Seq       int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Subtopic) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
