package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultRole = "student"

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	Email         string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password      string    `gorm:"type:text;not null" json:"-"`
	LearningStyle *string   `gorm:"type:text" json:"learning_style"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
