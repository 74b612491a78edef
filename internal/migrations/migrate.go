package migrations

import (
	"fmt"

	"github.com/saulo-duarte/learnstyle-lambda/internal/quiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/subject"
	"github.com/saulo-duarte/learnstyle-lambda/internal/user"
	"gorm.io/gorm"
)

// Models in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&subject.Subject{},
		&subject.Subtopic{},
		&quiz.Quiz{},
		&quiz.Item{},
		&quiz.Answer{},
	}
}

func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DefaultSubjects is the reference set loaded by the seed command.
var DefaultSubjects = []string{
	"Biology",
	"Chemistry",
	"Physics",
	"Mathematics",
	"History",
	"Geography",
}

// Seed inserts any missing default subject. Existing rows are left alone.
func Seed(db *gorm.DB, names []string) (int, error) {
	created := 0
	for _, name := range names {
		s := subject.Subject{Name: name}
		res := db.Where(subject.Subject{Name: name}).FirstOrCreate(&s)
		if res.Error != nil {
			return created, fmt.Errorf("seed subject %q: %w", name, res.Error)
		}
		created += int(res.RowsAffected)
	}
	return created, nil
}
