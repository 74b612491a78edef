package subject

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSubjectNotFound = errors.New("subject not found")

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListSubjects(ctx context.Context) ([]Subject, error)
	GetSubject(ctx context.Context, id uuid.UUID) (*Subject, error)
	LockSubject(ctx context.Context, id uuid.UUID) error

	ListSubtopics(ctx context.Context, subjectID uuid.UUID) ([]Subtopic, error)
	CreateSubtopics(ctx context.Context, subtopics []*Subtopic) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) ListSubjects(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *repository) GetSubject(ctx context.Context, id uuid.UUID) (*Subject, error) {
	var s Subject
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return &s, nil
}

// LockSubject takes a row lock on the subject for the rest of the
// transaction. SQLite ignores the locking clause and serializes writers.
func (r *repository) LockSubject(ctx context.Context, id uuid.UUID) error {
	var s Subject
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSubjectNotFound
	}
	return err
}

func (r *repository) ListSubtopics(ctx context.Context, subjectID uuid.UUID) ([]Subtopic, error) {
	var subtopics []Subtopic
	if err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at ASC, seq ASC").
		Find(&subtopics).Error; err != nil {
		return nil, err
	}
	return subtopics, nil
}

func (r *repository) CreateSubtopics(ctx context.Context, subtopics []*Subtopic) error {
	if len(subtopics) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&subtopics).Error
}
