package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrItemNotFound = errors.New("quiz item not found")
)

type QuizRepository interface {
	WithTx(tx *gorm.DB) QuizRepository

	Create(ctx context.Context, q *Quiz) error
	// GetByID loads the quiz with its items in position order.
	GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error)

	AddItems(ctx context.Context, items []*Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)

	CreateAnswer(ctx context.Context, a *Answer) error
	ListAnswersByItem(ctx context.Context, itemID uuid.UUID) ([]*Answer, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) WithTx(tx *gorm.DB) QuizRepository {
	return &quizRepository{db: tx}
}

func (r *quizRepository) Create(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).Omit("Items").Create(q).Error
}

func (r *quizRepository) GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	var quiz Quiz
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) AddItems(ctx context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *quizRepository) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	var item Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *quizRepository) CreateAnswer(ctx context.Context, a *Answer) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *quizRepository) ListAnswersByItem(ctx context.Context, itemID uuid.UUID) ([]*Answer, error) {
	var answers []*Answer
	if err := r.db.WithContext(ctx).
		Where("quiz_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}
