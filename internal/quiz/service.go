package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/learnstyle-lambda/internal/aiquiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/apperr"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"github.com/saulo-duarte/learnstyle-lambda/internal/subject"
	"gorm.io/gorm"
)

// ItemsPerBlock is one content item followed by its three questions.
const ItemsPerBlock = 4

type QuizService interface {
	GenerateQuiz(ctx context.Context, userID, subjectID uuid.UUID) (*GeneratedQuiz, error)
	GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*GeneratedQuiz, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*ItemView, error)
	RecordAnswer(ctx context.Context, in AnswerInput) (*AnswerResult, error)
}

type Options struct {
	// RevealAnswers includes correct_option in item projections.
	RevealAnswers bool
}

type quizService struct {
	db        *gorm.DB
	repo      QuizRepository
	subjects  subject.Repository
	generator aiquiz.Service
	sampler   Sampler
	opts      Options
}

func NewService(db *gorm.DB, repo QuizRepository, subjects subject.Repository, generator aiquiz.Service, sampler Sampler, opts Options) QuizService {
	if sampler == nil {
		sampler = NewRandomSampler()
	}
	return &quizService{
		db:        db,
		repo:      repo,
		subjects:  subjects,
		generator: generator,
		sampler:   sampler,
		opts:      opts,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, userID, subjectID uuid.UUID) (*GeneratedQuiz, error) {
	log := config.WithContext(ctx).WithField("subject_id", subjectID)

	subjectName := ""
	if subj, err := s.subjects.GetSubject(ctx, subjectID); err == nil {
		subjectName = subj.Name
	} else {
		log.WithError(err).Warn("Subject name unavailable, generating without it")
	}

	subtopics, err := s.subjects.ListSubtopics(ctx, subjectID)
	if err != nil {
		log.WithError(err).Error("Failed to load subtopics")
		return nil, apperr.Persistence(err)
	}
	if len(subtopics) < apperr.MinSubtopics {
		return nil, &apperr.InsufficientSubtopicsError{SubjectID: subjectID.String(), Have: len(subtopics)}
	}

	picks := s.sampler.Pick(len(subtopics), len(aiquiz.BlockOrder))
	if len(picks) != len(aiquiz.BlockOrder) {
		return nil, fmt.Errorf("sampler returned %d subtopics, want %d", len(picks), len(aiquiz.BlockOrder))
	}

	blocks := make([]*aiquiz.Block, 0, len(aiquiz.BlockOrder))
	for i, kind := range aiquiz.BlockOrder {
		topic := subtopics[picks[i]].Name
		log.WithFields(map[string]interface{}{"kind": kind, "subtopic": topic}).Info("Generating block")

		block, err := s.generator.GenerateBlock(ctx, kind, topic, subjectName)
		if err != nil {
			log.WithError(err).Errorf("Failed to generate %s block", kind)
			return nil, err
		}
		blocks = append(blocks, block)
	}

	quiz := &Quiz{UserID: userID, SubjectID: subjectID}
	items := buildItems(blocks)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, quiz); err != nil {
			return fmt.Errorf("create quiz: %w", err)
		}
		for _, item := range items {
			item.QuizID = quiz.ID
		}
		if err := repo.AddItems(ctx, items); err != nil {
			return fmt.Errorf("create quiz items: %w", err)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to persist quiz, transaction rolled back")
		return nil, apperr.Persistence(err)
	}

	log.WithField("quiz_id", quiz.ID).Infof("Quiz generated with %d items", len(items))
	return &GeneratedQuiz{QuizID: quiz.ID, Items: describe(items)}, nil
}

// buildItems lays blocks out as [content, mcq, mcq, mcq] in block order.
func buildItems(blocks []*aiquiz.Block) []*Item {
	items := make([]*Item, 0, len(blocks)*ItemsPerBlock)
	for _, block := range blocks {
		items = append(items, &Item{
			Position:     len(items),
			ContentType:  ContentType(block.Kind),
			QuestionText: block.Body,
			Options:      encodeOptions(nil),
		})
		for _, mcq := range block.MCQs {
			items = append(items, &Item{
				Position:      len(items),
				ContentType:   ContentMCQ,
				QuestionText:  mcq.Question,
				Options:       encodeOptions(mcq.Options),
				CorrectOption: mcq.Answer,
			})
		}
	}
	return items
}

func describe(items []*Item) []ItemDescriptor {
	out := make([]ItemDescriptor, len(items))
	for i, item := range items {
		out[i] = ItemDescriptor{ID: item.ID, Type: item.ContentType}
	}
	return out
}

func (s *quizService) GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*GeneratedQuiz, error) {
	quiz, err := s.repo.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			return nil, apperr.NotFound("quiz")
		}
		return nil, apperr.Persistence(err)
	}
	if quiz.UserID != userID {
		return nil, apperr.NotFound("quiz")
	}

	items := make([]*Item, len(quiz.Items))
	for i := range quiz.Items {
		items[i] = &quiz.Items[i]
	}
	return &GeneratedQuiz{QuizID: quiz.ID, Items: describe(items)}, nil
}

func (s *quizService) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemView, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperr.NotFound("quiz item")
		}
		config.WithContext(ctx).WithError(err).Error("Failed to load quiz item")
		return nil, apperr.Persistence(err)
	}

	options, err := decodeOptions(item.Options)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("item_id", itemID).Error("Stored options are unreadable")
		return nil, apperr.Persistence(err)
	}

	view := &ItemView{
		ID:           item.ID,
		QuestionText: item.QuestionText,
		Options:      options,
		ContentType:  item.ContentType,
		MediaURL:     item.MediaURL,
	}
	if s.opts.RevealAnswers {
		correct := item.CorrectOption
		view.CorrectOption = &correct
	}
	return view, nil
}

func (s *quizService) RecordAnswer(ctx context.Context, in AnswerInput) (*AnswerResult, error) {
	log := config.WithContext(ctx).WithField("item_id", in.QuizItemID)

	if in.TimeTakenMs < 0 {
		return nil, apperr.Validation("time_taken_ms must not be negative")
	}

	item, err := s.repo.GetItem(ctx, in.QuizItemID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperr.NotFound("quiz item")
		}
		log.WithError(err).Error("Failed to load quiz item for answer")
		return nil, apperr.Persistence(err)
	}
	if item.ContentType.IsContent() {
		return nil, apperr.Validation("item %s is a %s item and takes no answer", item.ID, item.ContentType)
	}

	answer := &Answer{
		QuizItemID:     item.ID,
		UserID:         in.UserID,
		SelectedOption: in.SelectedOption,
		IsCorrect:      in.SelectedOption == item.CorrectOption,
		TimeTakenMs:    in.TimeTakenMs,
	}
	if err := s.repo.CreateAnswer(ctx, answer); err != nil {
		log.WithError(err).Error("Failed to record answer")
		return nil, apperr.Persistence(err)
	}

	log.WithField("is_correct", answer.IsCorrect).Info("Answer recorded")
	return &AnswerResult{IsCorrect: answer.IsCorrect, CorrectOption: item.CorrectOption}, nil
}
