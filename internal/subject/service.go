package subject

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/learnstyle-lambda/internal/aiquiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/apperr"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"gorm.io/gorm"
)

const (
	// CandidateCount is how many subtopic names are requested from the model.
	CandidateCount = 10
	// MaxSubtopics caps the stored set per subject.
	MaxSubtopics = 12
)

type Service interface {
	ListSubjects(ctx context.Context) ([]Subject, error)
	ProvisionSubtopics(ctx context.Context, subjectID uuid.UUID, subjectName string) (*ProvisionResult, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	generator aiquiz.Service
}

func NewService(db *gorm.DB, repo Repository, generator aiquiz.Service) Service {
	return &service{db: db, repo: repo, generator: generator}
}

func (s *service) ListSubjects(ctx context.Context) ([]Subject, error) {
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list subjects")
		return nil, apperr.Persistence(err)
	}
	if subjects == nil {
		subjects = []Subject{}
	}
	return subjects, nil
}

func (s *service) ProvisionSubtopics(ctx context.Context, subjectID uuid.UUID, subjectName string) (*ProvisionResult, error) {
	log := config.WithContext(ctx).WithField("subject_id", subjectID)

	existing, err := s.repo.ListSubtopics(ctx, subjectID)
	if err != nil {
		log.WithError(err).Error("Failed to load existing subtopics")
		return nil, apperr.Persistence(err)
	}
	if len(existing) > 0 {
		log.Debugf("Subject already has %d subtopics", len(existing))
		return &ProvisionResult{AlreadyExists: true, Subtopics: toResponses(existing)}, nil
	}

	generated, err := s.generator.GenerateSubtopics(ctx, subjectName, CandidateCount)
	if err != nil {
		log.WithError(err).Error("Failed to generate subtopics")
		return nil, err
	}

	names := dedupeNames(generated, MaxSubtopics)
	if len(names) == 0 {
		return nil, &apperr.ContentGenerationError{
			Kind: "subtopics",
			Raw:  strings.Join(generated, ", "),
			Err:  errors.New("model returned no usable subtopic names"),
		}
	}

	rows := make([]*Subtopic, len(names))
	for i, name := range names {
		rows[i] = &Subtopic{SubjectID: subjectID, Name: name, Seq: i}
	}

	var stored []Subtopic
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.LockSubject(ctx, subjectID); err != nil {
			return err
		}
		current, err := repo.ListSubtopics(ctx, subjectID)
		if err != nil {
			return err
		}
		if len(current) > 0 {
			stored = current
			return nil
		}
		return repo.CreateSubtopics(ctx, rows)
	})
	if errors.Is(err, ErrSubjectNotFound) {
		return nil, apperr.NotFound("subject")
	}
	if err != nil {
		log.WithError(err).Error("Failed to persist subtopics, transaction rolled back")
		return nil, apperr.Persistence(fmt.Errorf("insert subtopics: %w", err))
	}
	if stored != nil {
		log.Infof("Subtopics provisioned concurrently, keeping the %d stored", len(stored))
		return &ProvisionResult{AlreadyExists: true, Subtopics: toResponses(stored)}, nil
	}

	inserted := make([]Subtopic, len(rows))
	for i, row := range rows {
		inserted[i] = *row
	}

	log.Infof("Provisioned %d subtopics", len(inserted))
	return &ProvisionResult{AlreadyExists: false, Subtopics: toResponses(inserted)}, nil
}

// dedupeNames keeps the first occurrence of each exact name, dropping blanks,
// and stops once limit names are collected.
func dedupeNames(names []string, limit int) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, limit)

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out
}

func toResponses(subtopics []Subtopic) []SubtopicResponse {
	out := make([]SubtopicResponse, len(subtopics))
	for i, st := range subtopics {
		out[i] = SubtopicResponse{ID: st.ID, Name: st.Name}
	}
	return out
}
