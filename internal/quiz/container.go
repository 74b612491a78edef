package quiz

import (
	"github.com/saulo-duarte/learnstyle-lambda/internal/aiquiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/subject"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Repo    QuizRepository
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, subjects subject.Repository, generator aiquiz.Service, sampler Sampler, opts Options) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, subjects, generator, sampler, opts)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
