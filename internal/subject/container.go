package subject

import (
	"github.com/saulo-duarte/learnstyle-lambda/internal/aiquiz"
	"gorm.io/gorm"
)

type SubjectContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewSubjectContainer(db *gorm.DB, generator aiquiz.Service) *SubjectContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, generator)
	handler := NewHandler(service)

	return &SubjectContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
