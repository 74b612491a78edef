package user

import (
	"github.com/saulo-duarte/learnstyle-lambda/internal/auth"
	"gorm.io/gorm"
)

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, issuer TokenIssuer, cookie auth.CookieSettings) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, issuer)
	handler := NewHandler(service, cookie)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
