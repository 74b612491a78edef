package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/learnstyle-lambda/internal/apperr"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 10

var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperr.ErrAuth)

type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

type UserService interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type userService struct {
	repo   UserRepository
	issuer TokenIssuer
}

func NewService(repo UserRepository, issuer TokenIssuer) UserService {
	return &userService{repo: repo, issuer: issuer}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	log := config.WithContext(ctx)
	email := normalizeEmail(req.Email)

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.Validation("email already registered")
	case !errors.Is(err, ErrUserNotFound):
		log.WithError(err).Error("Erro ao verificar email existente")
		return nil, apperr.Persistence(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.WithError(err).Error("Erro ao criar usuário")
		return nil, apperr.Persistence(err)
	}

	log.WithField("user_id", u.ID).Info("Usuário criado")
	return u, nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		log.WithError(err).Error("Erro ao buscar usuário para login")
		return nil, "", apperr.Persistence(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(u.ID.String(), DefaultRole)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Persistence(err)
	}
	return u, nil
}
