package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/saulo-duarte/learnstyle-lambda/internal/aiquiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/auth"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"github.com/saulo-duarte/learnstyle-lambda/internal/llm"
	"github.com/saulo-duarte/learnstyle-lambda/internal/quiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/router"
	"github.com/saulo-duarte/learnstyle-lambda/internal/subject"
	"github.com/saulo-duarte/learnstyle-lambda/internal/user"
)

type Container struct {
	Settings config.Settings
	DB       *gorm.DB
	Redis    *redis.Client

	Authenticator    *auth.Authenticator
	AuthHandler      *auth.Handler
	UserContainer    *user.UserContainer
	SubjectContainer *subject.SubjectContainer
	AIQuizContainer  *aiquiz.AIQuizContainer
	QuizContainer    *quiz.QuizContainer
}

// New connects to the datastore once and hands the same handle to every
// component.
func New(ctx context.Context, settings config.Settings) (*Container, error) {
	db, err := config.Connect(ctx, settings.DatabaseDSN, settings.Env)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv())
	if err != nil {
		return nil, err
	}

	return Build(ctx, settings, db, provider)
}

// Build wires components around an existing datastore and generator.
func Build(ctx context.Context, settings config.Settings, db *gorm.DB, provider llm.Provider) (*Container, error) {
	log := config.WithContext(ctx)

	length, err := aiquiz.ParseLength(settings.ContentLength)
	if err != nil {
		return nil, err
	}

	var revoker auth.Revoker = auth.NopRevoker{}
	var rdb *redis.Client
	if settings.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPass,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		revoker = auth.NewRedisRevoker(rdb)
		log.Info("Token revocation backed by redis")
	}

	authenticator, err := auth.NewAuthenticator(settings.JWTSecret, settings.SessionTTL, revoker)
	if err != nil {
		return nil, err
	}
	cookie := auth.CookieSettings{
		Name:   settings.CookieName,
		Secure: settings.CookieSecure,
		TTL:    settings.SessionTTL,
	}

	aiQuizContainer := aiquiz.NewAIQuizContainer(provider, length)
	subjectContainer := subject.NewSubjectContainer(db, aiQuizContainer.Service)
	quizContainer := quiz.NewQuizContainer(
		db,
		subjectContainer.Repo,
		aiQuizContainer.Service,
		quiz.NewRandomSampler(),
		quiz.Options{RevealAnswers: settings.RevealAnswers},
	)
	userContainer := user.NewUserContainer(db, authenticator, cookie)

	return &Container{
		Settings:         settings,
		DB:               db,
		Redis:            rdb,
		Authenticator:    authenticator,
		AuthHandler:      auth.NewHandler(authenticator, cookie),
		UserContainer:    userContainer,
		SubjectContainer: subjectContainer,
		AIQuizContainer:  aiQuizContainer,
		QuizContainer:    quizContainer,
	}, nil
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		LogoutHandler:  c.AuthHandler,
		SubjectHandler: c.SubjectContainer.Handler,
		QuizHandler:    c.QuizContainer.Handler,
		AIQuizHandler:  c.AIQuizContainer.Handler,
		AuthMiddleware: c.Authenticator.Middleware(c.Settings.CookieName),
		CORSOrigins:    c.Settings.CORSOrigins,
	})
}

// Close shuts down redis and the database pool, reporting both failures.
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := config.Close(c.DB); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}
