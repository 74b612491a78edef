package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/learnstyle-lambda/internal/aiquiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/auth"
	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"github.com/saulo-duarte/learnstyle-lambda/internal/middlewares"
	"github.com/saulo-duarte/learnstyle-lambda/internal/quiz"
	"github.com/saulo-duarte/learnstyle-lambda/internal/subject"
	"github.com/saulo-duarte/learnstyle-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	LogoutHandler  *auth.Handler
	SubjectHandler *subject.Handler
	QuizHandler    *quiz.Handler
	AIQuizHandler  *aiquiz.Handler
	AuthMiddleware func(http.Handler) http.Handler
	CORSOrigins    []string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.CORSOrigins))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", user.AuthRoutes(cfg.UserHandler, cfg.LogoutHandler.Logout))
		r.Mount("/users", user.Routes(cfg.UserHandler, cfg.AuthMiddleware))
		r.Mount("/subjects", subject.Routes(cfg.SubjectHandler))
		r.Mount("/subtopics", subject.SubtopicRoutes(cfg.SubjectHandler))
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler, cfg.AuthMiddleware))
		r.Mount("/quizzes", quiz.QuizzesRoutes(cfg.QuizHandler, cfg.AuthMiddleware))

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMiddleware)
			r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))
		})
	})
	return r
}
