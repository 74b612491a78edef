package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

var logger = logrus.New()

func InitLogger(env string) {
	logger.SetOutput(os.Stdout)

	if env == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetLevel(logrus.InfoLevel)
		return
	}

	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
}

func Logger() *logrus.Logger {
	return logger
}

// WithUserID stores the authenticated user id so request logs can carry it.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.NewEntry(logger)
	if ctx == nil {
		return entry
	}

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if userID, ok := ctx.Value(userIDKey).(string); ok && userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}
