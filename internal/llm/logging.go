package llm

import (
	"context"
	"time"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

// LoggingProvider logs every request made to the wrapped provider.
type LoggingProvider struct {
	inner Provider
}

func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, prompt string) (string, error) {
	log := config.WithContext(ctx)
	start := time.Now()

	raw, err := l.inner.Generate(ctx, prompt)

	fields := logrus.Fields{
		"model":         l.inner.ModelID(),
		"latency_ms":    time.Since(start).Milliseconds(),
		"prompt_chars":  len(prompt),
		"response_size": len(raw),
	}
	if err != nil {
		log.WithError(err).WithFields(fields).Error("[LLM] generation request failed")
		return raw, err
	}

	log.WithFields(fields).Info("[LLM] generation request completed")
	return raw, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
