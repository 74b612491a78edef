package aiquiz

import "github.com/saulo-duarte/learnstyle-lambda/internal/llm"

type AIQuizContainer struct {
	Service Service
	Handler *Handler
}

func NewAIQuizContainer(provider llm.Provider, length Length) *AIQuizContainer {
	service := NewService(provider, length)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Service: service,
		Handler: handler,
	}
}
