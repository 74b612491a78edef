package llm

import "context"

// Provider is the generative text service the rest of the app talks to.
// It takes a single prompt and returns whatever text the model produced;
// callers are responsible for pulling structure out of it.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelID() string
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
