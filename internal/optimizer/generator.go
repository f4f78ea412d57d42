package optimizer

import (
	"context"
	"errors"
)

var ErrMissingCredential = errors.New("GEMINI_API_KEY not found, set it in the environment or .env file")

// Generator sends one free-form prompt to a text-generation model and returns
// its reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GeminiConfig is the credential and model used by the Gemini-backed generators.
type GeminiConfig struct {
	APIKey string
	Model  string
}

func (c GeminiConfig) model() string {
	if c.Model == "" {
		return "gemini-2.5-flash"
	}
	return c.Model
}
