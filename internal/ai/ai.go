package ai

import (
	"context"
	"errors"
)

var ErrNoProvider = errors.New("no generation provider configured: set GEMINI_API_KEY or api_key in the config file")

// Request is a single structured generation call.
type Request struct {
	Prompt      string
	Model       string
	Temperature float32
}

// Generator returns the raw JSON text for a study material request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type Noop struct{}

func (Noop) Generate(ctx context.Context, req Request) (string, error) {
	return "", ErrNoProvider
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
