package llm

import (
	"context"
	"errors"

	"github.com/example/recipe-assistant/internal/models"
)

// Client is one remote text-generation provider.
// Implementations build their own prompt text from the question and bundle.
type Client interface {
	Generate(ctx context.Context, question string, bundle models.ContextBundle) (string, error)
}

var (
	ErrEmptyResponse     = errors.New("empty response")
	ErrMissingCredential = errors.New("missing credential")
	ErrUnimplemented     = errors.New("provider not implemented")
)
