package llm

import (
	"context"
	"fmt"

	"github.com/example/recipe-assistant/internal/models"
)

// DeepInfraClient is configured but not dispatched. Every call reports
// ErrUnimplemented so the resolver falls back; it must not be mapped onto the
// primary provider.
type DeepInfraClient struct {
	Provider ProviderConfig
}

func (c *DeepInfraClient) Generate(ctx context.Context, question string, bundle models.ContextBundle) (string, error) {
	return "", fmt.Errorf("deepinfra: %w", ErrUnimplemented)
}
