package llm

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/example/recipe-assistant/internal/models"
)

// GeminiSDKClient is the primary provider through the official Go SDK.
// Selected with GEMINI_TRANSPORT=sdk.
type GeminiSDKClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSDKClient(ctx context.Context, p ProviderConfig) (*GeminiSDKClient, error) {
	if !p.HasCredential() {
		return nil, ErrMissingCredential
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(p.Credential))
	if err != nil {
		return nil, fmt.Errorf("gemini sdk: %w", err)
	}
	m := c.GenerativeModel(p.Model)
	m.SetTemperature(geminiTemperature)
	m.SetMaxOutputTokens(geminiMaxOutputTokens)
	m.SetTopP(geminiTopP)
	m.SetTopK(geminiTopK)
	return &GeminiSDKClient{client: c, model: m}, nil
}

func (g *GeminiSDKClient) Generate(ctx context.Context, question string, bundle models.ContextBundle) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(FullPrompt(question, bundle)))
	if err != nil {
		return "", fmt.Errorf("gemini sdk: %w", err)
	}
	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", fmt.Errorf("gemini sdk: %w", ErrEmptyResponse)
	}
	return txt, nil
}

func (g *GeminiSDKClient) Close() error { return g.client.Close() }

func firstText(r *genai.GenerateContentResponse) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
