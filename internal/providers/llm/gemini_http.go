package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/example/recipe-assistant/internal/models"
)

// Generation parameters sent with every primary-provider request.
const (
	geminiTemperature     = 0.7
	geminiMaxOutputTokens = 800
	geminiTopP            = 0.8
	geminiTopK            = 40
)

// GeminiHTTPClient calls generateContent over plain REST with the key in the query string.
type GeminiHTTPClient struct {
	Provider ProviderConfig
	HTTP     *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiHTTPClient) Generate(ctx context.Context, question string, bundle models.ContextBundle) (string, error) {
	if !c.Provider.HasCredential() {
		return "", ErrMissingCredential
	}
	endpoint := c.Provider.URL()
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	endpoint += sep + "key=" + url.QueryEscape(c.Provider.Credential)

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: FullPrompt(question, bundle)}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     geminiTemperature,
			MaxOutputTokens: geminiMaxOutputTokens,
			TopP:            geminiTopP,
			TopK:            geminiTopK,
		},
	}
	var out geminiResponse
	if err := postJSON(ctx, c.HTTP, endpoint, nil, body, &out); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(out.Candidates) == 0 || out.Candidates[0].Content == nil || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates: %w", ErrEmptyResponse)
	}
	txt := out.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(txt) == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return txt, nil
}
