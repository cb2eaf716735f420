package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/example/recipe-assistant/internal/models"
)

// HuggingFaceClient calls the hosted inference endpoint with a bearer token.
type HuggingFaceClient struct {
	Provider ProviderConfig
	HTTP     *http.Client
}

type huggingFaceRequest struct {
	Inputs string `json:"inputs"`
}

type huggingFaceGeneration struct {
	GeneratedText string `json:"generated_text"`
}

func (c *HuggingFaceClient) Generate(ctx context.Context, question string, bundle models.ContextBundle) (string, error) {
	if !c.Provider.HasCredential() {
		return "", ErrMissingCredential
	}
	headers := map[string]string{"Authorization": "Bearer " + c.Provider.Credential}
	var raw json.RawMessage
	if err := postJSON(ctx, c.HTTP, c.Provider.URL(), headers, huggingFaceRequest{Inputs: QuestionPrompt(question, bundle)}, &raw); err != nil {
		return "", fmt.Errorf("huggingface: %w", err)
	}
	txt, err := generatedText(raw)
	if err != nil {
		return "", fmt.Errorf("huggingface: %w", err)
	}
	return txt, nil
}

// generatedText accepts both the single-object and the list response shapes.
func generatedText(raw json.RawMessage) (string, error) {
	var txt string
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var list []huggingFaceGeneration
		if err := json.Unmarshal(raw, &list); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		if len(list) > 0 {
			txt = list[0].GeneratedText
		}
	case strings.HasPrefix(trimmed, "{"):
		var one huggingFaceGeneration
		if err := json.Unmarshal(raw, &one); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		txt = one.GeneratedText
	default:
		return "", fmt.Errorf("unexpected response shape: %w", ErrEmptyResponse)
	}
	if strings.TrimSpace(txt) == "" {
		return "", ErrEmptyResponse
	}
	return txt, nil
}
