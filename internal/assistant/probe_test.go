package assistant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/recipe-assistant/internal/models"
	"github.com/example/recipe-assistant/internal/providers/llm"
)

func TestProbeNotConfiguredMakesNoCalls(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }))
	defer srv.Close()

	cfg := baseConfig()
	cfg.GeminiURL = srv.URL + "/models/{model}:generateContent"
	cfg.HuggingFaceURL = srv.URL + "/hf/{model}"
	sel := llm.NewSelector(cfg)
	r := NewResolver(sel, llm.NewClients(context.Background(), cfg, sel), nil, 0)

	res := r.Probe(context.Background())
	assert.Equal(t, models.ProbeNotConfigured, res.Status)
	assert.Equal(t, llm.ProviderGemini, res.Provider)
	assert.Zero(t, hits.Load())
}

func TestProbeClassification(t *testing.T) {
	tests := []struct {
		name string
		fn   func(context.Context) (string, error)
		want models.ProbeStatus
	}{
		{"answers", func(context.Context) (string, error) { return "Yes, I'm here to help!", nil }, models.ProbeConnected},
		{"apology", func(context.Context) (string, error) { return "I apologize, something went wrong", nil }, models.ProbeUnavailable},
		{"sorry", func(context.Context) (string, error) { return "Sorry, overloaded", nil }, models.ProbeUnavailable},
		{"fails", func(context.Context) (string, error) { return "", errors.New("dial tcp: refused") }, models.ProbeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.GeminiAPIKey = "key"
			client := &fakeClient{fn: tt.fn}
			r := newTestResolver(cfg, client)

			res := r.Probe(context.Background())
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, int32(1), client.calls.Load())
		})
	}
}

func TestProbeUsesActiveProviderCredential(t *testing.T) {
	cfg := baseConfig()
	cfg.APIType = "huggingface"
	cfg.GeminiAPIKey = "only-gemini"
	client := &fakeClient{fn: func(context.Context) (string, error) { return "ok", nil }}
	r := newTestResolver(cfg, client)

	res := r.Probe(context.Background())
	assert.Equal(t, models.ProbeNotConfigured, res.Status)
	assert.Equal(t, llm.ProviderHuggingFace, res.Provider)
	assert.Zero(t, client.calls.Load())
}

func TestGreeting(t *testing.T) {
	r := newTestResolver(baseConfig(), &fakeClient{})

	connected := r.Greeting(ProbeResult{Status: models.ProbeConnected, Provider: llm.ProviderGemini, Name: "Google Gemini"})
	assert.Contains(t, connected, "powered by Google Gemini")

	demo := r.Greeting(ProbeResult{Status: models.ProbeNotConfigured, Provider: llm.ProviderHuggingFace, Name: "HuggingFace"})
	assert.Contains(t, demo, "demo mode")
	assert.Contains(t, demo, "HUGGINGFACE_API_KEY=your_key")
	assert.Contains(t, demo, "https://huggingface.co/settings/tokens")
}
