package assistant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/recipe-assistant/internal/config"
	"github.com/example/recipe-assistant/internal/models"
	"github.com/example/recipe-assistant/internal/providers/llm"
)

// fakeClient counts calls and returns a scripted result.
type fakeClient struct {
	calls atomic.Int32
	fn    func(ctx context.Context) (string, error)
}

func (f *fakeClient) Generate(ctx context.Context, question string, bundle models.ContextBundle) (string, error) {
	f.calls.Add(1)
	return f.fn(ctx)
}

func baseConfig() config.Config {
	return config.Config{
		APIType:        "gemini",
		GeminiModel:    "gemini-2.0-flash",
		GeminiURL:      config.DefaultGeminiURL,
		HuggingFaceURL: config.DefaultHuggingFaceURL,
		DeepInfraURL:   config.DefaultDeepInfraURL,
	}
}

func newTestResolver(cfg config.Config, client llm.Client) *Resolver {
	mock := llm.NewMockGenerator()
	mock.Intn = func(int) int { return 0 }
	clients := map[llm.ProviderID]llm.Client{llm.ProviderGemini: client, llm.ProviderHuggingFace: client, llm.ProviderDeepInfra: client}
	return NewResolver(llm.NewSelector(cfg), clients, mock, time.Second)
}

func mockText(prompt string, bundle models.ContextBundle) string {
	m := llm.NewMockGenerator()
	m.Intn = func(int) int { return 0 }
	return m.Generate(prompt, bundle)
}

func TestResolveWithoutCredentialSkipsNetwork(t *testing.T) {
	client := &fakeClient{fn: func(context.Context) (string, error) { return "remote", nil }}
	r := newTestResolver(baseConfig(), client)

	for _, prompt := range []string{"healthy lunch", "quick dinner", "hello", ""} {
		reply := r.Answer(context.Background(), prompt, models.ContextBundle{})
		assert.Equal(t, mockText(prompt, models.ContextBundle{}), reply.Text)
		assert.Equal(t, models.SourceMock, reply.Source)
		assert.Empty(t, reply.FallbackReason)
	}
	assert.Zero(t, client.calls.Load())
}

func TestResolveFallsBackOnEveryFailure(t *testing.T) {
	cfg := baseConfig()
	cfg.GeminiAPIKey = "key"

	tests := []struct {
		name string
		fn   func(ctx context.Context) (string, error)
	}{
		{"network error", func(context.Context) (string, error) { return "", errors.New("connection refused") }},
		{"malformed", func(context.Context) (string, error) { return "", llm.ErrEmptyResponse }},
		{"blank text", func(context.Context) (string, error) { return " \n ", nil }},
		{"panic", func(context.Context) (string, error) { panic("boom") }},
		{"timeout", func(ctx context.Context) (string, error) { <-ctx.Done(); return "", ctx.Err() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{fn: tt.fn}
			r := newTestResolver(cfg, client)
			r.Timeout = 20 * time.Millisecond

			var reply Reply
			require.NotPanics(t, func() {
				reply = r.Answer(context.Background(), "substitute for butter?", models.ContextBundle{})
			})
			assert.Equal(t, int32(1), client.calls.Load(), "no retries")
			assert.Equal(t, models.SourceMock, reply.Source)
			assert.NotEmpty(t, reply.FallbackReason)
			assert.True(t, strings.HasPrefix(reply.Text, "Common ingredient substitutions:"))
		})
	}
}

func TestResolveSuccess(t *testing.T) {
	cfg := baseConfig()
	cfg.GeminiAPIKey = "key"
	client := &fakeClient{fn: func(context.Context) (string, error) { return "Braise it low and slow.", nil }}
	r := newTestResolver(cfg, client)

	reply := r.Answer(context.Background(), "short ribs?", models.ContextBundle{})
	assert.Equal(t, Reply{Text: "Braise it low and slow.", Source: "gemini"}, reply)
	assert.True(t, reply.Remote())
	assert.Equal(t, "Braise it low and slow.", r.Resolve(context.Background(), "short ribs?", models.ContextBundle{}))
}

func TestResolveTertiaryProviderIsUnimplemented(t *testing.T) {
	cfg := baseConfig()
	cfg.APIType = "deepinfra"
	cfg.DeepInfraAPIKey = "key"
	sel := llm.NewSelector(cfg)
	r := NewResolver(sel, llm.NewClients(context.Background(), cfg, sel), nil, time.Second)

	reply := r.Answer(context.Background(), "vegan cake", models.ContextBundle{})
	assert.Equal(t, models.SourceMock, reply.Source)
	assert.Contains(t, reply.FallbackReason, llm.ErrUnimplemented.Error())
	assert.True(t, strings.HasPrefix(reply.Text, "Vegetarian/vegan substitutions:"))
}

func TestResolveMissingClient(t *testing.T) {
	cfg := baseConfig()
	cfg.GeminiAPIKey = "key"
	r := NewResolver(llm.NewSelector(cfg), nil, nil, time.Second)

	assert.NotEmpty(t, r.Resolve(context.Background(), "anything", models.ContextBundle{}))
}

func TestResolveAgainstHTTPProvider(t *testing.T) {
	responses := []string{
		`{"candidates":[{"content":{"parts":[{"text":"Sear first."}]}}]}`,
		`{"candidates":`,
		`{"candidates":[]}`,
	}
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := hits.Add(1) - 1
		w.Write([]byte(responses[i]))
	}))
	defer srv.Close()

	cfg := baseConfig()
	cfg.GeminiAPIKey = "key"
	cfg.GeminiURL = srv.URL + "/models/{model}:generateContent"
	sel := llm.NewSelector(cfg)
	r := NewResolver(sel, llm.NewClients(context.Background(), cfg, sel), nil, time.Second)

	assert.Equal(t, "Sear first.", r.Resolve(context.Background(), "steak", models.ContextBundle{}))
	for i := 0; i < 2; i++ {
		reply := r.Answer(context.Background(), "quick steak", models.ContextBundle{})
		assert.Equal(t, models.SourceMock, reply.Source)
		assert.True(t, strings.HasPrefix(reply.Text, "Quick recipe ideas:"))
	}
	assert.Equal(t, int32(3), hits.Load())
}
