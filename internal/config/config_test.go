package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		env := strings.ToUpper(key)
		t.Setenv(env, "")
		t.Setenv("REACT_APP_"+env, "")
	}
	t.Setenv("DEBUG", "")
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini", cfg.APIType)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, DefaultGeminiURL, cfg.GeminiURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "http", cfg.GeminiTransport)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Empty(t, cfg.HuggingFaceAPIKey)
	assert.Empty(t, cfg.DeepInfraAPIKey)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_TYPE", " HuggingFace ")
	t.Setenv("HUGGINGFACE_API_KEY", " hf-key ")
	t.Setenv("LLM_HTTP_TIMEOUT_MS", "1500")
	t.Setenv("GEMINI_API_URL", "http://localhost:9999/models/{model}:generateContent/")
	t.Setenv("DEBUG", "1")

	cfg := FromEnv()
	assert.Equal(t, "huggingface", cfg.APIType)
	assert.Equal(t, "hf-key", cfg.HuggingFaceAPIKey)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "http://localhost:9999/models/{model}:generateContent", cfg.GeminiURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnvReactAppAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv("REACT_APP_GEMINI_API_KEY", "from-browser-env")
	t.Setenv("REACT_APP_API_TYPE", "deepinfra")

	cfg := FromEnv()
	assert.Equal(t, "from-browser-env", cfg.GeminiAPIKey)
	assert.Equal(t, "deepinfra", cfg.APIType)
}
