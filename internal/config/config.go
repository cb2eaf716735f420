// Package config builds the service configuration once at startup.
//
// Values come from the process environment (a .env file in the working
// directory is loaded first when present). Every key also accepts the
// REACT_APP_ prefixed name used by the browser build of the assistant, so an
// existing .env keeps working.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	// APIType selects the active provider: gemini, huggingface or deepinfra.
	APIType string

	GeminiAPIKey      string
	HuggingFaceAPIKey string
	DeepInfraAPIKey   string

	GeminiModel      string
	HuggingFaceModel string
	DeepInfraModel   string

	GeminiURL      string
	HuggingFaceURL string
	DeepInfraURL   string

	// GeminiTransport is "http" (raw REST, key in the query string) or "sdk".
	GeminiTransport string

	RequestTimeout time.Duration
	MaxUploadBytes int64

	ChatRatePerSecond float64
	ChatBurst         int

	LogLevel  string
	LogFormat string
}

const (
	DefaultGeminiURL      = "https://generativelanguage.googleapis.com/v1beta/models/{model}:generateContent"
	DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/{model}"
	DefaultDeepInfraURL   = "https://api.deepinfra.com/v1/openai/chat/completions"
)

var defaults = map[string]any{
	"port":                "8080",
	"api_type":            "gemini",
	"gemini_model":        "gemini-2.0-flash",
	"huggingface_model":   "microsoft/DialoGPT-medium",
	"deepinfra_model":     "mistralai/Mistral-7B-Instruct-v0.1",
	"gemini_api_url":      DefaultGeminiURL,
	"huggingface_api_url": DefaultHuggingFaceURL,
	"deepinfra_api_url":   DefaultDeepInfraURL,
	"gemini_transport":    "http",
	"llm_http_timeout_ms": 30000,
	"max_upload_bytes":    20 << 20,
	"chat_rate_per_sec":   2.0,
	"chat_burst":          5,
	"log_level":           "info",
	"log_format":          "console",
	"gemini_api_key":      "",
	"huggingface_api_key": "",
	"deepinfra_api_key":   "",
}

// Load reads .env (if any) and the environment into a Config.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only. Tests use it directly.
func FromEnv() Config {
	v := viper.New()
	for key, def := range defaults {
		v.SetDefault(key, def)
		env := strings.ToUpper(key)
		_ = v.BindEnv(key, env, "REACT_APP_"+env)
	}
	_ = v.BindEnv("debug", "DEBUG")

	timeout := time.Duration(v.GetInt("llm_http_timeout_ms")) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	level := v.GetString("log_level")
	if v.GetString("debug") == "1" {
		level = "debug"
	}

	return Config{
		Port:              strings.TrimSpace(v.GetString("port")),
		APIType:           strings.ToLower(strings.TrimSpace(v.GetString("api_type"))),
		GeminiAPIKey:      strings.TrimSpace(v.GetString("gemini_api_key")),
		HuggingFaceAPIKey: strings.TrimSpace(v.GetString("huggingface_api_key")),
		DeepInfraAPIKey:   strings.TrimSpace(v.GetString("deepinfra_api_key")),
		GeminiModel:       v.GetString("gemini_model"),
		HuggingFaceModel:  v.GetString("huggingface_model"),
		DeepInfraModel:    v.GetString("deepinfra_model"),
		GeminiURL:         strings.TrimRight(v.GetString("gemini_api_url"), "/"),
		HuggingFaceURL:    strings.TrimRight(v.GetString("huggingface_api_url"), "/"),
		DeepInfraURL:      strings.TrimRight(v.GetString("deepinfra_api_url"), "/"),
		GeminiTransport:   strings.ToLower(v.GetString("gemini_transport")),
		RequestTimeout:    timeout,
		MaxUploadBytes:    v.GetInt64("max_upload_bytes"),
		ChatRatePerSecond: v.GetFloat64("chat_rate_per_sec"),
		ChatBurst:         v.GetInt("chat_burst"),
		LogLevel:          strings.ToLower(level),
		LogFormat:         strings.ToLower(v.GetString("log_format")),
	}
}
