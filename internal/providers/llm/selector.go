package llm

import (
	"strings"

	"github.com/example/recipe-assistant/internal/config"
)

type ProviderID string

const (
	ProviderGemini      ProviderID = "gemini"
	ProviderHuggingFace ProviderID = "huggingface"
	ProviderDeepInfra   ProviderID = "deepinfra"

	// PrimaryProvider is used when the configured id is missing or unknown.
	PrimaryProvider = ProviderGemini
)

// ProviderIDs lists providers in display order.
var ProviderIDs = []ProviderID{ProviderGemini, ProviderHuggingFace, ProviderDeepInfra}

// ParseProviderID matches case-insensitively after trimming.
func ParseProviderID(s string) (ProviderID, bool) {
	id := ProviderID(strings.ToLower(strings.TrimSpace(s)))
	switch id {
	case ProviderGemini, ProviderHuggingFace, ProviderDeepInfra:
		return id, true
	}
	return "", false
}

type ProviderConfig struct {
	ID   ProviderID `json:"id"`
	Name string     `json:"name"`
	// Endpoint may contain a {model} placeholder.
	Endpoint   string `json:"endpoint"`
	Credential string `json:"-"`
	Model      string `json:"model,omitempty"`
	// CredentialEnv names the variable that supplies Credential.
	CredentialEnv string `json:"credential_env"`
	HelpURL       string `json:"help_url"`
}

// URL returns Endpoint with the model substituted.
func (p ProviderConfig) URL() string {
	return strings.ReplaceAll(p.Endpoint, "{model}", p.Model)
}

func (p ProviderConfig) HasCredential() bool { return p.Credential != "" }

// CredentialStatus is reported to clients instead of an error when a key is absent.
type CredentialStatus struct {
	Provider   ProviderID `json:"provider"`
	Name       string     `json:"name"`
	Configured bool       `json:"configured"`
	Active     bool       `json:"active"`
}

// Selector resolves the active provider from a static configuration.
type Selector struct {
	flag      string
	providers map[ProviderID]ProviderConfig
}

func NewSelector(cfg config.Config) *Selector {
	return &Selector{
		flag: cfg.APIType,
		providers: map[ProviderID]ProviderConfig{
			ProviderGemini: {
				ID:            ProviderGemini,
				Name:          "Google Gemini",
				Endpoint:      cfg.GeminiURL,
				Credential:    cfg.GeminiAPIKey,
				Model:         cfg.GeminiModel,
				CredentialEnv: "GEMINI_API_KEY",
				HelpURL:       "https://aistudio.google.com/",
			},
			ProviderHuggingFace: {
				ID:            ProviderHuggingFace,
				Name:          "HuggingFace",
				Endpoint:      cfg.HuggingFaceURL,
				Credential:    cfg.HuggingFaceAPIKey,
				Model:         cfg.HuggingFaceModel,
				CredentialEnv: "HUGGINGFACE_API_KEY",
				HelpURL:       "https://huggingface.co/settings/tokens",
			},
			ProviderDeepInfra: {
				ID:            ProviderDeepInfra,
				Name:          "DeepInfra",
				Endpoint:      cfg.DeepInfraURL,
				Credential:    cfg.DeepInfraAPIKey,
				Model:         cfg.DeepInfraModel,
				CredentialEnv: "DEEPINFRA_API_KEY",
				HelpURL:       "https://deepinfra.com/",
			},
		},
	}
}

// Active returns the configured provider, or the primary one when the flag
// is empty or unrecognized.
func (s *Selector) Active() ProviderConfig {
	id, ok := ParseProviderID(s.flag)
	if !ok {
		id = PrimaryProvider
	}
	return s.providers[id]
}

func (s *Selector) Provider(id ProviderID) (ProviderConfig, bool) {
	p, ok := s.providers[id]
	return p, ok
}

func (s *Selector) HasCredential(id ProviderID) bool {
	p, ok := s.providers[id]
	return ok && p.HasCredential()
}

func (s *Selector) CredentialStatus() []CredentialStatus {
	active := s.Active().ID
	out := make([]CredentialStatus, 0, len(ProviderIDs))
	for _, id := range ProviderIDs {
		p := s.providers[id]
		out = append(out, CredentialStatus{Provider: id, Name: p.Name, Configured: p.HasCredential(), Active: id == active})
	}
	return out
}
