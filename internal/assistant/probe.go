package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/recipe-assistant/internal/models"
	"github.com/example/recipe-assistant/internal/providers/llm"
)

// CanaryPrompt is sent once by Probe.
const CanaryPrompt = "Hello, are you working?"

// failureMarkers in an answer mean the provider is not really usable.
var failureMarkers = []string{"sorry", "apologize"}

type ProbeResult struct {
	Status   models.ProbeStatus `json:"status"`
	Provider llm.ProviderID     `json:"provider"`
	Name     string             `json:"name"`
}

// Source labels messages derived from this result: the provider id when
// connected, otherwise "mock".
func (p ProbeResult) Source() string {
	if p.Status == models.ProbeConnected {
		return string(p.Provider)
	}
	return models.SourceMock
}

// Probe checks whether the active provider answers. Without a credential it
// returns not-configured without touching the network. The result only
// drives the status indicator and greeting; later requests still try the
// provider on their own.
func (r *Resolver) Probe(ctx context.Context) ProbeResult {
	p := r.Selector.Active()
	res := ProbeResult{Status: models.ProbeNotConfigured, Provider: p.ID, Name: p.Name}
	if !p.HasCredential() {
		return res
	}
	reply := r.Answer(ctx, CanaryPrompt, models.ContextBundle{})
	res.Status = models.ProbeUnavailable
	if reply.Remote() && !containsFailureMarker(reply.Text) {
		res.Status = models.ProbeConnected
	}
	return res
}

func containsFailureMarker(s string) bool {
	s = strings.ToLower(s)
	for _, m := range failureMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Greeting is the first assistant message shown after a probe.
func (r *Resolver) Greeting(res ProbeResult) string {
	if res.Status == models.ProbeConnected {
		return fmt.Sprintf("Hello! I'm your AI recipe assistant powered by %s. I'm connected and ready to help with all your cooking questions!\n\nWhat would you like to cook today?", res.Name)
	}
	p, _ := r.Selector.Provider(res.Provider)
	return fmt.Sprintf(`Welcome to Recipe Assistant!

I'm currently in demo mode. To enable %s responses:

1. Get a FREE API key from %s
2. Set %s=your_key in the environment or a .env file
3. Restart the service

In the meantime, I can still help with cooking advice! What would you like to know?`, p.Name, p.HelpURL, p.CredentialEnv)
}
