package llm

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/example/recipe-assistant/internal/config"
)

// NewClient returns the client for one provider. Providers without a
// credential still get a client; the resolver never dispatches to them.
func NewClient(ctx context.Context, cfg config.Config, p ProviderConfig, hc *http.Client) Client {
	if hc == nil {
		hc = newHTTPClient(cfg.RequestTimeout)
	}
	switch p.ID {
	case ProviderHuggingFace:
		return &HuggingFaceClient{Provider: p, HTTP: hc}
	case ProviderDeepInfra:
		return &DeepInfraClient{Provider: p}
	}
	if cfg.GeminiTransport == "sdk" && p.HasCredential() {
		c, err := NewGeminiSDKClient(ctx, p)
		if err == nil {
			return c
		}
		log.Warn().Err(err).Msg("gemini sdk unavailable, using http transport")
	}
	return &GeminiHTTPClient{Provider: p, HTTP: hc}
}

// NewClients builds one client per known provider.
func NewClients(ctx context.Context, cfg config.Config, sel *Selector) map[ProviderID]Client {
	hc := newHTTPClient(cfg.RequestTimeout)
	out := make(map[ProviderID]Client, len(ProviderIDs))
	for _, id := range ProviderIDs {
		p, _ := sel.Provider(id)
		out[id] = NewClient(ctx, cfg, p, hc)
	}
	return out
}

// CloseClients releases clients that hold connections (the SDK transport).
func CloseClients(clients map[ProviderID]Client) {
	for id, c := range clients {
		if cl, ok := c.(io.Closer); ok {
			if err := cl.Close(); err != nil {
				log.Debug().Err(err).Str("provider", string(id)).Msg("close client")
			}
		}
	}
}
