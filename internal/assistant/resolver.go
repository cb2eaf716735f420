// Package assistant turns a chat prompt into an answer. It calls the active
// remote provider when one is usable and otherwise answers locally, so
// callers always get text back.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/recipe-assistant/internal/models"
	"github.com/example/recipe-assistant/internal/providers/llm"
)

// Reply is an answer plus where it came from.
type Reply struct {
	Text string `json:"text"`
	// Source is the provider id, or "mock" for local answers.
	Source string `json:"source"`
	// FallbackReason is set when a configured provider was skipped or failed.
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// Remote reports whether a provider produced the text.
func (r Reply) Remote() bool { return r.Source != models.SourceMock }

type Resolver struct {
	Selector *llm.Selector
	Clients  map[llm.ProviderID]llm.Client
	Mock     *llm.MockGenerator
	Timeout  time.Duration
}

func NewResolver(sel *llm.Selector, clients map[llm.ProviderID]llm.Client, mock *llm.MockGenerator, timeout time.Duration) *Resolver {
	if mock == nil {
		mock = llm.NewMockGenerator()
	}
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}
	return &Resolver{Selector: sel, Clients: clients, Mock: mock, Timeout: timeout}
}

// Resolve returns the answer text for prompt. It never returns an empty string.
func (r *Resolver) Resolve(ctx context.Context, prompt string, bundle models.ContextBundle) string {
	return r.Answer(ctx, prompt, bundle).Text
}

// Answer tries the active provider once and falls back to the mock generator
// on any failure, including a panicking client.
func (r *Resolver) Answer(ctx context.Context, prompt string, bundle models.ContextBundle) (reply Reply) {
	p := r.Selector.Active()
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("provider", string(p.ID)).Interface("panic", rec).Msg("provider call panicked")
			reply = r.mock(prompt, bundle, fmt.Sprintf("panic: %v", rec))
		}
	}()

	if !p.HasCredential() {
		log.Debug().Str("provider", string(p.ID)).Msg("no credential, answering locally")
		return r.mock(prompt, bundle, "")
	}

	client, ok := r.Clients[p.ID]
	if !ok || client == nil {
		return r.mock(prompt, bundle, "no client for "+string(p.ID))
	}

	callCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	start := time.Now()
	text, err := client.Generate(callCtx, prompt, bundle)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		log.Warn().Err(err).Str("provider", string(p.ID)).Dur("took", time.Since(start)).Msg("provider failed, using fallback")
		return r.mock(prompt, bundle, err.Error())
	}
	log.Debug().Str("provider", string(p.ID)).Dur("took", time.Since(start)).Msg("provider answered")
	return Reply{Text: text, Source: string(p.ID)}
}

func (r *Resolver) mock(prompt string, bundle models.ContextBundle, reason string) Reply {
	return Reply{Text: r.Mock.Generate(prompt, bundle), Source: models.SourceMock, FallbackReason: reason}
}
