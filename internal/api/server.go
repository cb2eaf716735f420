package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/example/recipe-assistant/internal/assistant"
	"github.com/example/recipe-assistant/internal/config"
	"github.com/example/recipe-assistant/internal/session"
)

type Server struct {
	cfg      config.Config
	sessions *session.Manager
	resolver *assistant.Resolver
	chatRate *rate.Limiter
}

func NewServer(cfg config.Config, sessions *session.Manager, resolver *assistant.Resolver) *Server {
	limit := rate.Inf
	if cfg.ChatRatePerSecond > 0 {
		limit = rate.Limit(cfg.ChatRatePerSecond)
	}
	burst := cfg.ChatBurst
	if burst <= 0 {
		burst = 1
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	return &Server{cfg: cfg, sessions: sessions, resolver: resolver, chatRate: rate.NewLimiter(limit, burst)}
}

// Handler returns the routed handler wrapped in logging and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return requestLog(cors(mux))
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/providers", s.handleProviders)

	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)

	mux.HandleFunc("POST /api/sessions/{id}/recipes", s.handleAddRecipe)
	mux.HandleFunc("GET /api/sessions/{id}/recipes", s.handleListRecipes)
	mux.HandleFunc("GET /api/sessions/{id}/recipes/{rid}", s.handleGetRecipe)

	mux.HandleFunc("POST /api/sessions/{id}/files", s.handleUploadFiles)
	mux.HandleFunc("GET /api/sessions/{id}/files", s.handleListFiles)
	mux.HandleFunc("GET /api/sessions/{id}/files/{fid}", s.handleGetFile)
	mux.HandleFunc("DELETE /api/sessions/{id}/files/{fid}", s.handleDeleteFile)
	mux.HandleFunc("GET /api/sessions/{id}/files/{fid}/thumbnail", s.handleThumbnail)

	mux.HandleFunc("GET /api/sessions/{id}/messages", s.handleListMessages)
	mux.HandleFunc("POST /api/sessions/{id}/chat", s.handleChat)
	mux.HandleFunc("POST /api/sessions/{id}/probe", s.handleProbe)
	mux.HandleFunc("GET /api/sessions/{id}/events", s.handleEvents)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
	}()
	log.Info().Str("addr", addr).Msg("server listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}
