package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/example/recipe-assistant/internal/assistant"
	"github.com/example/recipe-assistant/internal/files"
	"github.com/example/recipe-assistant/internal/models"
	"github.com/example/recipe-assistant/internal/session"
)

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	sel := s.resolver.Selector
	respondJSON(w, http.StatusOK, map[string]any{
		"active":    sel.Active(),
		"providers": sel.CredentialStatus(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	log.Info().Str("session", sess.ID).Msg("session created")
	respondJSON(w, http.StatusCreated, sess.Summary())
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	list := s.sessions.List()
	out := make([]session.Summary, 0, len(list))
	for _, sess := range list {
		out = append(out, sess.Summary())
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.Summary())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recipeView is a recipe as the list view shows it.
type recipeView struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Ingredients  []string          `json:"ingredients"`
	Instructions string            `json:"instructions,omitempty"`
	CookingTime  *int              `json:"cooking_time,omitempty"`
	Difficulty   models.Difficulty `json:"difficulty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func viewRecipe(r models.Recipe) recipeView {
	return recipeView{
		ID:           r.ID,
		Title:        r.Title,
		Ingredients:  r.Ingredients(),
		Instructions: r.Instructions,
		CookingTime:  r.CookingTime,
		Difficulty:   r.Difficulty,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *Server) handleAddRecipe(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var in models.RecipeInput
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	rec, err := sess.AddRecipe(in)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, viewRecipe(rec))
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	list := sess.Recipes.List()
	out := make([]recipeView, 0, len(list))
	for _, rec := range list {
		out = append(out, viewRecipe(rec))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("rid"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}
	rec, ok := sess.Recipes.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "recipe not found")
		return
	}
	respondJSON(w, http.StatusOK, viewRecipe(rec))
}

func (s *Server) handleUploadFiles(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			respondError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		respondError(w, http.StatusBadRequest, "no files in field \"file\"")
		return
	}
	lastModified := time.Now().UTC()
	if v := r.FormValue("last_modified"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
			lastModified = time.UnixMilli(ms).UTC()
		}
	}

	added := make([]models.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "read upload: "+err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, "read upload: "+err.Error())
			return
		}
		uf := processUpload(fh.Filename, fh.Header.Get("Content-Type"), data, lastModified)
		sess.AddFile(uf)
		added = append(added, uf)
	}
	respondJSON(w, http.StatusCreated, added)
}

// processUpload builds the stored file with its excerpt and thumbnail.
// Extraction problems are logged, not returned: the file is kept either way.
func processUpload(name, mime string, data []byte, lastModified time.Time) models.UploadedFile {
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	uf := models.UploadedFile{
		ID:           uuid.NewString(),
		Name:         name,
		Type:         mime,
		Size:         int64(len(data)),
		LastModified: lastModified,
		Data:         data,
	}
	if files.Detect(name, mime, data) == files.KindImage {
		thumb, err := files.Thumbnail(data, files.DefaultThumbnailSide)
		if err != nil {
			log.Debug().Err(err).Str("file", name).Msg("no thumbnail")
		} else {
			uf.Thumbnail = thumb
			uf.HasThumbnail = true
		}
		return uf
	}
	excerpt, err := files.Extract(name, mime, data)
	switch {
	case errors.Is(err, files.ErrUnsupported):
	case err != nil:
		log.Warn().Err(err).Str("file", name).Msg("text extraction failed")
	default:
		uf.Excerpt = excerpt
	}
	return uf
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.Files.List())
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	f, ok := sess.Files.Get(r.PathValue("fid"))
	if !ok {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	respondJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := sess.RemoveFile(r.PathValue("fid")); err != nil {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	f, ok := sess.Files.Get(r.PathValue("fid"))
	if !ok || !f.HasThumbnail {
		respondError(w, http.StatusNotFound, "thumbnail not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Thumbnail)))
	w.Write(f.Thumbnail)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.Messages.List())
}

type chatResponse struct {
	Message        models.Message `json:"message"`
	FallbackReason string         `json:"fallback_reason,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	prompt := strings.TrimSpace(req.Message)
	if prompt == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if !sess.TryBeginChat() {
		respondError(w, http.StatusConflict, session.ErrChatBusy.Error())
		return
	}
	defer sess.EndChat()
	if !s.chatRate.Allow() {
		respondError(w, http.StatusTooManyRequests, "too many chat requests")
		return
	}

	sess.AppendMessage(models.RoleUser, prompt, "")
	// The reply is appended even if the client goes away meanwhile.
	reply := s.resolver.Answer(context.WithoutCancel(r.Context()), prompt, sess.Bundle())
	msg := sess.AppendMessage(models.RoleAssistant, reply.Text, reply.Source)
	respondJSON(w, http.StatusOK, chatResponse{Message: msg, FallbackReason: reply.FallbackReason})
}

type probeResponse struct {
	assistant.ProbeResult
	Greeting string `json:"greeting"`
	Greeted  bool   `json:"greeted"`
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	res := s.resolver.Probe(r.Context())
	greeting := s.resolver.Greeting(res)
	_, greeted := sess.Greet(greeting, res.Source())
	sess.PublishStatus(res)
	log.Info().Str("session", sess.ID).Str("provider", string(res.Provider)).Str("status", string(res.Status)).Msg("probe")
	respondJSON(w, http.StatusOK, probeResponse{ProbeResult: res, Greeting: greeting, Greeted: greeted})
}
