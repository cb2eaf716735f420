// Package session keeps per-user state in memory: recipes, uploaded files and
// the chat transcript. Nothing is persisted; a session disappears when it is
// deleted or the process exits.
package session

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/example/recipe-assistant/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRecipe = errors.New("invalid recipe")
	ErrChatBusy      = errors.New("a chat request is already in progress")
)

type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Recipes  *RecipeStore  `json:"-"`
	Files    *FileStore    `json:"-"`
	Messages *Conversation `json:"-"`

	chatBusy atomic.Bool
	hub      *Hub
}

func newSession(id string, hub *Hub) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Recipes:   NewRecipeStore(),
		Files:     NewFileStore(),
		Messages:  NewConversation(),
		hub:       hub,
	}
}

// Bundle snapshots the recipes and files for the resolver.
func (s *Session) Bundle() models.ContextBundle {
	return models.ContextBundle{Recipes: s.Recipes.List(), Files: s.Files.List()}
}

func (s *Session) AddRecipe(in models.RecipeInput) (models.Recipe, error) {
	r, err := s.Recipes.Add(in)
	if err != nil {
		return r, err
	}
	s.publish(EventRecipeAdded, r)
	return r, nil
}

func (s *Session) AddFile(f models.UploadedFile) {
	s.Files.Add(f)
	s.publish(EventFileAdded, f)
}

func (s *Session) RemoveFile(id string) error {
	if !s.Files.Remove(id) {
		return ErrNotFound
	}
	s.publish(EventFileRemoved, map[string]string{"id": id})
	return nil
}

func (s *Session) AppendMessage(role models.Role, content, source string) models.Message {
	m := s.Messages.Append(role, content, source)
	s.publish(EventMessageAppended, m)
	return m
}

// Greet seeds the transcript with a greeting unless it already has messages.
func (s *Session) Greet(content, source string) (models.Message, bool) {
	m, ok := s.Messages.AppendIfEmpty(models.RoleAssistant, content, source)
	if ok {
		s.publish(EventMessageAppended, m)
	}
	return m, ok
}

// PublishStatus forwards a status payload (e.g. probe results) to subscribers.
func (s *Session) PublishStatus(payload any) { s.publish(EventStatus, payload) }

// TryBeginChat marks a chat request as outstanding. It returns false when one
// is already running for this session; call EndChat when done.
func (s *Session) TryBeginChat() bool { return s.chatBusy.CompareAndSwap(false, true) }

func (s *Session) EndChat() { s.chatBusy.Store(false) }

func (s *Session) publish(name string, payload any) {
	if s.hub != nil {
		s.hub.Publish(s.ID, name, payload)
	}
}

// Summary is the JSON view of a session.
type Summary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Recipes   int       `json:"recipes"`
	Files     int       `json:"files"`
	Messages  int       `json:"messages"`
}

func (s *Session) Summary() Summary {
	return Summary{ID: s.ID, CreatedAt: s.CreatedAt, Recipes: s.Recipes.Len(), Files: s.Files.Len(), Messages: s.Messages.Len()}
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	hub      *Hub
}

func NewManager(hub *Hub) *Manager {
	if hub == nil {
		hub = NewHub()
	}
	return &Manager{sessions: map[string]*Session{}, hub: hub}
}

func (m *Manager) Hub() *Hub { return m.hub }

func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString(), m.hub)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	return s, ok
}

// Delete drops a session and everything it holds.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.publish(EventSessionClosed, nil)
	return nil
}

// List returns sessions oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
