package session

import (
	"sync"
	"time"

	"github.com/example/recipe-assistant/internal/models"
)

// Conversation is an append-only transcript.
type Conversation struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewConversation() *Conversation { return &Conversation{} }

func (c *Conversation) Append(role models.Role, content, source string) models.Message {
	m := models.Message{Role: role, Content: content, Source: source, CreatedAt: time.Now().UTC()}
	c.mu.Lock()
	c.messages = append(c.messages, m)
	c.mu.Unlock()
	return m
}

// AppendIfEmpty appends only when the transcript has no messages yet.
func (c *Conversation) AppendIfEmpty(role models.Role, content, source string) (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) > 0 {
		return models.Message{}, false
	}
	m := models.Message{Role: role, Content: content, Source: source, CreatedAt: time.Now().UTC()}
	c.messages = append(c.messages, m)
	return m, true
}

func (c *Conversation) List() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
