package session

import (
	"encoding/json"
	"sync"
	"time"
)

// Event names published on a session's stream.
const (
	EventRecipeAdded     = "recipe.added"
	EventFileAdded       = "file.added"
	EventFileRemoved     = "file.removed"
	EventMessageAppended = "message.appended"
	EventStatus          = "status"
	EventSessionClosed   = "session.closed"
)

// Event is the JSON payload sent to subscribers.
type Event struct {
	Event     string    `json:"event"`
	SessionID string    `json:"session_id"`
	Payload   any       `json:"payload,omitempty"`
	At        time.Time `json:"at"`
}

type subscriber chan []byte

// Hub fans events out to the subscribers of each session.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[subscriber]struct{} // sessionID -> set of subscribers
}

func NewHub() *Hub { return &Hub{subs: map[string]map[subscriber]struct{}{}} }

// Subscribe returns a channel of encoded events and an unsubscribe func that
// must be called once.
func (h *Hub) Subscribe(sessionID string) (<-chan []byte, func()) {
	ch := make(subscriber, 16)
	h.mu.Lock()
	set := h.subs[sessionID]
	if set == nil {
		set = map[subscriber]struct{}{}
		h.subs[sessionID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[sessionID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, sessionID)
				}
			}
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, unsubscribe
}

// Publish never blocks; a subscriber with a full buffer misses the event.
func (h *Hub) Publish(sessionID, name string, payload any) {
	b, err := json.Marshal(Event{Event: name, SessionID: sessionID, Payload: payload, At: time.Now().UTC()})
	if err != nil {
		return
	}
	h.mu.RLock()
	for ch := range h.subs[sessionID] {
		select {
		case ch <- b:
		default:
		}
	}
	h.mu.RUnlock()
}

// Subscribers reports how many streams watch a session.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}
