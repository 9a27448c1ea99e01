package loop

import (
	"sync"
	"time"
)

// HubEventType identifies the type of hub event.
type HubEventType int

const (
	// EventServerShutdown asks the session to show the shutdown notice and leave.
	EventServerShutdown HubEventType = iota
)

// HubEvent is sent from the hub to a session.
type HubEvent struct {
	Type HubEventType
}

// Handle is a session's registration with a Hub.
type Handle struct {
	ID       int
	Username string
	EventsCh chan HubEvent
}

// Hub tracks the sessions of a multi-user server so they can be told about a
// shutdown and waited for. Sessions do not share game state.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[int]*Handle)}
}

// Register adds a session.
func (h *Hub) Register(username string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &Handle{
		ID:       h.nextID,
		Username: username,
		EventsCh: make(chan HubEvent, 4),
	}
	h.nextID++
	h.clients[handle.ID] = handle
	return handle
}

// Unregister removes a session. Unknown IDs are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Players returns the number of registered sessions.
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown notifies every session and waits until all have unregistered, or
// until timeout. Reports whether every session left in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.RLock()
	for _, handle := range h.clients {
		select {
		case handle.EventsCh <- HubEvent{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Players() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
