package loop

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// EventType identifies a host event sent to a connected client.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is a message from the host process to a client.
type Event struct {
	Type EventType
}

// Handle is a client's registration with a Registry.
type Handle struct {
	ID       int
	Username string
	Events   chan Event // Closed when the client is unregistered
}

// Registry tracks the clients connected to a multi-session host so they can be
// told about a shutdown and waited for.
type Registry struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
	logger  *log.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		clients: make(map[int]*Handle),
		nextID:  1,
		logger:  logger,
	}
}

// Register adds a client and returns its handle.
func (r *Registry) Register(username string) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := &Handle{
		ID:       r.nextID,
		Username: username,
		Events:   make(chan Event, 4),
	}
	r.nextID++
	r.clients[h.ID] = h
	r.logger.Debug("client registered", "id", h.ID, "user", username, "clients", len(r.clients))
	return h
}

// Unregister removes a client and closes its event channel. Unknown IDs are ignored.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.clients[id]
	if !ok {
		return
	}
	close(h.Events)
	delete(r.clients, id)
	r.logger.Debug("client unregistered", "id", id, "user", h.Username, "clients", len(r.clients))
}

// Count returns the number of registered clients.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Shutdown notifies all registered clients and waits until they have unregistered
// or timeout elapses. Reports whether every client left in time.
func (r *Registry) Shutdown(timeout time.Duration) bool {
	r.mu.RLock()
	for _, h := range r.clients {
		select {
		case h.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	r.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(shutdownPollInterval)
	defer ticker.Stop()

	for {
		if r.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			r.logger.Warn("shutdown timed out", "clients", r.Count())
			return false
		case <-ticker.C:
		}
	}
}
