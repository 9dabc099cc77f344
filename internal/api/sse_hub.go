package api

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"goscores/domain/stats"
	"goscores/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Event types streamed to dashboard clients
const (
	EventSnapshot = "snapshot"
	EventClosed   = "closed"
)

// SessionEvent is one message streamed to the clients of a session
type SessionEvent struct {
	SessionID string          `json:"session_id"`
	EventType string          `json:"event_type"`
	Snapshot  *stats.Snapshot `json:"snapshot,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// SSEHub fans session events out to Server-Sent Events clients
type SSEHub struct {
	clients      map[string]map[chan SessionEvent]bool
	clientsMu    sync.RWMutex
	broadcast    chan SessionEvent
	done         chan struct{}
	closeOnce    sync.Once
	PingInterval time.Duration
}

// NewSSEHub creates a new SSE hub and starts its dispatch loop
func NewSSEHub() *SSEHub {
	hub := &SSEHub{
		clients:      make(map[string]map[chan SessionEvent]bool),
		broadcast:    make(chan SessionEvent, 100),
		done:         make(chan struct{}),
		PingInterval: 30 * time.Second,
	}

	go hub.run()
	return hub
}

// run delivers broadcast events to registered clients
func (h *SSEHub) run() {
	for {
		select {
		case <-h.done:
			return

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			if clients, exists := h.clients[event.SessionID]; exists {
				for clientChan := range clients {
					select {
					case clientChan <- event:
					default:
						log.Printf("[SSE] Client channel full for session %s, skipping event",
							event.SessionID)
					}
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Close stops the dispatch loop
func (h *SSEHub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Register adds a client for a session and returns its event channel
func (h *SSEHub) Register(sessionID string) chan SessionEvent {
	clientChan := make(chan SessionEvent, 10)

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[chan SessionEvent]bool)
	}
	h.clients[sessionID][clientChan] = true
	metrics.StreamClientConnected()
	log.Printf("[SSE] Client registered for session %s (total clients: %d)",
		sessionID, len(h.clients[sessionID]))
	return clientChan
}

// Unregister removes a client channel
func (h *SSEHub) Unregister(sessionID string, clientChan chan SessionEvent) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if clients, exists := h.clients[sessionID]; exists {
		if clients[clientChan] {
			metrics.StreamClientDisconnected()
		}
		delete(clients, clientChan)
		log.Printf("[SSE] Client unregistered from session %s (remaining clients: %d)",
			sessionID, len(clients))
		if len(clients) == 0 {
			delete(h.clients, sessionID)
		}
	}
}

// Broadcast queues an event for all clients listening to a session
func (h *SSEHub) Broadcast(event SessionEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[SSE] Broadcast channel full, dropping event: %s", event.EventType)
	}
}

// InitialEvent builds the first event of a stream. It runs after the client
// is registered, so no broadcast issued after it reads session state is lost.
// Returning nil means the session is gone and the stream ends with a closed
// event.
type InitialEvent func() *SessionEvent

// HandleSSE streams events for sessionID until the client disconnects or the
// session closes. The event from initial is written before any broadcast.
func (h *SSEHub) HandleSSE(c *gin.Context, sessionID string, initial InitialEvent) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Cache-Control")

	clientChan := h.Register(sessionID)
	defer h.Unregister(sessionID, clientChan)

	var pending *SessionEvent
	if initial != nil {
		pending = initial()
		if pending == nil {
			pending = &SessionEvent{SessionID: sessionID, EventType: EventClosed, Timestamp: time.Now()}
		}
	}
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		if pending != nil {
			event := *pending
			pending = nil
			writeEvent(c, event)
			return event.EventType != EventClosed
		}

		select {
		case event := <-clientChan:
			writeEvent(c, event)
			return event.EventType != EventClosed

		case <-time.After(h.PingInterval):
			c.SSEvent("ping", `{"status": "alive", "timestamp": "`+time.Now().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			return false
		}
	})
}

func writeEvent(c *gin.Context, event SessionEvent) {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("[SSE] Failed to marshal event: %v", err)
		return
	}
	c.SSEvent(event.EventType, string(eventJSON))
}

// GetActiveSessions returns sessions with active SSE clients
func (h *SSEHub) GetActiveSessions() []string {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	sessions := make([]string, 0, len(h.clients))
	for sessionID := range h.clients {
		sessions = append(sessions, sessionID)
	}
	return sessions
}

// GetClientCount returns the number of active clients for a session
func (h *SSEHub) GetClientCount(sessionID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	if clients, exists := h.clients[sessionID]; exists {
		return len(clients)
	}
	return 0
}
