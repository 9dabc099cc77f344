package api

import (
	"time"

	"goscores/domain/core"
	"goscores/domain/stats"
	"goscores/internal/session"
)

var _ session.Observer = (*SSEEventBroadcaster)(nil)

// SSEEventBroadcaster adapts the SSEHub to the session observer contract
type SSEEventBroadcaster struct {
	sseHub *SSEHub
}

// NewSSEEventBroadcaster creates a new SSE event broadcaster
func NewSSEEventBroadcaster(sseHub *SSEHub) *SSEEventBroadcaster {
	return &SSEEventBroadcaster{sseHub: sseHub}
}

// SnapshotChanged pushes the recomputed snapshot to the session's clients
func (seb *SSEEventBroadcaster) SnapshotChanged(id core.SessionID, snapshot stats.Snapshot) {
	seb.sseHub.Broadcast(SessionEvent{
		SessionID: id.String(),
		EventType: EventSnapshot,
		Snapshot:  &snapshot,
		Timestamp: time.Now(),
	})
}

// SessionClosed ends the streams of the session's clients
func (seb *SSEEventBroadcaster) SessionClosed(id core.SessionID) {
	seb.sseHub.Broadcast(SessionEvent{
		SessionID: id.String(),
		EventType: EventClosed,
		Timestamp: time.Now(),
	})
}
