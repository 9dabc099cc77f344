package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"goscores/domain/core"
	"goscores/domain/dataset"
	"goscores/internal"
	"goscores/internal/config"
	"goscores/internal/metrics"
)

var logger = internal.DefaultLogger.Component("Sessions")

// Manager is the in-memory registry of dashboard sessions over one dataset
type Manager struct {
	ds     *dataset.Dataset
	config config.SessionConfig

	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
}

// NewManager creates a manager for the loaded dataset
func NewManager(ds *dataset.Dataset, cfg config.SessionConfig) *Manager {
	return &Manager{
		ds:       ds,
		config:   cfg,
		sessions: make(map[core.SessionID]*Session),
	}
}

// Dataset returns the dataset every session computes over
func (m *Manager) Dataset() *dataset.Dataset {
	return m.ds
}

// Create starts a session with the given initial selection
func (m *Manager) Create(sel dataset.Selection) *Session {
	s := newSession(core.NewSessionID(), m.ds, sel, time.Now())

	m.mu.Lock()
	m.sessions[s.id] = s
	total := len(m.sessions)
	m.mu.Unlock()
	metrics.SetActiveSessions(total)

	logger.Debug("created session %s (%s), %d active", s.id, sel, total)
	return s
}

// Get looks up a session by id
func (m *Manager) Get(id core.SessionID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete closes and removes a session
func (m *Manager) Delete(id core.SessionID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	total := len(m.sessions)
	m.mu.Unlock()
	metrics.SetActiveSessions(total)

	if !ok {
		return fmt.Errorf("%w: %s", core.ErrSessionNotFound, id)
	}
	s.close()
	logger.Debug("deleted session %s", id)
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle for longer than the TTL as of now
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.config.TTL)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	total := len(m.sessions)
	m.mu.Unlock()
	metrics.SetActiveSessions(total)

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		logger.Info("evicted %d idle sessions", len(expired))
	}
	return len(expired)
}

// Run sweeps idle sessions every SweepInterval until ctx is done
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
