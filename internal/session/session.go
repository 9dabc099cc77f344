package session

import (
	"sync"
	"time"

	"goscores/domain/core"
	"goscores/domain/dataset"
	"goscores/domain/stats"
	"goscores/internal/analysis"
)

// Observer is notified after every recompute of a session it subscribed to.
// Callbacks run synchronously while the session is locked and must not call
// back into the same session.
type Observer interface {
	SnapshotChanged(id core.SessionID, snapshot stats.Snapshot)
	SessionClosed(id core.SessionID)
}

// Session binds one user's selection to its derived snapshot
type Session struct {
	id        core.SessionID
	ds        *dataset.Dataset
	createdAt time.Time

	mu         sync.Mutex
	selection  dataset.Selection
	snapshot   stats.Snapshot
	observers  map[int]Observer
	nextID     int
	lastAccess time.Time
	closed     bool
}

func newSession(id core.SessionID, ds *dataset.Dataset, sel dataset.Selection, now time.Time) *Session {
	return &Session{
		id:         id,
		ds:         ds,
		createdAt:  now,
		selection:  sel,
		snapshot:   analysis.Compute(ds, sel),
		observers:  make(map[int]Observer),
		lastAccess: now,
	}
}

func (s *Session) ID() core.SessionID   { return s.id }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// State returns the current selection and snapshot together
func (s *Session) State() (dataset.Selection, stats.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return s.selection, s.snapshot
}

// Selection returns the current selection
func (s *Session) Selection() dataset.Selection {
	sel, _ := s.State()
	return sel
}

// Snapshot returns the snapshot for the current selection
func (s *Session) Snapshot() stats.Snapshot {
	_, snap := s.State()
	return snap
}

// Select changes the selection and recomputes synchronously. When the
// selection actually changed, observers are notified in subscription order
// before Select returns.
func (s *Session) Select(sel dataset.Selection) stats.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccess = time.Now()
	if s.closed || sel == s.selection {
		return s.snapshot
	}

	s.selection = sel
	s.snapshot = analysis.Compute(s.ds, sel)
	for _, o := range s.orderedObservers() {
		o.SnapshotChanged(s.id, s.snapshot)
	}
	return s.snapshot
}

// Subscribe registers an observer. The returned function removes it and is
// safe to call more than once.
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.observers[id] = o

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// ObserverCount returns the number of subscribed observers
func (s *Session) ObserverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// close notifies and drops all observers. Later Select calls are no-ops.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for _, o := range s.orderedObservers() {
		o.SessionClosed(s.id)
	}
	s.observers = make(map[int]Observer)
}

func (s *Session) orderedObservers() []Observer {
	out := make([]Observer, 0, len(s.observers))
	for id := 0; id < s.nextID; id++ {
		if o, ok := s.observers[id]; ok {
			out = append(out, o)
		}
	}
	return out
}
