package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goscores/domain/core"
	"goscores/domain/dataset"
	"goscores/domain/stats"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamRecorder adds CloseNotify, which gin's Stream requires
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
}

func TestBroadcastReachesOnlySessionClients(t *testing.T) {
	hub := NewSSEHub()
	defer hub.Close()

	a := hub.Register("a")
	b := hub.Register("b")
	assert.Equal(t, 1, hub.GetClientCount("a"))
	assert.ElementsMatch(t, []string{"a", "b"}, hub.GetActiveSessions())

	hub.Broadcast(SessionEvent{SessionID: "a", EventType: EventSnapshot})

	select {
	case event := <-a:
		assert.Equal(t, EventSnapshot, event.EventType)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected event for session a")
	}
	select {
	case <-b:
		t.Fatal("session b must not receive events for a")
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister("a", a)
	assert.Equal(t, 0, hub.GetClientCount("a"))
}

func TestHandleSSEStreamsUntilClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewSSEHub()
	defer hub.Close()
	broadcaster := NewSSEEventBroadcaster(hub)

	id := core.NewSessionID()
	initial := stats.Snapshot{Selection: dataset.DefaultSelection(), Empty: true}

	rec := newStreamRecorder()
	c, _ := gin.CreateTestContext(rec)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.Request = httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		hub.HandleSSE(c, id.String(), func() *SessionEvent {
			return &SessionEvent{SessionID: id.String(), EventType: EventSnapshot, Snapshot: &initial}
		})
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.GetClientCount(id.String()) == 1 }, time.Second, 5*time.Millisecond)
	broadcaster.SnapshotChanged(id, stats.Snapshot{MatchedRows: 7})
	broadcaster.SessionClosed(id)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("stream did not end after session closed")
	}

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event:snapshot"))
	assert.Contains(t, body, "event:closed")
	assert.Contains(t, body, `"matched_rows":7`)
	assert.Equal(t, 0, hub.GetClientCount(id.String()))
}

func newStreamContext(t *testing.T) (*gin.Context, *streamRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := newStreamRecorder()
	c, _ := gin.CreateTestContext(rec)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	c.Request = httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	return c, rec
}

func TestHandleSSERegistersBeforeInitialRead(t *testing.T) {
	hub := NewSSEHub()
	defer hub.Close()
	broadcaster := NewSSEEventBroadcaster(hub)
	id := core.NewSessionID()
	c, rec := newStreamContext(t)

	done := make(chan struct{})
	go func() {
		hub.HandleSSE(c, id.String(), func() *SessionEvent {
			// a selection change lands while the stream reads its first state
			assert.Equal(t, 1, hub.GetClientCount(id.String()))
			broadcaster.SnapshotChanged(id, stats.Snapshot{MatchedRows: 7})
			broadcaster.SessionClosed(id)
			return &SessionEvent{SessionID: id.String(), EventType: EventSnapshot, Snapshot: &stats.Snapshot{MatchedRows: 3}}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("stream did not end after session closed")
	}

	body := rec.Body.String()
	assert.Less(t, strings.Index(body, `"matched_rows":3`), strings.Index(body, `"matched_rows":7`))
	assert.Contains(t, body, "event:closed")
}

func TestHandleSSEEndsWhenSessionGone(t *testing.T) {
	hub := NewSSEHub()
	defer hub.Close()
	c, rec := newStreamContext(t)

	done := make(chan struct{})
	go func() {
		hub.HandleSSE(c, "gone", func() *SessionEvent { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream for a missing session must end immediately")
	}
	assert.Contains(t, rec.Body.String(), "event:closed")
	assert.NotContains(t, rec.Body.String(), "event:snapshot")
	assert.Equal(t, 0, hub.GetClientCount("gone"))
}
