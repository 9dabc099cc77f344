package ui

import (
	"errors"
	"io"
	"net/http"
	"time"

	"goscores/domain/core"
	"goscores/domain/dataset"
	"goscores/domain/stats"
	"goscores/internal/analysis"
	"goscores/internal/api"
	apperrors "goscores/internal/errors"
	"goscores/internal/report"
	"goscores/internal/session"

	"github.com/gin-gonic/gin"
)

// OptionsResponse lists the filter domains offered to the user
type OptionsResponse struct {
	Domains dataset.Domains        `json:"domains"`
	Groups  []dataset.GroupMapping `json:"groups"`
	Default dataset.Selection      `json:"default"`
	Dataset dataset.Info           `json:"dataset"`
}

// SessionResponse is the state of one dashboard session
type SessionResponse struct {
	SessionID string            `json:"session_id"`
	CreatedAt time.Time         `json:"created_at"`
	Selection dataset.Selection `json:"selection"`
	Snapshot  stats.Snapshot    `json:"snapshot"`
}

func sessionResponse(sess *session.Session, selection dataset.Selection, snap stats.Snapshot) SessionResponse {
	return SessionResponse{
		SessionID: sess.ID().String(),
		CreatedAt: sess.CreatedAt(),
		Selection: selection,
		Snapshot:  snap,
	}
}

func (s *Server) handleOptions(c *gin.Context) {
	ds := s.sessions.Dataset()
	c.JSON(http.StatusOK, OptionsResponse{
		Domains: ds.Domains(),
		Groups:  dataset.GroupMappings(),
		Default: dataset.DefaultSelection(),
		Dataset: ds.Info(),
	})
}

func (s *Server) handleDashboard(c *gin.Context) {
	sel := selectionFromQuery(c)

	var snap stats.Snapshot
	if !s.withComputeSlot(c, "dashboard", func() { snap = analysis.Compute(s.sessions.Dataset(), sel) }) {
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleCorrelation(c *gin.Context) {
	var matrix stats.CorrelationMatrix
	if !s.withComputeSlot(c, "correlation", func() { matrix = analysis.Correlate(s.sessions.Dataset()) }) {
		return
	}
	c.JSON(http.StatusOK, matrix)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	sel := dataset.DefaultSelection()
	if err := c.ShouldBindJSON(&sel); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, apperrors.InvalidInput("malformed selection body: "+err.Error()))
		return
	}
	sel = normalizeSelection(sel)

	var sess *session.Session
	if !s.withComputeSlot(c, "session_create", func() { sess = s.sessions.Create(sel) }) {
		return
	}
	// one subscription per session; the hub fans out to every stream client
	sess.Subscribe(s.broadcaster)
	selection, snap := sess.State()
	c.JSON(http.StatusCreated, sessionResponse(sess, selection, snap))
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	selection, snap := sess.State()
	c.JSON(http.StatusOK, sessionResponse(sess, selection, snap))
}

func (s *Server) handleSelect(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}

	// fields left out of the body keep their current value; an empty body changes nothing
	sel := sess.Selection()
	if err := c.ShouldBindJSON(&sel); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, apperrors.InvalidInput("malformed selection body: "+err.Error()))
		return
	}
	sel = normalizeSelection(sel)

	var snap stats.Snapshot
	if !s.withComputeSlot(c, "session_select", func() { snap = sess.Select(sel) }) {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess, snap.Selection, snap))
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.NotFound("session", err))
		return
	}
	if err := s.sessions.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSessionEvents(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}

	id := sess.ID()
	s.hub.HandleSSE(c, id.String(), func() *api.SessionEvent {
		// the session may have been deleted or swept before the stream registered
		current, err := s.sessions.Get(id)
		if err != nil {
			return nil
		}
		snap := current.Snapshot()
		return &api.SessionEvent{
			SessionID: id.String(),
			EventType: api.EventSnapshot,
			Snapshot:  &snap,
		}
	})
}

func (s *Server) handleSessionKPIs(c *gin.Context) {
	sess, ok := s.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"kpis": report.KPICards(sess.Snapshot().Means)})
}

func (s *Server) lookupSession(c *gin.Context) (*session.Session, bool) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.NotFound("session", err))
		return nil, false
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return sess, true
}

// selectionFromQuery reads prep, gender and group. Missing parameters fall
// back to the default selection.
func selectionFromQuery(c *gin.Context) dataset.Selection {
	sel := dataset.DefaultSelection()
	if v, ok := c.GetQuery("prep"); ok {
		sel.Prep = v
	}
	if v, ok := c.GetQuery("gender"); ok {
		sel.Gender = v
	}
	if v, ok := c.GetQuery("group"); ok {
		sel.Group = dataset.Group(v)
	}
	return normalizeSelection(sel)
}

// normalizeSelection accepts a raw group code in place of its label
func normalizeSelection(sel dataset.Selection) dataset.Selection {
	if label, ok := dataset.GroupForCode(string(sel.Group)); ok {
		sel.Group = label
	}
	return sel
}
