package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"goscores/internal/api"
	"goscores/internal/config"
	"goscores/internal/metrics"
	"goscores/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// Server is the public dashboard API
type Server struct {
	router      *gin.Engine
	sessions    *session.Manager
	hub         *api.SSEHub
	broadcaster *api.SSEEventBroadcaster
	templates   *template.Template
	computeSem  *semaphore.Weighted
	httpServer  *http.Server
}

// NewServer wires the routes over a session manager and SSE hub
func NewServer(sessions *session.Manager, hub *api.SSEHub, cfg config.ServerConfig) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	limit := cfg.MaxConcurrentComputations
	if limit < 1 {
		limit = 1
	}

	s := &Server{
		router:      gin.Default(),
		sessions:    sessions,
		hub:         hub,
		broadcaster: api.NewSSEEventBroadcaster(hub),
		templates:   templates,
		computeSem:  semaphore.NewWeighted(int64(limit)),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	apiGroup := s.router.Group("/api")
	{
		apiGroup.GET("/options", s.handleOptions)
		apiGroup.GET("/dashboard", s.handleDashboard)
		apiGroup.GET("/correlation", s.handleCorrelation)

		apiGroup.POST("/sessions", s.handleCreateSession)
		apiGroup.GET("/sessions/:id", s.handleGetSession)
		apiGroup.PUT("/sessions/:id/selection", s.handleSelect)
		apiGroup.DELETE("/sessions/:id", s.handleDeleteSession)
		apiGroup.GET("/sessions/:id/events", s.handleSessionEvents)
		apiGroup.GET("/sessions/:id/kpis", s.handleSessionKPIs)
	}

	s.router.GET("/report", s.handleReport)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Starting goscores dashboard API on http://%s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// withComputeSlot runs fn while holding one recompute slot. It returns false
// when the request was cancelled before a slot became free.
func (s *Server) withComputeSlot(c *gin.Context, operation string, fn func()) bool {
	if err := s.computeSem.Acquire(c.Request.Context(), 1); err != nil {
		log.Printf("[Server] Request cancelled while waiting for a compute slot: %v", err)
		metrics.ComputeRejected()
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return false
	}
	defer s.computeSem.Release(1)

	done := metrics.ObserveCompute(operation)
	defer done()
	fn()
	return true
}
