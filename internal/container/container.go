package container

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	domainDataset "goscores/domain/dataset"
	"goscores/internal/api"
	"goscores/internal/config"
	"goscores/internal/dataset"
	"goscores/internal/metrics"
	"goscores/internal/session"
	"goscores/ui"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Data
	Dataset *domainDataset.Dataset

	// Dashboard components
	Sessions *session.Manager
	SSEHub   *api.SSEHub
	Server   *ui.Server

	admin  *http.Server
	cancel context.CancelFunc
}

// New loads the dataset and wires every component. Load failures are
// returned unchanged so the caller can treat them as fatal.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	ds, err := dataset.Load(ctx, cfg.Dataset)
	if err != nil {
		return nil, err
	}
	return NewWithDataset(cfg, ds)
}

// NewWithDataset wires the components over an already loaded dataset
func NewWithDataset(cfg *config.Config, ds *domainDataset.Dataset) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if ds == nil {
		return nil, fmt.Errorf("dataset cannot be nil")
	}

	metrics.SetDatasetRows(ds.Len())
	c := &Container{
		Config:   cfg,
		Dataset:  ds,
		Sessions: session.NewManager(ds, cfg.Sessions),
		SSEHub:   api.NewSSEHub(),
	}

	server, err := ui.NewServer(c.Sessions, c.SSEHub, cfg.Server)
	if err != nil {
		c.SSEHub.Close()
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}
	c.Server = server

	if cfg.Profiling.Enabled {
		c.admin = &http.Server{
			Addr:              ":" + cfg.Profiling.Port,
			Handler:           ui.NewAdminHandler(c.Sessions, c.SSEHub),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return c, nil
}

// Start launches the session janitor and the admin listener, then serves the
// public API until it stops
func (c *Container) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.Sessions.Run(ctx)

	if c.admin != nil {
		go func() {
			log.Printf("Admin server starting on %s", c.admin.Addr)
			log.Printf("View profiles: go tool pprof -http=:8081 http://localhost%s/debug/pprof/profile?seconds=30", c.admin.Addr)
			if err := c.admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Admin server failed: %v", err)
			}
		}()
	}

	return c.Server.Start(":" + c.Config.Server.Port)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	var firstErr error
	if err := c.Server.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if c.admin != nil {
		if err := c.admin.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.SSEHub.Close()
	return firstErr
}
