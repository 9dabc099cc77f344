package ui

import (
	"encoding/json"
	"net/http"
	"time"

	"goscores/internal/api"
	"goscores/internal/metrics"
	"goscores/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewAdminHandler serves health, dataset metadata, metrics and pprof on the
// admin port
func NewAdminHandler(sessions *session.Manager, hub *api.SSEHub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	started := time.Now()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]interface{}{
			"status":         "ok",
			"uptime_seconds": int(time.Since(started).Seconds()),
			"sessions":       sessions.Len(),
			"streaming":      len(hub.GetActiveSessions()),
		})
	})
	r.Get("/dataset", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, sessions.Dataset().Info())
	})
	r.Handle("/metrics", metrics.Handler())
	r.Mount("/debug", middleware.Profiler())

	return r
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
