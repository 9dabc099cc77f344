// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	computeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "goscores_compute_duration_seconds",
		Help:    "Duration of dashboard aggregate computations",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"operation"})

	computeRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goscores_compute_rejected_total",
		Help: "Requests cancelled while waiting for a computation slot",
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "goscores_sessions_active",
		Help: "Current number of dashboard sessions",
	})

	streamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "goscores_sse_clients",
		Help: "Current number of connected event stream clients",
	})

	datasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "goscores_dataset_rows",
		Help: "Number of rows in the loaded dataset",
	})
)

// ObserveCompute starts timing one computation; call the result when done
func ObserveCompute(operation string) func() {
	timer := prometheus.NewTimer(computeDuration.WithLabelValues(operation))
	return func() { timer.ObserveDuration() }
}

func ComputeRejected()          { computeRejected.Inc() }
func SetActiveSessions(n int)   { activeSessions.Set(float64(n)) }
func StreamClientConnected()    { streamClients.Inc() }
func StreamClientDisconnected() { streamClients.Dec() }
func SetDatasetRows(n int)      { datasetRows.Set(float64(n)) }

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
