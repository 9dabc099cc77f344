package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGauges(t *testing.T) {
	SetActiveSessions(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(activeSessions))

	before := testutil.ToFloat64(streamClients)
	StreamClientConnected()
	StreamClientConnected()
	StreamClientDisconnected()
	assert.Equal(t, before+1, testutil.ToFloat64(streamClients))
}

func TestHandlerExposesCollectors(t *testing.T) {
	done := ObserveCompute("dashboard")
	done()
	SetDatasetRows(1000)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `goscores_compute_duration_seconds_count{operation="dashboard"}`)
	assert.Contains(t, string(body), "goscores_dataset_rows 1000")
}
