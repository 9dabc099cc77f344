package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, contentType, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPReaderCSV(t *testing.T) {
	srv := serve(t, "text/plain", "gender,math score\nfemale,72\nmale,69\n", http.StatusOK)

	table, err := NewHTTPReader(srv.URL+"/StudentsPerformance.csv", "data", time.Second).ReadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "math score"}, table.Headers)
	assert.Len(t, table.Rows, 2)
}

func TestHTTPReaderJSONDataPath(t *testing.T) {
	body := `{"data":[
		{"gender":"female","race/ethnicity":"group B","math score":72},
		{"gender":"male","math score":69.5,"lunch":null,"race/ethnicity":"group C"}
	],"next_cursor":""}`
	srv := serve(t, "application/json", body, http.StatusOK)

	table, err := NewHTTPReader(srv.URL, "data", time.Second).ReadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "race/ethnicity", "math score", "lunch"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"female", "group B", "72", ""}, table.Rows[0])
	assert.Equal(t, []string{"male", "group C", "69.5", ""}, table.Rows[1])
}

func TestHTTPReaderJSONRootArray(t *testing.T) {
	srv := serve(t, "application/json", `[{"gender":"female"}]`, http.StatusOK)

	table, err := NewHTTPReader(srv.URL, "data", time.Second).ReadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gender"}, table.Headers)
}

func TestHTTPReaderJSONErrors(t *testing.T) {
	srv := serve(t, "application/json", `{"data":{"gender":"female"}}`, http.StatusOK)
	_, err := NewHTTPReader(srv.URL, "data", time.Second).ReadTable(context.Background())
	assert.Error(t, err)

	srv = serve(t, "application/json", `{"data":[1,2]}`, http.StatusOK)
	_, err = NewHTTPReader(srv.URL, "data", time.Second).ReadTable(context.Background())
	assert.Error(t, err)
}

func TestHTTPReaderStatusError(t *testing.T) {
	srv := serve(t, "text/plain", "gone", http.StatusNotFound)
	_, err := NewHTTPReader(srv.URL, "", time.Second).ReadTable(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPReaderRejectsOversizedBody(t *testing.T) {
	csv := "gender,math score\nfemale,72\nmale,69\n"
	srv := serve(t, "text/csv", csv, http.StatusOK)

	reader := NewHTTPReader(srv.URL+"/big.csv", "", time.Second)
	reader.maxBytes = int64(len(csv)) - 1
	_, err := reader.ReadTable(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")

	reader.maxBytes = int64(len(csv))
	table, err := reader.ReadTable(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}
