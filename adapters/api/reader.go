package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"goscores/adapters/excel"
	"goscores/domain/dataset"
	"goscores/ports"

	"github.com/tidwall/gjson"
)

var _ ports.TableReader = (*HTTPReader)(nil)

// defaultMaxBodyBytes caps the downloaded dataset size
const defaultMaxBodyBytes = 64 << 20

// HTTPReader fetches the raw table from a URL serving CSV or JSON
type HTTPReader struct {
	url        string
	jsonPath   string
	httpClient *http.Client
	maxBytes   int64
}

// NewHTTPReader creates a reader for url. jsonPath is the gjson path to the
// record array when the response is JSON; empty means the document root.
func NewHTTPReader(url, jsonPath string, timeout time.Duration) *HTTPReader {
	return &HTTPReader{
		url:        url,
		jsonPath:   jsonPath,
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   defaultMaxBodyBytes,
	}
}

// ReadTable downloads and parses the dataset
func (r *HTTPReader) ReadTable(ctx context.Context) (*dataset.RawTable, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/json;q=0.9, */*;q=0.5")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > r.maxBytes {
		return nil, fmt.Errorf("dataset at %s exceeds %d bytes", r.url, r.maxBytes)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset URL returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	log.Printf("[HTTPReader] Downloaded %d bytes from %s in %v", len(body), r.url, time.Since(startTime))

	if r.isJSON(resp.Header.Get("Content-Type"), body) {
		return r.parseJSON(body)
	}
	return excel.ParseCSV(r.url, bytes.NewReader(body))
}

func (r *HTTPReader) isJSON(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}
	if strings.HasSuffix(strings.ToLower(strings.SplitN(r.url, "?", 2)[0]), ".json") {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') && gjson.ValidBytes(trimmed)
}

// parseJSON turns an array of flat objects into a raw table. Headers are the
// union of keys in first-seen document order.
func (r *HTTPReader) parseJSON(body []byte) (*dataset.RawTable, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	data := gjson.ParseBytes(body)
	if r.jsonPath != "" && !data.IsArray() {
		data = gjson.GetBytes(body, r.jsonPath)
		if !data.Exists() {
			return nil, fmt.Errorf("data path '%s' not found in response", r.jsonPath)
		}
	}
	if !data.IsArray() {
		return nil, fmt.Errorf("data path '%s' is not an array", r.jsonPath)
	}

	var headers []string
	index := make(map[string]int)
	var objects []gjson.Result
	var parseErr error
	data.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			parseErr = fmt.Errorf("record %d is not an object", len(objects))
			return false
		}
		item.ForEach(func(key, _ gjson.Result) bool {
			if _, ok := index[key.String()]; !ok {
				index[key.String()] = len(headers)
				headers = append(headers, key.String())
			}
			return true
		})
		objects = append(objects, item)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	rows := make([][]string, 0, len(objects)+1)
	rows = append(rows, headers)
	for _, obj := range objects {
		row := make([]string, len(headers))
		obj.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.Null {
				row[index[key.String()]] = value.String()
			}
			return true
		})
		rows = append(rows, row)
	}

	return excel.RowsToTable(r.url, rows)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
