package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer copies the decoder fixture into a temp directory and returns
// an httptest server wrapping the handler.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	data, err := os.ReadFile("../../pkg/psplib/testdata/j301_1.sm")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "j301_1.sm"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.sm"), []byte("not a psplib file\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	logger := log.New(io.Discard)
	ts := httptest.NewServer(New(dir, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"ok"`)
}

func TestListInstances(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/instances")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Instances []string `json:"instances"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	// Only .sm and .json files are listed, sorted by name.
	assert.Equal(t, []string{"broken.sm", "j301_1.sm"}, payload.Instances)
}

func TestGetInstance(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/instances/j301_1.sm")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var payload struct {
		Name    string           `json:"Name"`
		Horizon int              `json:"Horizon"`
		Jobs    []map[string]any `json:"Jobs"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "j301_1.sm", payload.Name)
	assert.Equal(t, 158, payload.Horizon)
	assert.Len(t, payload.Jobs, 32)
}

func TestGetInstanceNotFound(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/instances/missing.sm")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "FILE_NOT_FOUND")
}

func TestGetInstanceMalformed(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/instances/broken.sm")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "PARSE_ERROR")
}

func TestGetInstanceTraversalRejected(t *testing.T) {
	ts := newTestServer(t)
	// Encoded traversal stays a single path segment so it reaches the handler.
	resp, _ := get(t, ts, "/api/instances/..%2fj301_1.sm")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetGraph(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/instances/j301_1.sm/graph")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))

	dot := string(body)
	assert.True(t, strings.HasPrefix(dot, "digraph precedence"), "DOT output: %s", dot[:40])
	assert.Contains(t, dot, "1 -> 2")
}

func TestRequestIDPropagated(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "test-id-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "test-id-123", resp.Header.Get("X-Request-ID"))
}
