package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/backend/internal/infrastructure/config"
)

// New registers prometheus collectors on the default registry, so the test
// binary builds the server once.
var (
	serverOnce sync.Once
	testServer *Server
	buildErr   error
)

func sharedServer(t *testing.T) *Server {
	t.Helper()
	serverOnce.Do(func() {
		testServer, buildErr = New(config.Default())
	})
	require.NoError(t, buildErr)
	return testServer
}

func TestNewServerServesCoreRoutes(t *testing.T) {
	srv := sharedServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/audit", `{"markup": "<html lang=\"en\"><body><p>x</p></body></html>"}`, http.StatusOK},
		{http.MethodGet, "/audit/run_unknown/export", "", http.StatusNotFound},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestMetricsExposition(t *testing.T) {
	srv := sharedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pagelens_")
}
