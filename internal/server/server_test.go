package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maintence-saida/gestion-maintenance/internal/config"
	"github.com/maintence-saida/gestion-maintenance/internal/importer"
	"github.com/maintence-saida/gestion-maintenance/internal/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	sess := session.New(nil)
	return NewServer(Deps{
		Config:      config.DefaultConfig(),
		Session:     sess,
		Coordinator: importer.NewCoordinator(sess, nil, importer.Options{}),
	})
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/", "text/html", "Gestion de Maintenance"},
		{"/api/status", "application/json", `"loaded":false`},
		{"/metrics", "text/plain", "maintdash_rows_normalized_total"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), tc.contentType), tc.path)
		assert.Contains(t, w.Body.String(), tc.contains, tc.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/filters", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_StopsWithContext(t *testing.T) {
	srv := newTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/status")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
