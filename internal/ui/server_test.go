package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/planportal/internal/catalog"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/state"
	"github.com/leapstack-labs/planportal/internal/testutil"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
)

func newTestServer(t *testing.T, opts ...catalog.Option) *Server {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	store := state.NewSQLiteStore(logger)
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Seed())

	cat := catalog.New(store, append(opts, catalog.WithLogger(logger))...)
	require.NoError(t, cat.Reload(context.Background()))

	return NewServer(Config{
		Store:         store,
		Catalog:       cat,
		Service:       portal.New(portal.Config{Store: store, Assessor: cat, Logger: logger}),
		SessionSecret: "test-secret-key-32-bytes-long!!",
		Logger:        logger,
	})
}

func TestServerHandler_Routes(t *testing.T) {
	s := newTestServer(t)
	handler, err := s.Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/", wantStatus: http.StatusOK, wantBody: `id="dashboard"`},
		{path: "/documents", wantStatus: http.StatusOK, wantBody: `id="document-results"`},
		{path: "/documents/9999", wantStatus: http.StatusNotFound},
		{path: "/assessment", wantStatus: http.StatusOK, wantBody: `id="assessment-results"`},
		{path: "/regulations", wantStatus: http.StatusOK, wantBody: `id="regulation-pbl"`},
		{path: "/verification", wantStatus: http.StatusOK, wantBody: `id="integrity"`},
		{path: "/query", wantStatus: http.StatusOK, wantBody: "planning_documents"},
		{path: "/api/regulations", wantStatus: http.StatusOK, wantBody: `"id":"pbl"`},
		{path: "/static/app.css", wantStatus: http.StatusOK},
		{path: "/does-not-exist", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), tt.wantBody)
			}
		})
	}
}

func TestWatchFiles_ReloadsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regulations.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regulations: []\n"), 0o600))

	s := newTestServer(t, catalog.WithOverrideFile(path))

	updates := s.Notifier().Subscribe(notifier.CatalogReloaded)
	defer s.Notifier().Unsubscribe(updates)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchFiles(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	override := "regulations:\n  - id: tek17\n    deadline_days: 30\n"
	require.NoError(t, os.WriteFile(path, []byte(override), 0o600))

	select {
	case kind := <-updates:
		assert.True(t, kind.Has(notifier.CatalogReloaded))
	case <-time.After(3 * time.Second):
		t.Fatal("expected a CatalogReloaded broadcast")
	}

	regs, err := s.catalog.Regulations()
	require.NoError(t, err)
	for _, r := range regs {
		if r.ID == "tek17" {
			assert.Equal(t, 30, r.DeadlineDays)
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchFiles_NoOverrideFile(t *testing.T) {
	s := newTestServer(t)

	// Returns immediately when there is nothing to watch.
	require.NoError(t, s.watchFiles(context.Background()))
}
