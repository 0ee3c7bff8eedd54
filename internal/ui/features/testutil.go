// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/planportal/internal/catalog"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/state"
	"github.com/leapstack-labs/planportal/internal/testutil"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        *state.SQLiteStore
	Catalog      *catalog.Catalog
	Service      *portal.Service
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates an in-memory store with the seeded catalog, a
// loaded regulation catalog and the portal service on top.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	store := state.NewSQLiteStore(logger)
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Seed())

	cat := catalog.New(store, catalog.WithLogger(logger))
	require.NoError(t, cat.Reload(context.Background()))

	return &TestFixture{
		Store:   store,
		Catalog: cat,
		Service: portal.New(portal.Config{
			Store:    store,
			Assessor: cat,
			Logger:   logger,
		}),
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
