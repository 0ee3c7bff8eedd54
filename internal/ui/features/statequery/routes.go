package statequery

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the state query feature routes.
func SetupRoutes(router chi.Router, db *sql.DB, isDev bool) error {
	handlers := NewHandlers(db, isDev)

	router.Get("/query", handlers.QueryPage)

	router.Route("/api/query", func(r chi.Router) {
		r.Post("/execute", handlers.ExecuteQuerySSE)
		r.Get("/schema/{name}", handlers.SchemaSSE)
	})

	return nil
}
