// Package verification shows document quality scores and catalog integrity.
package verification

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// SetupRoutes registers the verification routes.
func SetupRoutes(router chi.Router, docs core.DocumentStore, isDev bool) error {
	handlers := NewHandlers(docs, isDev)

	router.Get("/verification", handlers.Page)

	return nil
}
