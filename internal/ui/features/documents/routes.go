package documents

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// SetupRoutes registers the document browser routes.
func SetupRoutes(router chi.Router, docs core.DocumentStore, isDev bool) error {
	handlers := NewHandlers(docs, isDev)

	router.Route("/documents", func(r chi.Router) {
		r.Get("/", handlers.ListPage)
		r.Get("/search", handlers.SearchSSE)
		r.Get("/{id}", handlers.DetailPage)
	})

	return nil
}
