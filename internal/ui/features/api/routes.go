// Package api serves the dashboard data as JSON.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// SetupRoutes registers the JSON API under /api.
func SetupRoutes(
	router chi.Router,
	docs core.DocumentStore,
	regs core.RegulationStore,
	service *portal.Service,
	notify *notifier.Notifier,
) error {
	handlers := NewHandlers(docs, regs, service, notify)

	router.Route("/api", func(r chi.Router) {
		r.Post("/assess", handlers.Assess)
		r.Get("/documents", handlers.Documents)
		r.Get("/categories", handlers.Categories)
		r.Get("/stats", handlers.Stats)
		r.Get("/regulations", handlers.Regulations)
		r.Get("/assessments", handlers.Assessments)
		r.Get("/assessments/{id}", handlers.Assessment)
	})

	return nil
}
