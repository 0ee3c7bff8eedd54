package assessment

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
)

// SetupRoutes registers the assessment routes.
func SetupRoutes(
	router chi.Router,
	service *portal.Service,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	isDev bool,
) error {
	handlers := NewHandlers(service, sessionStore, notify, isDev)

	router.Route("/assessment", func(r chi.Router) {
		r.Get("/", handlers.FormPage)
		r.Post("/run", handlers.RunSSE)
		r.Post("/save", handlers.SaveSSE)
	})

	return nil
}
