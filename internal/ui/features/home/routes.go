package home

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// SetupRoutes configures routes for the home feature.
func SetupRoutes(
	router chi.Router,
	docs core.DocumentStore,
	regs core.RegulationStore,
	service *portal.Service,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	isDev bool,
) error {
	handlers := NewHandlers(docs, regs, service, sessionStore, notify, isDev)

	router.Get("/", handlers.HomePage)
	router.Get("/updates", handlers.HomePageUpdates)

	return nil
}
