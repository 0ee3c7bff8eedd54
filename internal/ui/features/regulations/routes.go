// Package regulations renders the regulation catalog.
package regulations

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// SetupRoutes registers the regulation catalog routes.
func SetupRoutes(router chi.Router, regs core.RegulationStore, notify *notifier.Notifier, isDev bool) error {
	handlers := NewHandlers(regs, notify, isDev)

	router.Get("/regulations", handlers.Page)
	router.Get("/regulations/updates", handlers.Updates)

	return nil
}
