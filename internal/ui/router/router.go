// Package router sets up HTTP routes for the UI server.
package router

import (
	"database/sql"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/planportal/internal/portal"
	apiFeature "github.com/leapstack-labs/planportal/internal/ui/features/api"
	assessmentFeature "github.com/leapstack-labs/planportal/internal/ui/features/assessment"
	documentsFeature "github.com/leapstack-labs/planportal/internal/ui/features/documents"
	homeFeature "github.com/leapstack-labs/planportal/internal/ui/features/home"
	regulationsFeature "github.com/leapstack-labs/planportal/internal/ui/features/regulations"
	statequeryFeature "github.com/leapstack-labs/planportal/internal/ui/features/statequery"
	verificationFeature "github.com/leapstack-labs/planportal/internal/ui/features/verification"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/internal/ui/resources"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
)

// Deps are the collaborators the features are built from.
type Deps struct {
	Documents    core.DocumentStore
	Regulations  core.RegulationStore
	Service      *portal.Service
	QueryDB      *sql.DB
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps, isDev bool) error {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, deps.Documents, deps.Regulations, deps.Service, deps.SessionStore, deps.Notifier, isDev); err != nil {
		return err
	}

	if err := documentsFeature.SetupRoutes(router, deps.Documents, isDev); err != nil {
		return err
	}

	if err := assessmentFeature.SetupRoutes(router, deps.Service, deps.SessionStore, deps.Notifier, isDev); err != nil {
		return err
	}

	if err := regulationsFeature.SetupRoutes(router, deps.Regulations, deps.Notifier, isDev); err != nil {
		return err
	}

	if err := verificationFeature.SetupRoutes(router, deps.Documents, isDev); err != nil {
		return err
	}

	if err := statequeryFeature.SetupRoutes(router, deps.QueryDB, isDev); err != nil {
		return err
	}

	if err := apiFeature.SetupRoutes(router, deps.Documents, deps.Regulations, deps.Service, deps.Notifier); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
