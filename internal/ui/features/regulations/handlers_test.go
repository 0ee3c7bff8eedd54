package regulations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/planportal/internal/ui/features"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/pkg/core"
)

type failingStore struct{}

func (failingStore) ListRegulations() ([]core.RegulationRecord, error) {
	return nil, errors.New("regulation catalog unavailable")
}

func TestPage(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Catalog, fixture.Notifier, false)

	req := httptest.NewRequest(http.MethodGet, "/regulations", nil)
	rec := httptest.NewRecorder()

	h.Page(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Regelverk - Planportal</title>",
		`id="regulation-pbl"`,
		`id="regulation-naturmangfoldloven"`,
		"TEK17 - Teknisk forskrift",
		"Obligatorisk",
		"Betinget",
		"Gjelder når prosjektet har miljøkonsekvenser",
		"/regulations/updates",
	} {
		assert.Contains(t, body, want)
	}
	assert.Less(t, strings.Index(body, `id="regulation-pbl"`), strings.Index(body, `id="regulation-kommuneplan_arealdel"`))
}

func TestPage_CatalogUnavailable(t *testing.T) {
	h := NewHandlers(failingStore{}, notifier.New(), false)

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/regulations", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Regelverket er ikke tilgjengelig")
}

func TestUpdates_SendsOnCatalogReload(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Catalog, fixture.Notifier, false)

	req := httptest.NewRequest(http.MethodGet, "/regulations/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Updates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	fixture.Notifier.Broadcast(notifier.AssessmentSaved) // filtered out
	fixture.Notifier.Broadcast(notifier.CatalogReloaded)

	<-done

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "event:"))
	assert.Contains(t, body, "regulation-pbl")
}
