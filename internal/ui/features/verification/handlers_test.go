package verification

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/planportal/internal/ui/features"
)

func TestPage(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Store, false)

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/verification", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Verifisering - Planportal</title>",
		"Gjennomsnittlig kvalitet",
		`id="quality-average"`,
		`id="integrity"`,
		"Klimabudsjett 2023",
		"/8",
	} {
		assert.Contains(t, body, want)
	}
}

func TestPage_CountsVerifiedDocuments(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.Store, false)

	docs, err := fixture.Store.ListDocuments()
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	require.NoError(t, fixture.Store.MarkVerified(docs[0].ID, "verified", time.Now()))

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/verification", nil))

	assert.Contains(t, rec.Body.String(), `<div class="kpi-value">1</div><div class="kpi-label">URL-verifisert</div>`)
}
