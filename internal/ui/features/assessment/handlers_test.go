package assessment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/planportal/internal/ui/features"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/pkg/core"
)

const hasleSignals = `{"project":{
	"project_name":"Hasle Torg","location":"Hasle","project_type":"residential",
	"building_height":"28","residential_units":120,"parking_spaces":60,
	"construction_duration":30,"requires_zoning_change":true,
	"environmental_impact":true,"nearby_features":"skole og park"}}`

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	handlers := NewHandlers(fixture.Service, fixture.SessionStore, fixture.Notifier, false)
	return handlers, fixture
}

func postSignals(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestFormPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/assessment", nil)
	rec := httptest.NewRecorder()

	h.FormPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Prosjektvurdering - Planportal</title>",
		"data-signals",
		"Nytt prosjekt",
		`data-bind="project.building_height"`,
		"/assessment/run",
		"/assessment/save",
		"Boligbygging",
		`id="assessment-results"`,
		"Gjeldende regelverk",
	} {
		assert.Contains(t, body, want)
	}
}

func TestRunSSE(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.RunSSE(rec, postSignals("/assessment/run", hasleSignals))

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 2)
	for _, want := range []string{
		"assessment-results",
		"assessment-status",
		"Manage closely",
		"Plan- og bygningsloven (PBL)",
		"Naturmangfoldloven",
		"Tidslinje",
		"gantt-bar",
	} {
		assert.Contains(t, body, want)
	}
}

func TestRunSSE_RemembersProjectInSession(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.RunSSE(rec, postSignals("/assessment/run", hasleSignals))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "run should set the session cookie")

	req := httptest.NewRequest(http.MethodGet, "/assessment", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	page := httptest.NewRecorder()
	h.FormPage(page, req)

	body := page.Body.String()
	assert.Contains(t, body, "Hasle Torg")
	assert.NotContains(t, body, "Nytt prosjekt")
}

func TestRunSSE_BadSignals(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"project":`},
		{name: "missing project", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			rec := httptest.NewRecorder()
			h.RunSSE(rec, postSignals("/assessment/run", tt.body))

			body := rec.Body.String()
			assert.Contains(t, body, "status-error")
			assert.Contains(t, body, "Kunne ikke lese skjemaet")
			assert.NotContains(t, body, `id="assessment-results"`)
		})
	}
}

func TestSaveSSE(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	updates := fixture.Notifier.Subscribe(notifier.AssessmentSaved)
	defer fixture.Notifier.Unsubscribe(updates)

	rec := httptest.NewRecorder()
	h.SaveSSE(rec, postSignals("/assessment/save", hasleSignals))

	body := rec.Body.String()
	assert.Contains(t, body, "Vurderingen er lagret")
	assert.Contains(t, body, "status-ok")

	select {
	case kind := <-updates:
		assert.True(t, kind.Has(notifier.AssessmentSaved))
	case <-time.After(time.Second):
		t.Fatal("expected an AssessmentSaved broadcast")
	}

	saved, err := fixture.Service.Recent(10)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Hasle Torg", saved[0].ProjectName)
	assert.Equal(t, core.ProjectTypeResidential, saved[0].ProjectType)
	assert.Contains(t, body, saved[0].ID)
}

func TestBuildResults(t *testing.T) {
	fixture := features.SetupTestFixture(t)

	report, err := fixture.Service.Assess(core.ProjectDescription{
		ProjectName:          "Hasle Torg",
		ProjectType:          core.ProjectTypeResidential,
		BuildingHeight:       28,
		ResidentialUnits:     120,
		RequiresZoningChange: true,
	})
	require.NoError(t, err)

	data := buildResults(report)

	assert.Len(t, data.Bars, len(core.RiskCategories()))
	assert.Len(t, data.Quadrants, 4)
	assert.Len(t, data.Gantt, len(report.Timeline.Phases))
	require.NotEmpty(t, data.Gantt)
	assert.Equal(t, 0, data.Gantt[0].StartWeek)
	assert.Contains(t, string(data.Gantt[0].Style), "margin-left: 0.0%")

	stakeholders := 0
	for _, q := range data.Quadrants {
		stakeholders += len(q.Stakeholders)
	}
	assert.Equal(t, len(report.Stakeholders), stakeholders)

	last := data.Gantt[len(data.Gantt)-1]
	assert.Equal(t, report.Timeline.TotalWeeks, last.StartWeek+last.Weeks)
}

func TestFormPage_SessionWithoutProject(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/assessment", nil)
	session, err := fixture.SessionStore.Get(req, sessionName)
	require.NoError(t, err)
	session.Values[projectKey] = "{not json"
	rec := httptest.NewRecorder()
	require.NoError(t, session.Save(req, rec))

	page := httptest.NewRequest(http.MethodGet, "/assessment", nil).WithContext(context.Background())
	for _, c := range rec.Result().Cookies() {
		page.AddCookie(c)
	}
	out := httptest.NewRecorder()
	h.FormPage(out, page)

	assert.Equal(t, http.StatusOK, out.Code)
	assert.Contains(t, out.Body.String(), "Nytt prosjekt")
}
