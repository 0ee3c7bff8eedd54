package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/planportal/internal/catalog"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/ui/features"
	"github.com/leapstack-labs/planportal/pkg/core"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	return NewHandlers(fixture.Store, fixture.Catalog, fixture.Service, fixture.Notifier), fixture
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name:       "valid project",
			target:     "/api/assess",
			body:       `{"project_name":"Hasle Torg","project_type":"Boligbygging","residential_units":120,"environmental_impact":true}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(body, &resp))
				project := resp["project"].(map[string]any)
				assert.Equal(t, "residential", project["project_type"])
				assert.Contains(t, resp, "risk")
				assert.Contains(t, resp, "timeline")
				assert.NotContains(t, resp, "assessment_id")
			},
		},
		{
			name:       "save",
			target:     "/api/assess?save=true",
			body:       `{"project_name":"Hasle Torg"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.NotEmpty(t, resp["assessment_id"])
			},
		},
		{
			name:       "malformed json",
			target:     "/api/assess",
			body:       `{"project_name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not an object",
			target:     "/api/assess",
			body:       `[1,2,3]`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Assess(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}

func TestAssess_CatalogUnavailable(t *testing.T) {
	fixture := features.SetupTestFixture(t)

	// A catalog that was never loaded has no regulations.
	unloaded := catalog.New(fixture.Store)
	service := portal.New(portal.Config{Store: fixture.Store, Assessor: unloaded})
	h := NewHandlers(fixture.Store, unloaded, service, fixture.Notifier)

	rec := httptest.NewRecorder()
	h.Assess(rec, httptest.NewRequest(http.MethodPost, "/api/assess", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	h.Regulations(rec, httptest.NewRequest(http.MethodGet, "/api/regulations", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDocuments(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantCount int
		wantTitle string
	}{
		{name: "all", query: url.Values{}, wantCount: 21},
		{name: "search", query: url.Values{"q": {"klimabudsjett"}}, wantCount: 1, wantTitle: "Klimabudsjett 2023"},
		{name: "no hits", query: url.Values{"q": {"finnesikke"}}, wantCount: 0},
		{name: "search within category", query: url.Values{"q": {"klimabudsjett"}, "category": {"Transport"}}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			req := httptest.NewRequest(http.MethodGet, "/api/documents?"+tt.query.Encode(), nil)
			rec := httptest.NewRecorder()

			h.Documents(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var docs []core.Document
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
			assert.Len(t, docs, tt.wantCount)
			if tt.wantTitle != "" {
				assert.Equal(t, tt.wantTitle, docs[0].Title)
			}
		})
	}
}

func TestRegulationsAndStats(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Regulations(rec, httptest.NewRequest(http.MethodGet, "/api/regulations", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var regs []core.RegulationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &regs))
	assert.Len(t, regs, 5)

	rec = httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats core.DocumentStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 21, stats.Total)
	assert.Equal(t, 8, stats.Categories)

	rec = httptest.NewRecorder()
	h.Categories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []core.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Len(t, cats, 8)
}

func TestAssessments(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Assessments(rec, httptest.NewRequest(http.MethodGet, "/api/assessments", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = httptest.NewRecorder()
	h.Assess(rec, httptest.NewRequest(http.MethodPost, "/api/assess?save=true", strings.NewReader(`{"project_name":"Bjørvika Nord"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		AssessmentID string `json:"assessment_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = httptest.NewRecorder()
	h.Assessments(rec, httptest.NewRequest(http.MethodGet, "/api/assessments?limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []core.SavedAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Bjørvika Nord", list[0].ProjectName)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/"+created.AssessmentID, nil)
	req = features.RequestWithPathParam(req, "id", created.AssessmentID)
	rec = httptest.NewRecorder()
	h.Assessment(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/api/assessments/missing", nil), "id", "missing")
	rec = httptest.NewRecorder()
	h.Assessment(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Assessments(rec, httptest.NewRequest(http.MethodGet, "/api/assessments?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
