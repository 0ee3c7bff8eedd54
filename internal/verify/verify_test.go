package verify

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/leapstack-labs/planportal/internal/webfetch"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodDocument() *core.Document {
	return &core.Document{
		ID:                    1,
		Title:                 "Kommuneplan for Oslo 2020-2035",
		Category:              "Kommuneplan",
		Status:                core.StatusAdopted,
		URL:                   "https://oslo.kommune.no/politikk/kommuneplan/",
		Description:           "Overordnet plan for Oslos utvikling frem mot 2035 med fokus på bærekraft.",
		ResponsibleDepartment: "Plan- og bygningsetaten",
		DatePublished:         "2020-06-24",
		Priority:              3,
		Tags:                  "kommuneplan,byutvikling",
		DocumentHash:          "a",
	}
}

func TestQuality(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *core.Document)
		passed int
		score  float64
		status string
	}{
		{name: "all checks pass", mutate: func(*core.Document) {}, passed: 8, score: 100, status: QualityExcellent},
		{
			name:   "short description",
			mutate: func(d *core.Document) { d.Description = "Kort tekst" },
			passed: 7, score: 87.5, status: QualityGood,
		},
		{
			name: "consultation status and no tags",
			mutate: func(d *core.Document) {
				d.Status = core.StatusConsultation
				d.Tags = ""
			},
			passed: 6, score: 75, status: QualityGood,
		},
		{
			name: "mostly empty",
			mutate: func(d *core.Document) {
				*d = core.Document{Title: "Kort", URL: "http://oslo.kommune.no"}
			},
			passed: 0, score: 0, status: QualityNeedsReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := goodDocument()
			tt.mutate(d)
			r := Quality(d)
			assert.Len(t, r.Checks, 8)
			assert.Equal(t, tt.passed, r.Passed)
			assert.InDelta(t, tt.score, r.Score, 1e-9)
			assert.Equal(t, tt.status, r.Status)
		})
	}
}

func TestQualityStatus(t *testing.T) {
	assert.Equal(t, QualityExcellent, QualityStatus(90))
	assert.Equal(t, QualityGood, QualityStatus(89.9))
	assert.Equal(t, QualityGood, QualityStatus(75))
	assert.Equal(t, QualityNeedsReview, QualityStatus(74.9))
}

func TestAverageScore(t *testing.T) {
	assert.Zero(t, AverageScore(nil))
	reports := QualityAll([]*core.Document{goodDocument(), {Title: "x"}})
	assert.InDelta(t, 50, AverageScore(reports), 1e-9)
}

func TestIntegrity(t *testing.T) {
	categories := []*core.Category{{Name: "Kommuneplan"}}

	t.Run("clean catalog", func(t *testing.T) {
		assert.Empty(t, Integrity([]*core.Document{goodDocument()}, categories))
	})

	tests := []struct {
		name   string
		mutate func(d *core.Document)
		check  string
	}{
		{name: "foreign url", mutate: func(d *core.Document) { d.URL = "https://example.com/plan" }, check: CheckURL},
		{name: "unknown category", mutate: func(d *core.Document) { d.Category = "Ukjent" }, check: CheckCategory},
		{name: "priority zero", mutate: func(d *core.Document) { d.Priority = 0 }, check: CheckPriority},
		{name: "priority four", mutate: func(d *core.Document) { d.Priority = 4 }, check: CheckPriority},
		{name: "unknown status", mutate: func(d *core.Document) { d.Status = "Utkast" }, check: CheckStatus},
		{name: "bad date", mutate: func(d *core.Document) { d.DatePublished = "24.06.2020" }, check: CheckDate},
		{name: "short title", mutate: func(d *core.Document) { d.Title = "Plan 2020" }, check: CheckTitle},
		{name: "short description", mutate: func(d *core.Document) { d.Description = "For kort" }, check: CheckDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := goodDocument()
			tt.mutate(d)
			issues := Integrity([]*core.Document{d}, categories)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.check, issues[0].Check)
			assert.Equal(t, d.Title, issues[0].DocumentTitle)
			assert.NotEmpty(t, issues[0].Message)
		})
	}

	t.Run("consultation status is allowed", func(t *testing.T) {
		d := goodDocument()
		d.Status = core.StatusConsultation
		assert.Empty(t, Integrity([]*core.Document{d}, categories))
	})

	t.Run("duplicates", func(t *testing.T) {
		a := goodDocument()
		b := goodDocument()
		c := goodDocument()
		c.Title = "Annen tittel for planen"

		issues := Integrity([]*core.Document{a, b, c}, categories)
		var checks []string
		for _, i := range issues {
			checks = append(checks, i.Check)
		}
		assert.Equal(t, []string{CheckDuplicateTitle, CheckDuplicateHash}, checks)
		assert.Equal(t, c.Title, issues[1].DocumentTitle)
	})
}

type fakeChecker struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	mu       sync.Mutex
	seen     []string
}

func (f *fakeChecker) CheckURL(_ context.Context, rawURL string) webfetch.URLStatus {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	f.mu.Lock()
	f.seen = append(f.seen, rawURL)
	f.mu.Unlock()

	if strings.HasSuffix(rawURL, "/gone") {
		return webfetch.URLStatus{URL: rawURL, Accessible: true, RobotsAllowed: true, StatusCode: 404, Error: "HTTP 404"}
	}
	return webfetch.URLStatus{URL: rawURL, Accessible: true, RobotsAllowed: true, StatusCode: 200}
}

func TestCheckURLs(t *testing.T) {
	docs := []*core.Document{
		{ID: 1, Title: "a", URL: "https://oslo.kommune.no/a"},
		{ID: 2, Title: "b", URL: "https://oslo.kommune.no/gone"},
		{ID: 3, Title: "c", URL: "https://oslo.kommune.no/c"},
		{ID: 4, Title: "d", URL: "https://oslo.kommune.no/d"},
	}
	checker := &fakeChecker{}

	results, err := CheckURLs(context.Background(), checker, docs, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, docs[i].ID, r.DocumentID)
		assert.Equal(t, docs[i].URL, r.Status.URL)
	}
	assert.Equal(t, 3, Accessible(results))
	assert.LessOrEqual(t, checker.maxSeen.Load(), int32(2))
	assert.Len(t, checker.seen, 4)
}

func TestCheckURLs_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CheckURLs(ctx, &fakeChecker{}, []*core.Document{{URL: "https://oslo.kommune.no"}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
