// Package verify scores planning documents for metadata quality and checks the
// catalog for integrity problems.
package verify

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/planportal/pkg/core"
)

// Quality statuses.
const (
	QualityExcellent   = "Excellent"
	QualityGood        = "Good"
	QualityNeedsReview = "Needs Review"
)

// Check is one named quality check.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// QualityReport is the quality result for one document.
type QualityReport struct {
	DocumentID    int64   `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	Checks        []Check `json:"checks"`
	Passed        int     `json:"passed"`
	Score         float64 `json:"score"` // percent, one decimal
	Status        string  `json:"status"`
}

var qualifiedStatuses = map[string]bool{
	core.StatusAdopted:    true,
	core.StatusInProgress: true,
	core.StatusRevision:   true,
}

type qualityCheck struct {
	name string
	pass func(d *core.Document) bool
}

var qualityChecks = []qualityCheck{
	{"title_length", func(d *core.Document) bool { return utf8.RuneCountInString(d.Title) > 10 }},
	{"description_quality", func(d *core.Document) bool { return utf8.RuneCountInString(d.Description) > 50 }},
	{"url_format", func(d *core.Document) bool { return strings.HasPrefix(d.URL, "https://") }},
	{"department_assigned", func(d *core.Document) bool { return d.ResponsibleDepartment != "" }},
	{"category_assigned", func(d *core.Document) bool { return d.Category != "" }},
	{"status_valid", func(d *core.Document) bool { return qualifiedStatuses[d.Status] }},
	{"date_present", func(d *core.Document) bool { return d.DatePublished != "" }},
	{"tags_present", func(d *core.Document) bool { return d.Tags != "" }},
}

// Quality runs the per-document checks.
func Quality(d *core.Document) QualityReport {
	r := QualityReport{
		DocumentID:    d.ID,
		DocumentTitle: d.Title,
		Checks:        make([]Check, 0, len(qualityChecks)),
	}
	for _, c := range qualityChecks {
		ok := c.pass(d)
		if ok {
			r.Passed++
		}
		r.Checks = append(r.Checks, Check{Name: c.name, Passed: ok})
	}
	r.Score = math.Round(float64(r.Passed)/float64(len(qualityChecks))*1000) / 10
	r.Status = QualityStatus(r.Score)
	return r
}

// QualityStatus maps a score to a status label.
func QualityStatus(score float64) string {
	switch {
	case score >= 90:
		return QualityExcellent
	case score >= 75:
		return QualityGood
	default:
		return QualityNeedsReview
	}
}

// QualityAll scores every document in order.
func QualityAll(docs []*core.Document) []QualityReport {
	out := make([]QualityReport, 0, len(docs))
	for _, d := range docs {
		out = append(out, Quality(d))
	}
	return out
}

// AverageScore returns the mean quality score, or 0 for no reports.
func AverageScore(reports []QualityReport) float64 {
	if len(reports) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reports {
		sum += r.Score
	}
	return math.Round(sum/float64(len(reports))*10) / 10
}
