package verify

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/leapstack-labs/planportal/pkg/core"
)

// OfficialURLPrefix is the host every catalog URL must live under.
const OfficialURLPrefix = "https://oslo.kommune.no"

// Integrity check names.
const (
	CheckDuplicateTitle = "duplicate_title"
	CheckDuplicateHash  = "duplicate_hash"
	CheckURL            = "url"
	CheckCategory       = "category"
	CheckPriority       = "priority"
	CheckStatus         = "status"
	CheckDate           = "date"
	CheckTitle          = "title"
	CheckDescription    = "description"
)

// Issue is one integrity problem.
type Issue struct {
	DocumentTitle string `json:"document_title"`
	Check         string `json:"check"`
	Message       string `json:"message"`
}

var catalogStatuses = map[string]bool{
	core.StatusAdopted:      true,
	core.StatusInProgress:   true,
	core.StatusRevision:     true,
	core.StatusConsultation: true,
}

// Integrity checks the catalog against its categories. Issues are reported in
// document order.
func Integrity(docs []*core.Document, categories []*core.Category) []Issue {
	var issues []Issue
	add := func(d *core.Document, check, format string, args ...any) {
		issues = append(issues, Issue{DocumentTitle: d.Title, Check: check, Message: fmt.Sprintf(format, args...)})
	}

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.Name] = true
	}
	titles := make(map[string]bool, len(docs))
	hashes := make(map[string]string, len(docs))

	for _, d := range docs {
		if titles[d.Title] {
			add(d, CheckDuplicateTitle, "duplicate title")
		}
		titles[d.Title] = true

		if d.DocumentHash != "" {
			if other, ok := hashes[d.DocumentHash]; ok && other != d.Title {
				add(d, CheckDuplicateHash, "hash collides with %q", other)
			}
			hashes[d.DocumentHash] = d.Title
		}

		if !strings.HasPrefix(d.URL, OfficialURLPrefix) {
			add(d, CheckURL, "URL %q is not under %s", d.URL, OfficialURLPrefix)
		}
		if !known[d.Category] {
			add(d, CheckCategory, "unknown category %q", d.Category)
		}
		if d.Priority < 1 || d.Priority > 3 {
			add(d, CheckPriority, "priority %d is outside 1-3", d.Priority)
		}
		if !catalogStatuses[d.Status] {
			add(d, CheckStatus, "unknown status %q", d.Status)
		}
		if _, err := time.Parse(time.DateOnly, d.DatePublished); err != nil {
			add(d, CheckDate, "date %q is not YYYY-MM-DD", d.DatePublished)
		}
		if utf8.RuneCountInString(d.Title) <= 10 {
			add(d, CheckTitle, "title is too short")
		}
		if utf8.RuneCountInString(d.Description) <= 20 {
			add(d, CheckDescription, "description is too short")
		}
	}
	return issues
}
