package verification

import (
	"embed"
	"net/http"

	"github.com/leapstack-labs/planportal/internal/ui/features/common"
	"github.com/leapstack-labs/planportal/internal/verify"
	"github.com/leapstack-labs/planportal/pkg/core"
)

//go:embed templates/*.html
var templatesFS embed.FS

var views = common.MustParse(templatesFS, "templates/*.html")

// Data is the verification report view.
type Data struct {
	Average  float64
	Status   string
	Counts   map[string]int
	Reports  []verify.QualityReport
	Issues   []verify.Issue
	Verified int
}

// Handlers provides HTTP handlers for the verification page.
type Handlers struct {
	docs  core.DocumentStore
	isDev bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(docs core.DocumentStore, isDev bool) *Handlers {
	return &Handlers{docs: docs, isDev: isDev}
}

// Page renders quality scores for every document and the integrity issues
// found in the catalog. URL checks are not run here; they need network
// access and are left to the CLI.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docs.ListDocuments()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	categories, err := h.docs.ListCategories()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reports := verify.QualityAll(docs)
	data := Data{
		Average: verify.AverageScore(reports),
		Counts:  make(map[string]int),
		Reports: reports,
		Issues:  verify.Integrity(docs, categories),
	}
	data.Status = verify.QualityStatus(data.Average)
	for _, rep := range reports {
		data.Counts[rep.Status]++
	}
	for _, d := range docs {
		if d.VerificationStatus == "verified" {
			data.Verified++
		}
	}

	meta := common.PageMeta{Title: "Verifisering", CurrentPath: "/verification", IsDev: h.isDev}
	if err := views.Page(meta, "verification", data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
