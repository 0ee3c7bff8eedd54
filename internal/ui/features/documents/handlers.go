package documents

import (
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/planportal/internal/state"
	"github.com/leapstack-labs/planportal/internal/ui/features/common"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html
var templatesFS embed.FS

var views = common.MustParse(templatesFS, "templates/*.html")

// Handlers provides HTTP handlers for the document browser.
type Handlers struct {
	docs  core.DocumentStore
	isDev bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(docs core.DocumentStore, isDev bool) *Handlers {
	return &Handlers{docs: docs, isDev: isDev}
}

// ListPage renders every document grouped by category. The optional
// ?q= and ?category= query parameters pre-filter the list.
func (h *Handlers) ListPage(w http.ResponseWriter, r *http.Request) {
	signals := SearchSignals{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	categories, err := h.docs.ListCategories()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	results, err := h.search(signals, categories)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	raw, err := json.Marshal(signals)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := ListData{
		Signals:    string(raw),
		Categories: categories,
		Results:    results,
	}

	meta := common.PageMeta{Title: "Dokumenter", CurrentPath: "/documents", IsDev: h.isDev}
	if err := views.Page(meta, "document-list", data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SearchSSE re-renders the result area for the current filter signals.
func (h *Handlers) SearchSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE
	var signals SearchSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	sse := datastar.NewSSE(w, r)

	categories, err := h.docs.ListCategories()
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	results, err := h.search(signals, categories)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	if err := sse.PatchElementTempl(views.Fragment("document-results", results)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// DetailPage renders one document.
func (h *Handlers) DetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	doc, err := h.docs.GetDocument(id)
	if errors.Is(err, state.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := DetailData{Document: doc}
	categories, err := h.docs.ListCategories()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, c := range categories {
		if c.Name == doc.Category {
			data.Category = c
			break
		}
	}

	meta := common.PageMeta{Title: doc.Title, CurrentPath: "/documents", IsDev: h.isDev}
	if err := views.Page(meta, "document-detail", data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// search applies the text filter first and then the category filter, so a
// query narrowed to one category behaves like the CLI search.
func (h *Handlers) search(signals SearchSignals, categories []*core.Category) (ResultsData, error) {
	query := strings.TrimSpace(signals.Query)
	category := strings.TrimSpace(signals.Category)

	var (
		docs []*core.Document
		err  error
	)
	switch {
	case query != "":
		docs, err = h.docs.SearchDocuments(query)
	case category != "":
		docs, err = h.docs.ListDocumentsByCategory(category)
	default:
		docs, err = h.docs.ListDocuments()
	}
	if err != nil {
		return ResultsData{}, err
	}

	if query != "" && category != "" {
		filtered := docs[:0]
		for _, d := range docs {
			if d.Category == category {
				filtered = append(filtered, d)
			}
		}
		docs = filtered
	}

	groups := common.BuildCategoryGroups(categories, docs)
	nonEmpty := groups[:0]
	for _, g := range groups {
		if len(g.Documents) > 0 {
			nonEmpty = append(nonEmpty, g)
		}
	}

	return ResultsData{
		Query:    query,
		Category: category,
		Groups:   nonEmpty,
		Count:    len(docs),
	}, nil
}
