package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/planportal/internal/catalog"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/state"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/pkg/core"
)

const (
	maxBodyBytes        = 1 << 20
	defaultRecentLimit  = 20
	maxAssessmentsLimit = 200
)

// Handlers provides the JSON API.
type Handlers struct {
	docs     core.DocumentStore
	regs     core.RegulationStore
	service  *portal.Service
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(docs core.DocumentStore, regs core.RegulationStore, service *portal.Service, notify *notifier.Notifier) *Handlers {
	return &Handlers{docs: docs, regs: regs, service: service, notifier: notify}
}

type errorResponse struct {
	Error string `json:"error"`
}

type assessResponse struct {
	*core.Report
	AssessmentID string `json:"assessment_id,omitempty"`
}

// Assess runs an assessment on a JSON project description. With ?save=true
// the result is also stored.
func (h *Handlers) Assess(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("request body must be a JSON object"))
		return
	}
	project := core.ProjectFromMap(raw)

	resp := assessResponse{}
	if r.URL.Query().Get("save") == "true" {
		report, saved, err := h.service.AssessAndSave(r.Context(), project)
		if err != nil {
			writeError(w, assessStatus(err), err)
			return
		}
		resp.Report = report
		resp.AssessmentID = saved.ID
		h.notifier.Broadcast(notifier.AssessmentSaved)
	} else {
		report, err := h.service.Assess(project)
		if err != nil {
			writeError(w, assessStatus(err), err)
			return
		}
		resp.Report = report
	}

	writeJSON(w, http.StatusOK, resp)
}

// Documents lists documents, filtered by ?q= and ?category=.
func (h *Handlers) Documents(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

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
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if query != "" && category != "" {
		filtered := make([]*core.Document, 0, len(docs))
		for _, d := range docs {
			if d.Category == category {
				filtered = append(filtered, d)
			}
		}
		docs = filtered
	}
	if docs == nil {
		docs = []*core.Document{}
	}

	writeJSON(w, http.StatusOK, docs)
}

// Categories lists the document categories.
func (h *Handlers) Categories(w http.ResponseWriter, _ *http.Request) {
	categories, err := h.docs.ListCategories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Stats returns the catalog statistics.
func (h *Handlers) Stats(w http.ResponseWriter, _ *http.Request) {
	stats, err := h.docs.DocumentStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Regulations returns the loaded regulation catalog.
func (h *Handlers) Regulations(w http.ResponseWriter, _ *http.Request) {
	regs, err := h.regs.ListRegulations()
	if err != nil {
		writeError(w, assessStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// Assessments lists saved assessments, newest first.
func (h *Handlers) Assessments(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(n, maxAssessmentsLimit)
	}

	saved, err := h.service.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if saved == nil {
		saved = []*core.SavedAssessment{}
	}
	writeJSON(w, http.StatusOK, saved)
}

// Assessment returns one saved assessment.
func (h *Handlers) Assessment(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.Get(chi.URLParam(r, "id"))
	if errors.Is(err, state.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func assessStatus(err error) int {
	if errors.Is(err, catalog.ErrCatalogUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
