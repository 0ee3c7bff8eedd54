package home

import (
	"embed"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/ui/features/common"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html
var templatesFS embed.FS

var views = common.MustParse(templatesFS, "templates/*.html")

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	docs         core.DocumentStore
	regs         core.RegulationStore
	service      *portal.Service
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	docs core.DocumentStore,
	regs core.RegulationStore,
	service *portal.Service,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	isDev bool,
) *Handlers {
	return &Handlers{
		docs:         docs,
		regs:         regs,
		service:      service,
		sessionStore: sessionStore,
		notifier:     notify,
		isDev:        isDev,
	}
}

// HomePage renders the dashboard with full content.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	data, err := h.buildDashboardData()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	meta := common.PageMeta{
		Title:       "Oversikt",
		CurrentPath: "/",
		IsDev:       h.isDev,
		UpdatesURL:  "/updates",
	}
	if err := views.Page(meta, "dashboard", data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HomePageUpdates is the long-lived SSE endpoint for the dashboard. It sends
// nothing up front, the page is already rendered, and re-renders the
// dashboard whenever the catalog reloads or an assessment is saved.
func (h *Handlers) HomePageUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe(notifier.All)
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendDashboard(sse); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (h *Handlers) sendDashboard(sse *datastar.ServerSentEventGenerator) error {
	data, err := h.buildDashboardData()
	if err != nil {
		return err
	}
	return sse.PatchElementTempl(views.Fragment("dashboard", data))
}

// buildDashboardData assembles the KPIs, category cards and recent
// assessments. A missing regulation catalog is shown on the page rather
// than failing it.
func (h *Handlers) buildDashboardData() (*DashboardData, error) {
	stats, err := h.docs.DocumentStats()
	if err != nil {
		return nil, err
	}
	categories, err := h.docs.ListCategories()
	if err != nil {
		return nil, err
	}
	docs, err := h.docs.ListDocuments()
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		Stats: DashboardStats{
			Documents:      stats.Total,
			Adopted:        stats.Adopted,
			CompletionRate: stats.CompletionRate,
			HighPriority:   stats.HighPriority,
			Categories:     stats.Categories,
		},
	}

	for _, g := range common.BuildCategoryGroups(categories, docs) {
		data.Categories = append(data.Categories, CategorySummary{CategoryGroup: g, Count: len(g.Documents)})
	}

	regs, err := h.regs.ListRegulations()
	if err != nil {
		data.CatalogError = err.Error()
	}
	for _, reg := range regs {
		data.Stats.Regulations++
		if reg.ComplianceStatus == core.ComplianceMandatory {
			data.Stats.Mandatory++
		}
	}

	recent, err := h.service.Recent(recentLimit)
	if err != nil {
		return nil, err
	}
	for _, a := range recent {
		data.Recent = append(data.Recent, RecentAssessment{
			ID:          a.ID,
			ProjectName: a.ProjectName,
			ProjectType: a.ProjectType,
			Total:       a.Risk.TotalRiskScore,
			Level:       a.Risk.RiskLevel,
			CreatedAt:   a.CreatedAt,
		})
	}

	return data, nil
}
