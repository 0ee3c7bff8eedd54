package assessment

import (
	"embed"
	"encoding/json"
	"fmt"
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

// Handlers provides HTTP handlers for the assessment feature.
type Handlers struct {
	service      *portal.Service
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *portal.Service, sessionStore sessions.Store, notify *notifier.Notifier, isDev bool) *Handlers {
	return &Handlers{
		service:      service,
		sessionStore: sessionStore,
		notifier:     notify,
		isDev:        isDev,
	}
}

// FormPage renders the project form pre-filled from the session, with the
// results for that project already rendered below it.
func (h *Handlers) FormPage(w http.ResponseWriter, r *http.Request) {
	project := loadProject(h.sessionStore, r)

	raw, err := json.Marshal(map[string]any{"project": project.ToMap()})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := FormData{
		Signals:      string(raw),
		ProjectTypes: core.ProjectTypes(),
	}
	report, err := h.service.Assess(project)
	if err != nil {
		data.Status = StatusData{Message: err.Error(), Error: true}
	} else {
		data.Results = buildResults(report)
	}

	meta := common.PageMeta{Title: "Prosjektvurdering", CurrentPath: "/assessment", IsDev: h.isDev}
	if err := views.Page(meta, "assessment-form", data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RunSSE assesses the project in the form signals and patches the results.
func (h *Handlers) RunSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	project, err := readProject(r)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		h.patchStatus(sse, StatusData{Message: "Kunne ikke lese skjemaet: " + err.Error(), Error: true})
		return
	}

	report, err := h.service.Assess(project)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		h.patchStatus(sse, StatusData{Message: err.Error(), Error: true})
		return
	}

	// The session cookie has to be written before the SSE headers go out.
	_ = saveProject(h.sessionStore, w, r, project)

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(views.Fragment("assessment-results", buildResults(report))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	h.patchStatus(sse, StatusData{})
}

// SaveSSE assesses and stores the project in the form signals.
func (h *Handlers) SaveSSE(w http.ResponseWriter, r *http.Request) {
	project, err := readProject(r)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		h.patchStatus(sse, StatusData{Message: "Kunne ikke lese skjemaet: " + err.Error(), Error: true})
		return
	}

	sse := datastar.NewSSE(w, r)

	report, saved, err := h.service.AssessAndSave(r.Context(), project)
	if err != nil {
		h.patchStatus(sse, StatusData{Message: err.Error(), Error: true})
		return
	}
	h.notifier.Broadcast(notifier.AssessmentSaved)

	if err := sse.PatchElementTempl(views.Fragment("assessment-results", buildResults(report))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	h.patchStatus(sse, StatusData{Message: fmt.Sprintf("Vurderingen er lagret (%s).", saved.ID)})
}

func (h *Handlers) patchStatus(sse *datastar.ServerSentEventGenerator, status StatusData) {
	if err := sse.PatchElementTempl(views.Fragment("assessment-status", status)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func readProject(r *http.Request) (core.ProjectDescription, error) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return core.ProjectDescription{}, err
	}
	if signals.Project == nil {
		return core.ProjectDescription{}, fmt.Errorf("missing project signals")
	}
	return core.ProjectFromMap(signals.Project), nil
}
