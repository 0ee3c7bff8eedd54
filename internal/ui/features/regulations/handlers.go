package regulations

import (
	"embed"
	"net/http"
	"sort"

	"github.com/leapstack-labs/planportal/internal/assessor"
	"github.com/leapstack-labs/planportal/internal/ui/features/common"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html
var templatesFS embed.FS

var views = common.MustParse(templatesFS, "templates/*.html")

// Row is one regulation with its applicability condition.
type Row struct {
	core.RegulationRecord
	Condition string
}

// Data is the regulation catalog view.
type Data struct {
	Rows  []Row
	Error string
}

// Handlers provides HTTP handlers for the regulation catalog.
type Handlers struct {
	regs     core.RegulationStore
	notifier *notifier.Notifier
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(regs core.RegulationStore, notify *notifier.Notifier, isDev bool) *Handlers {
	return &Handlers{regs: regs, notifier: notify, isDev: isDev}
}

// Page renders the catalog sorted by priority.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	meta := common.PageMeta{
		Title:       "Regelverk",
		CurrentPath: "/regulations",
		IsDev:       h.isDev,
		UpdatesURL:  "/regulations/updates",
	}
	if err := views.Page(meta, "regulations", h.buildData()).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates re-renders the catalog after the override file is reloaded.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe(notifier.CatalogReloaded)
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(views.Fragment("regulations", h.buildData())); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (h *Handlers) buildData() Data {
	regs, err := h.regs.ListRegulations()
	if err != nil {
		return Data{Error: err.Error()}
	}

	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].PriorityLevel < regs[j].PriorityLevel
	})

	data := Data{Rows: make([]Row, len(regs))}
	for i, reg := range regs {
		data.Rows[i] = Row{RegulationRecord: reg, Condition: assessor.ConditionFor(reg.ID)}
	}
	return data
}
