package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/planportal/internal/assessor"
	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/leapstack-labs/planportal/pkg/core"
)

const barWidth = 20

// newTable returns a table writer mirroring to the renderer's output.
func newTable(r *output.Renderer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

// renderTable renders t as markdown or as a light box table.
func renderTable(r *output.Renderer, t table.Writer) {
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

func projectTitle(p core.ProjectDescription) string {
	if p.ProjectName != "" {
		return p.ProjectName
	}
	return "Prosjektvurdering"
}

func renderReportText(r *output.Renderer, report *core.Report) {
	styles := r.Styles()
	risk := report.Risk

	r.Println("")
	r.Println(styles.Header1.Render(projectTitle(report.Project)))
	if report.Project.Location != "" || report.Project.ProjectType != "" {
		r.Println(styles.Muted.Render(strings.TrimSpace(report.Project.Location + "  " + core.ProjectTypeLabel(report.Project.ProjectType))))
	}
	r.Println("")

	r.Println(styles.Header2.Render("Risiko"))
	for _, c := range core.RiskCategories() {
		score := risk.Score(c)
		r.Printf("   %-13s %s %.2f\n", c.Label(), output.FormatBar(score, barWidth), score)
	}
	r.Printf("   %-13s %s  %s\n", "Total",
		styles.Bold.Render(fmt.Sprintf("%.2f", risk.TotalRiskScore)),
		styles.RiskLevel(risk.RiskLevel).Render(string(risk.RiskLevel)))
	r.Println("")

	r.Println(styles.Header2.Render("Anbefalinger"))
	for i, rec := range risk.Recommendations {
		r.Printf("   %d. %s\n", i+1, rec)
	}
	r.Println("")

	r.Println(styles.Header2.Render("Interessenter"))
	renderStakeholderTable(r, report.Stakeholders)
	r.Println("")

	r.Println(styles.Header2.Render(fmt.Sprintf("Tidslinje (%d uker, %.1f måneder)",
		report.Timeline.TotalWeeks, report.Timeline.TotalMonths)))
	renderTimelineTable(r, report.Timeline)
	r.Println("")

	r.Println(styles.Header2.Render("Gjeldende regelverk"))
	renderRegulationTable(r, report.Regulations)

	if len(report.Insights) > 0 {
		r.Println("")
		r.Println(styles.Header2.Render("Innsikt"))
		for _, in := range report.Insights {
			r.Printf("   %s %s\n", in.Title, styles.Muted.Render("("+in.Priority+")"))
			r.Println(styles.Muted.Render("     " + in.Description))
			r.Println("     → " + in.Action)
		}
	}
}

func renderReportMarkdown(r *output.Renderer, report *core.Report) {
	risk := report.Risk
	p := report.Project

	r.Println(output.FormatHeader(1, projectTitle(p)))
	r.Println("")
	if p.Location != "" {
		r.Println("- " + output.FormatKeyValue("Lokasjon", p.Location))
	}
	if p.ProjectType != "" {
		r.Println("- " + output.FormatKeyValue("Prosjekttype", core.ProjectTypeLabel(p.ProjectType)))
	}
	r.Println("- " + output.FormatKeyValue("Total risiko", fmt.Sprintf("%.2f", risk.TotalRiskScore)))
	r.Println("- " + output.FormatKeyValue("Risikonivå", risk.RiskLevel))
	r.Println("")

	r.Println(output.FormatHeader(2, "Risiko"))
	r.Println("")
	t := newTable(r, "Kategori", "Score", "Vekt")
	for _, c := range core.RiskCategories() {
		t.AppendRow(table.Row{c.Label(), fmt.Sprintf("%.2f", risk.Score(c)), fmt.Sprintf("%.2f", assessor.Weight(c))})
	}
	renderTable(r, t)
	r.Println("")

	r.Println(output.FormatHeader(2, "Anbefalinger"))
	r.Println("")
	for _, rec := range risk.Recommendations {
		r.Println("- " + rec)
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Interessenter"))
	r.Println("")
	renderStakeholderTable(r, report.Stakeholders)
	r.Println("")

	r.Println(output.FormatHeader(2, "Tidslinje"))
	r.Println("")
	renderTimelineTable(r, report.Timeline)
	r.Println("")
	r.Printf("**Totalt:** %d uker (%.1f måneder)\n", report.Timeline.TotalWeeks, report.Timeline.TotalMonths)
	r.Println("")

	r.Println(output.FormatHeader(2, "Gjeldende regelverk"))
	r.Println("")
	renderRegulationTable(r, report.Regulations)

	if len(report.Insights) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Innsikt"))
		r.Println("")
		for _, in := range report.Insights {
			r.Printf("- **%s** (%s): %s %s\n", in.Title, in.Priority, in.Description, in.Action)
		}
	}
}

func renderStakeholderTable(r *output.Renderer, stakeholders []core.Stakeholder) {
	t := newTable(r, "Navn", "Type", "Innflytelse", "Interesse", "Strategi")
	for _, s := range stakeholders {
		t.AppendRow(table.Row{s.Name, s.Type, s.Influence, s.Interest, s.EngagementStrategy})
	}
	renderTable(r, t)
}

func renderTimelineTable(r *output.Renderer, tl core.Timeline) {
	t := newTable(r, "#", "Fase", "Start", "Uker", "Risikofaktorer")
	for i, phase := range tl.Phases {
		factors := make([]string, len(phase.RiskFactors))
		for j, f := range phase.RiskFactors {
			factors[j] = f.Label()
		}
		t.AppendRow(table.Row{i + 1, phase.Name, tl.StartWeek(i), phase.DurationWeeks, strings.Join(factors, ", ")})
	}
	renderTable(r, t)
}

func renderRegulationTable(r *output.Renderer, regs []core.RegulationRecord) {
	if len(regs) == 0 {
		r.Muted("Ingen regelverk gjelder")
		return
	}
	t := newTable(r, "ID", "Navn", "Status", "Frist (dager)", "Prioritet")
	for _, reg := range regs {
		t.AppendRow(table.Row{reg.ID, reg.Name, string(reg.ComplianceStatus), reg.DeadlineDays, reg.PriorityLevel})
	}
	renderTable(r, t)
}
