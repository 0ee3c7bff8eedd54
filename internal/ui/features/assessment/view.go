package assessment

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/leapstack-labs/planportal/internal/assessor"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// quadrantOrder is the reading order of the stakeholder matrix: high
// influence on the top row, high interest in the left column.
var quadrantOrder = []string{"Manage closely", "Keep satisfied", "Keep informed", "Monitor"}

func buildResults(report *core.Report) *ResultsData {
	data := &ResultsData{
		Project:      report.Project,
		Risk:         report.Risk,
		Stakeholders: report.Stakeholders,
		Timeline:     report.Timeline,
		Insights:     report.Insights,
	}

	for _, c := range core.RiskCategories() {
		score := report.Risk.Score(c)
		data.Bars = append(data.Bars, RiskBar{
			Label:  c.Label(),
			Weight: assessor.Weight(c),
			Score:  score,
			Width:  barStyle(0, score*100),
		})
	}

	byQuadrant := make(map[string][]core.Stakeholder, len(quadrantOrder))
	for _, s := range report.Stakeholders {
		byQuadrant[s.Quadrant()] = append(byQuadrant[s.Quadrant()], s)
	}
	for _, q := range quadrantOrder {
		data.Quadrants = append(data.Quadrants, Quadrant{Name: q, Stakeholders: byQuadrant[q]})
	}

	for _, r := range report.Regulations {
		data.Regulations = append(data.Regulations, RegulationRow{
			RegulationRecord: r,
			Condition:        assessor.ConditionFor(r.ID),
		})
	}

	total := report.Timeline.TotalWeeks
	for i, p := range report.Timeline.Phases {
		start := report.Timeline.StartWeek(i)
		risks := make([]string, len(p.RiskFactors))
		for j, rf := range p.RiskFactors {
			risks[j] = rf.Label()
		}
		row := GanttRow{
			Name:      p.Name,
			StartWeek: start,
			Weeks:     p.DurationWeeks,
			Risks:     strings.Join(risks, ", "),
		}
		if total > 0 {
			row.Style = barStyle(float64(start)/float64(total)*100, float64(p.DurationWeeks)/float64(total)*100)
		}
		data.Gantt = append(data.Gantt, row)
	}

	return data
}

func barStyle(offset, width float64) template.CSS {
	return template.CSS(fmt.Sprintf("margin-left: %.1f%%; width: %.1f%%", offset, width))
}
