// Package assessment provides the interactive project risk assessment.
package assessment

import (
	"html/template"

	"github.com/leapstack-labs/planportal/pkg/core"
)

// Signals are the datastar signals the assessment form sends.
type Signals struct {
	Project map[string]any `json:"project"`
}

// FormData is the assessment page.
type FormData struct {
	Signals      string
	ProjectTypes []core.ProjectTypeOption
	Status       StatusData
	Results      *ResultsData
}

// RiskBar is one category row in the risk chart.
type RiskBar struct {
	Label  string
	Weight float64
	Score  float64
	Width  template.CSS
}

// Quadrant is one cell of the stakeholder influence/interest matrix.
type Quadrant struct {
	Name         string
	Stakeholders []core.Stakeholder
}

// RegulationRow is one applicable regulation.
type RegulationRow struct {
	core.RegulationRecord
	Condition string
}

// GanttRow is one phase bar in the timeline chart.
type GanttRow struct {
	Name      string
	StartWeek int
	Weeks     int
	Risks     string
	Style     template.CSS
}

// ResultsData is the patchable assessment result area.
type ResultsData struct {
	Project      core.ProjectDescription
	Risk         core.RiskAssessment
	Bars         []RiskBar
	Quadrants    []Quadrant
	Stakeholders []core.Stakeholder
	Regulations  []RegulationRow
	Timeline     core.Timeline
	Gantt        []GanttRow
	Insights     []core.Insight
}

// StatusData is the save status line.
type StatusData struct {
	Message string
	Error   bool
}
