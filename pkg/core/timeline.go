package core

// TimelinePhase is one stage of the project lifecycle.
type TimelinePhase struct {
	Name          string         `json:"name"`
	DurationWeeks int            `json:"duration_weeks"`
	Dependencies  []string       `json:"dependencies"`
	RiskFactors   []RiskCategory `json:"risk_factors"`
}

// Timeline is the ordered, risk-adjusted phase plan for a project.
type Timeline struct {
	Phases      []TimelinePhase `json:"phases"`
	TotalWeeks  int             `json:"total_weeks"`
	TotalMonths float64         `json:"total_months"`
}

// StartWeek returns the week offset at which phase i begins.
func (t Timeline) StartWeek(i int) int {
	start := 0
	for j := 0; j < i && j < len(t.Phases); j++ {
		start += t.Phases[j].DurationWeeks
	}
	return start
}
