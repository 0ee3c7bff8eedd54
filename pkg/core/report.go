package core

// Insight priorities.
const (
	InsightPriorityHigh   = "Høy"
	InsightPriorityMedium = "Medium"
)

// Insight is an actionable observation derived from an assessment.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Priority    string `json:"priority"`
}

// Report bundles every output of one assessment.
type Report struct {
	Project      ProjectDescription `json:"project"`
	Risk         RiskAssessment     `json:"risk"`
	Stakeholders []Stakeholder      `json:"stakeholders"`
	Timeline     Timeline           `json:"timeline"`
	Regulations  []RegulationRecord `json:"regulations"`
	Insights     []Insight          `json:"insights"`
}
