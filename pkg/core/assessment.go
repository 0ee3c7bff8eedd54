package core

import "time"

// AssessmentStatusAnalyzed marks an assessment that has been scored.
const AssessmentStatusAnalyzed = "analyzed"

// SavedAssessment is a persisted assessment.
type SavedAssessment struct {
	ID           string             `json:"id"`
	ProjectName  string             `json:"project_name"`
	Location     string             `json:"location"`
	ProjectType  string             `json:"project_type"`
	Status       string             `json:"status"`
	Risk         RiskAssessment     `json:"risk"`
	Project      ProjectDescription `json:"project"`
	Stakeholders []Stakeholder      `json:"stakeholders,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}
