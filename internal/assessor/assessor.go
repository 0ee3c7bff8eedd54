package assessor

import "github.com/leapstack-labs/planportal/pkg/core"

// Assess runs every assessment step for one project against the given
// regulation catalog.
func Assess(p core.ProjectDescription, regs []core.RegulationRecord) *core.Report {
	risk := AssessRisk(p)
	return &core.Report{
		Project:      p,
		Risk:         risk,
		Stakeholders: IdentifyStakeholders(p),
		Timeline:     GenerateTimeline(p, risk),
		Regulations:  ApplicableRegulations(p, regs),
		Insights:     Insights(p, risk),
	}
}
