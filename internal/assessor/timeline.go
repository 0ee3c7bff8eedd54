package assessor

import (
	"math"

	"github.com/leapstack-labs/planportal/pkg/core"
)

// Phase names of the lifecycle template.
const (
	PhaseFeasibility    = "Forstudie og konseptutvikling"
	PhaseZoningPlan     = "Reguleringsplan utarbeidelse"
	PhasePublicHearing  = "Offentlig høring"
	PhasePolitical      = "Politisk behandling"
	PhaseBuildingPermit = "Byggesøknad"
	PhaseDetailedDesign = "Detaljprosjektering"
	PhaseConstruction   = "Byggestart"
)

const (
	zoningChangeExtraWeeks = 4
	neighborHearingWeeks   = 3
	neighborHearingTrigger = 0.6
	riskMultiplierPerScore = 0.5
	weeksPerMonth          = 4
)

type phaseTemplate struct {
	name        string
	baseWeeks   int
	riskFactors []core.RiskCategory
}

// phaseTemplates is the fixed lifecycle. Each phase depends on its predecessor.
var phaseTemplates = []phaseTemplate{
	{PhaseFeasibility, 4, []core.RiskCategory{core.RiskTechnical}},
	{PhaseZoningPlan, 8, []core.RiskCategory{core.RiskRegulatory, core.RiskEnvironmental}},
	{PhasePublicHearing, 6, []core.RiskCategory{core.RiskNeighbor}},
	{PhasePolitical, 4, []core.RiskCategory{core.RiskNeighbor, core.RiskEnvironmental}},
	{PhaseBuildingPermit, 6, []core.RiskCategory{core.RiskRegulatory, core.RiskTechnical}},
	{PhaseDetailedDesign, 8, []core.RiskCategory{core.RiskTechnical}},
	{PhaseConstruction, 1, []core.RiskCategory{core.RiskNeighbor}},
}

// BaseWeeks returns the sum of the unadjusted phase durations.
func BaseWeeks() int {
	total := 0
	for _, t := range phaseTemplates {
		total += t.baseWeeks
	}
	return total
}

// RiskMultiplier returns the duration multiplier for a total risk score.
func RiskMultiplier(totalRiskScore float64) float64 {
	return 1 + totalRiskScore*riskMultiplierPerScore
}

// GenerateTimeline builds the risk-adjusted phase plan.
// Durations are truncated to whole weeks before the flat phase adjustments.
func GenerateTimeline(p core.ProjectDescription, risk core.RiskAssessment) core.Timeline {
	multiplier := RiskMultiplier(risk.TotalRiskScore)

	phases := make([]core.TimelinePhase, 0, len(phaseTemplates))
	total := 0
	for i, t := range phaseTemplates {
		weeks := int(math.Floor(float64(t.baseWeeks) * multiplier))

		switch t.name {
		case PhaseZoningPlan:
			if p.RequiresZoningChange {
				weeks += zoningChangeExtraWeeks
			}
		case PhasePublicHearing:
			if risk.NeighborRisk > neighborHearingTrigger {
				weeks += neighborHearingWeeks
			}
		}

		deps := []string{}
		if i > 0 {
			deps = append(deps, phaseTemplates[i-1].name)
		}

		phases = append(phases, core.TimelinePhase{
			Name:          t.name,
			DurationWeeks: weeks,
			Dependencies:  deps,
			RiskFactors:   append([]core.RiskCategory(nil), t.riskFactors...),
		})
		total += weeks
	}

	return core.Timeline{
		Phases:      phases,
		TotalWeeks:  total,
		TotalMonths: math.Round(float64(total)/weeksPerMonth*10) / 10,
	}
}
