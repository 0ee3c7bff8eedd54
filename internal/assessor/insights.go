package assessor

import "github.com/leapstack-labs/planportal/pkg/core"

// Insights derives dashboard observations from an assessment.
func Insights(p core.ProjectDescription, risk core.RiskAssessment) []core.Insight {
	var out []core.Insight

	if risk.EnvironmentalRisk > 0.6 {
		out = append(out, core.Insight{
			Title:       "🌿 Høy miljørisiko identifisert",
			Description: "Prosjektet har høy miljørisiko. Anbefaler omfattende miljøutredning.",
			Action:      "Kontakt miljøkonsulent og bestill naturkartlegging",
			Priority:    core.InsightPriorityHigh,
		})
	}
	if risk.NeighborRisk > 0.5 {
		out = append(out, core.Insight{
			Title:       "🏠 Naboengasjement kritisk",
			Description: "Høy risiko for naboprotester. Proaktiv kommunikasjon anbefales.",
			Action:      "Planlegg nabomøter og informasjonskampanje tidlig",
			Priority:    core.InsightPriorityMedium,
		})
	}
	if p.ResidentialUnits > 100 {
		out = append(out, core.Insight{
			Title:       "🚗 Trafikkanalyse påkrevd",
			Description: "Stort boligprosjekt krever detaljert trafikkanalyse.",
			Action:      "Bestill trafikkutredning og mobilitetsplan",
			Priority:    core.InsightPriorityHigh,
		})
	}
	return out
}
