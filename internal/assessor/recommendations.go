package assessor

// Recommendation tiers keyed on the aggregate score only.
var (
	recommendationsHigh = []string{
		"🚨 Consider comprehensive stakeholder engagement strategy",
		"📋 Conduct detailed environmental impact assessment",
		"🏛️ Engage with regulatory authorities early",
	}
	recommendationsMedium = []string{
		"⚠️ Implement proactive neighbor consultation",
		"📊 Conduct traffic impact analysis",
		"🌿 Consider environmental mitigation measures",
	}
	recommendationsLow = []string{
		"✅ Project appears low risk",
		"📈 Focus on efficient permit processing",
		"🏗️ Standard regulatory compliance approach",
	}
)

// Recommendations returns the fixed recommendation list for a total score.
// The returned slice is a copy and may be modified by the caller.
func Recommendations(total float64) []string {
	var tier []string
	switch {
	case total > 0.7:
		tier = recommendationsHigh
	case total > 0.5:
		tier = recommendationsMedium
	default:
		tier = recommendationsLow
	}
	return append([]string(nil), tier...)
}
