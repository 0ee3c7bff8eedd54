package assessor

import (
	"sort"

	"github.com/leapstack-labs/planportal/pkg/core"
)

// pollutionUnitThreshold is the unit count above which residential projects
// fall under the pollution act.
const pollutionUnitThreshold = 100

// Rule decides whether a conditional regulation binds a project.
type Rule struct {
	RegulationID string
	Condition    string
	Applies      func(p core.ProjectDescription) bool
}

// conditionalRules is the closed rule table for conditional regulations,
// keyed by regulation ID. Add a rule by adding an entry here.
var conditionalRules = map[string]Rule{
	core.RegulationNaturmangfoldloven: {
		RegulationID: core.RegulationNaturmangfoldloven,
		Condition:    "Gjelder når prosjektet har miljøkonsekvenser",
		Applies: func(p core.ProjectDescription) bool {
			return p.EnvironmentalImpact
		},
	},
	// Known quirk: every non-residential project is treated as applicable,
	// and residential projects only above the unit threshold. Kept as-is.
	core.RegulationForurensningsloven: {
		RegulationID: core.RegulationForurensningsloven,
		Condition:    "Boligprosjekter over 100 enheter; alle andre prosjekttyper",
		Applies: func(p core.ProjectDescription) bool {
			if p.ProjectType == core.ProjectTypeResidential {
				return p.ResidentialUnits > pollutionUnitThreshold
			}
			return true
		},
	},
}

// Rules returns the conditional rule table sorted by regulation ID.
func Rules() []Rule {
	out := make([]Rule, 0, len(conditionalRules))
	for _, r := range conditionalRules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegulationID < out[j].RegulationID })
	return out
}

// IsApplicable reports whether a single regulation binds the project.
// Mandatory regulations always apply; conditional ones without a rule apply too.
func IsApplicable(p core.ProjectDescription, reg core.RegulationRecord) bool {
	if reg.ComplianceStatus != core.ComplianceConditional {
		return true
	}
	rule, ok := conditionalRules[reg.ID]
	if !ok {
		return true
	}
	return rule.Applies(p)
}

// ConditionFor returns the human-readable condition for a regulation,
// or an empty string when none is registered.
func ConditionFor(regulationID string) string {
	return conditionalRules[regulationID].Condition
}

// ApplicableRegulations filters the catalog down to the regulations that bind
// the project, preserving catalog order.
func ApplicableRegulations(p core.ProjectDescription, regs []core.RegulationRecord) []core.RegulationRecord {
	out := make([]core.RegulationRecord, 0, len(regs))
	for _, reg := range regs {
		if IsApplicable(p, reg) {
			out = append(out, reg)
		}
	}
	return out
}
