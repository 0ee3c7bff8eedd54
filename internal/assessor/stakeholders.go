package assessor

import "github.com/leapstack-labs/planportal/pkg/core"

// communityThreshold is the unit count above which local community
// representatives are consulted.
const communityThreshold = 50

var (
	coreStakeholders = []core.Stakeholder{
		{
			Name:               "Plan- og bygningsetaten (PBE)",
			Type:               "Regulatory Authority",
			Influence:          5,
			Interest:           5,
			EngagementStrategy: "Formal application process and regular consultations",
		},
		{
			Name:               "Bymiljøetaten (BYM)",
			Type:               "Municipal Department",
			Influence:          4,
			Interest:           4,
			EngagementStrategy: "Early consultation on environmental impacts",
		},
	}

	environmentStakeholder = core.Stakeholder{
		Name:               "Miljødirektoratet",
		Type:               "National Authority",
		Influence:          4,
		Interest:           5,
		EngagementStrategy: "Formal environmental impact assessment submission",
	}

	heritageStakeholder = core.Stakeholder{
		Name:               "Riksantikvaren",
		Type:               "Cultural Heritage Authority",
		Influence:          5,
		Interest:           4,
		EngagementStrategy: "Cultural heritage impact assessment and consultation",
	}

	communityStakeholders = []core.Stakeholder{
		{
			Name:               "Naboer og lokalmiljø",
			Type:               "Local Community",
			Influence:          3,
			Interest:           5,
			EngagementStrategy: "Public meetings and information campaigns",
		},
		{
			Name:               "Bydelsutvalget",
			Type:               "District Committee",
			Influence:          3,
			Interest:           4,
			EngagementStrategy: "Presentation to district committee",
		},
	}
)

// IdentifyStakeholders returns the stakeholders to engage for a project.
// The two core stakeholders are always first; the rest follow in a fixed order.
func IdentifyStakeholders(p core.ProjectDescription) []core.Stakeholder {
	out := make([]core.Stakeholder, 0, len(coreStakeholders)+4)
	out = append(out, coreStakeholders...)

	if p.EnvironmentalImpact {
		out = append(out, environmentStakeholder)
	}
	if p.HeritageArea {
		out = append(out, heritageStakeholder)
	}
	if p.ResidentialUnits > communityThreshold {
		out = append(out, communityStakeholders...)
	}
	return out
}
