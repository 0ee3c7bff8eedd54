package core

// Stakeholder is an entity to consult during the planning process.
// Influence and Interest are ratings from 1 to 5.
type Stakeholder struct {
	Name               string `json:"name"`
	Type               string `json:"type"`
	Influence          int    `json:"influence"`
	Interest           int    `json:"interest"`
	EngagementStrategy string `json:"engagement_strategy"`
}

// Quadrant places the stakeholder on the influence/interest grid.
func (s Stakeholder) Quadrant() string {
	highInfluence := s.Influence >= 4
	highInterest := s.Interest >= 4
	switch {
	case highInfluence && highInterest:
		return "Manage closely"
	case highInfluence:
		return "Keep satisfied"
	case highInterest:
		return "Keep informed"
	default:
		return "Monitor"
	}
}
