package core

// =============================================================================
// RiskCategory
// =============================================================================

// RiskCategory names one of the five independently scored risk contributors.
type RiskCategory string

// Risk categories in weighting order.
const (
	RiskEnvironmental RiskCategory = "environmental"
	RiskTraffic       RiskCategory = "traffic"
	RiskNeighbor      RiskCategory = "neighbor"
	RiskRegulatory    RiskCategory = "regulatory"
	RiskTechnical     RiskCategory = "technical"
)

// RiskCategories returns all categories in weighting order.
func RiskCategories() []RiskCategory {
	return []RiskCategory{RiskEnvironmental, RiskTraffic, RiskNeighbor, RiskRegulatory, RiskTechnical}
}

// String returns the string representation of the category.
func (c RiskCategory) String() string {
	return string(c)
}

// IsValid reports whether c is a known category.
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskEnvironmental, RiskTraffic, RiskNeighbor, RiskRegulatory, RiskTechnical:
		return true
	}
	return false
}

// Label returns the Norwegian display label.
func (c RiskCategory) Label() string {
	switch c {
	case RiskEnvironmental:
		return "Miljø"
	case RiskTraffic:
		return "Trafikk"
	case RiskNeighbor:
		return "Nabo"
	case RiskRegulatory:
		return "Regulatorisk"
	case RiskTechnical:
		return "Teknisk"
	default:
		return string(c)
	}
}

// =============================================================================
// RiskLevel
// =============================================================================

// RiskLevel is the ordinal bucket derived from the total risk score.
type RiskLevel string

// Risk levels from lowest to highest.
const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

// String returns the string representation of the level.
func (l RiskLevel) String() string {
	return string(l)
}

// IsValid reports whether l is a known level.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// Color returns the dashboard colour for the level.
func (l RiskLevel) Color() string {
	switch l {
	case RiskLevelLow:
		return "#148F77"
	case RiskLevelMedium:
		return "#F39C12"
	case RiskLevelHigh:
		return "#E74C3C"
	case RiskLevelCritical:
		return "#8B0000"
	default:
		return "#2C3E50"
	}
}

// =============================================================================
// RiskAssessment
// =============================================================================

// RiskAssessment is the result of scoring one project.
type RiskAssessment struct {
	EnvironmentalRisk float64   `json:"environmental_risk"`
	TrafficRisk       float64   `json:"traffic_risk"`
	NeighborRisk      float64   `json:"neighbor_risk"`
	RegulatoryRisk    float64   `json:"regulatory_risk"`
	TechnicalRisk     float64   `json:"technical_risk"`
	TotalRiskScore    float64   `json:"total_risk_score"`
	RiskLevel         RiskLevel `json:"risk_level"`
	Recommendations   []string  `json:"recommendations"`
}

// Score returns the sub-score for a category.
func (r RiskAssessment) Score(c RiskCategory) float64 {
	switch c {
	case RiskEnvironmental:
		return r.EnvironmentalRisk
	case RiskTraffic:
		return r.TrafficRisk
	case RiskNeighbor:
		return r.NeighborRisk
	case RiskRegulatory:
		return r.RegulatoryRisk
	case RiskTechnical:
		return r.TechnicalRisk
	default:
		return 0
	}
}
