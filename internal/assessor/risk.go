package assessor

import (
	"math"
	"strings"

	"github.com/leapstack-labs/planportal/pkg/core"
)

// Text markers matched as case-insensitive substrings of free-text fields.
const (
	markerNatureArea      = "naturområde"
	markerWaterArea       = "vannområde"
	markerMainRoad        = "hovedvei"
	markerResidentialZone = "boligområde"
)

// Weights of each sub-score in the total. They sum to 1.0.
var riskWeights = map[core.RiskCategory]float64{
	core.RiskEnvironmental: 0.30,
	core.RiskTraffic:       0.25,
	core.RiskNeighbor:      0.20,
	core.RiskRegulatory:    0.15,
	core.RiskTechnical:     0.10,
}

// Weight returns the weight of a category in the total risk score.
func Weight(c core.RiskCategory) float64 {
	return riskWeights[c]
}

// AssessRisk computes the five sub-scores, the weighted total, the risk level
// and the recommendation tier for a project.
func AssessRisk(p core.ProjectDescription) core.RiskAssessment {
	ra := core.RiskAssessment{
		EnvironmentalRisk: environmentalRisk(p),
		TrafficRisk:       trafficRisk(p),
		NeighborRisk:      neighborRisk(p),
		RegulatoryRisk:    regulatoryRisk(p),
		TechnicalRisk:     technicalRisk(p),
	}

	var total float64
	for _, c := range core.RiskCategories() {
		total += ra.Score(c) * riskWeights[c]
	}

	// Level and recommendations use the unrounded total.
	ra.TotalRiskScore = round2(total)
	ra.RiskLevel = RiskLevelFor(total)
	ra.Recommendations = Recommendations(total)
	return ra
}

// RiskLevelFor maps a total score onto the four half-open buckets.
func RiskLevelFor(total float64) core.RiskLevel {
	switch {
	case total < 0.3:
		return core.RiskLevelLow
	case total < 0.6:
		return core.RiskLevelMedium
	case total < 0.8:
		return core.RiskLevelHigh
	default:
		return core.RiskLevelCritical
	}
}

func environmentalRisk(p core.ProjectDescription) float64 {
	score := 0.3
	if containsFold(p.Location, markerNatureArea) {
		score += 0.4
	}
	if p.BuildingHeight > 8 {
		score += 0.2
	}
	if containsFold(p.NearbyFeatures, markerWaterArea) {
		score += 0.3
	}
	return clamp(score)
}

func trafficRisk(p core.ProjectDescription) float64 {
	score := 0.2
	if p.ResidentialUnits > 100 {
		score += 0.3
	}
	if containsFold(p.NearbyRoads, markerMainRoad) {
		score += 0.2
	}
	if float64(p.ParkingSpaces) < float64(p.ResidentialUnits)*0.8 {
		score += 0.25
	}
	return clamp(score)
}

func neighborRisk(p core.ProjectDescription) float64 {
	score := 0.25
	if p.BuildingHeight > 6 {
		score += 0.2
	}
	if containsFold(p.ZoneType, markerResidentialZone) {
		score += 0.15
	}
	if p.ConstructionDuration > 24 {
		score += 0.1
	}
	return clamp(score)
}

func regulatoryRisk(p core.ProjectDescription) float64 {
	score := 0.1
	if p.RequiresZoningChange {
		score += 0.4
	}
	if p.HeritageArea {
		score += 0.3
	}
	if p.EnvironmentalImpact {
		score += 0.2
	}
	return clamp(score)
}

func technicalRisk(p core.ProjectDescription) float64 {
	score := 0.15
	if p.ComplexFoundation {
		score += 0.25
	}
	if p.InnovativeDesign {
		score += 0.2
	}
	if p.TightSite {
		score += 0.15
	}
	return clamp(score)
}

// containsFold is an exact substring test after lower-casing both sides.
func containsFold(text, marker string) bool {
	return strings.Contains(strings.ToLower(text), marker)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
