package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectFromMap(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want ProjectDescription
	}{
		{
			name: "nil map yields zero project",
			raw:  nil,
			want: ProjectDescription{},
		},
		{
			name: "json style numbers and bools",
			raw: map[string]any{
				"project_name":           "Hovinbyen felt B",
				"project_type":           "residential",
				"building_height":        12.5,
				"residential_units":      float64(120),
				"parking_spaces":         float64(60),
				"construction_duration":  float64(30),
				"requires_zoning_change": true,
				"nearby_roads":           "hovedvei",
			},
			want: ProjectDescription{
				ProjectName:          "Hovinbyen felt B",
				ProjectType:          "residential",
				BuildingHeight:       12.5,
				ResidentialUnits:     120,
				ParkingSpaces:        60,
				ConstructionDuration: 30,
				RequiresZoningChange: true,
				NearbyRoads:          "hovedvei",
			},
		},
		{
			name: "form strings are coerced",
			raw: map[string]any{
				"building_height":      "8,5",
				"residential_units":    "51",
				"environmental_impact": "on",
				"heritage_area":        "false",
				"tight_site":           "ja",
			},
			want: ProjectDescription{
				BuildingHeight:      8.5,
				ResidentialUnits:    51,
				EnvironmentalImpact: true,
				TightSite:           true,
			},
		},
		{
			name: "mistyped values fall back to zero",
			raw: map[string]any{
				"location":           []any{"not", "a", "string"},
				"building_height":    "tall",
				"residential_units":  map[string]any{},
				"complex_foundation": []any{true},
			},
			want: ProjectDescription{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectFromMap(tt.raw))
		})
	}
}

func TestProjectDescription_ToMapRoundTrip(t *testing.T) {
	p := ProjectDescription{
		ProjectName:      "Bjørvika",
		Location:         "Bjørvika",
		ProjectType:      ProjectTypeCommercial,
		BuildingHeight:   40,
		ResidentialUnits: 0,
		TightSite:        true,
	}
	assert.Equal(t, p, ProjectFromMap(p.ToMap()))
}

func TestParseProjectType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "residential", want: ProjectTypeResidential},
		{in: "Boligbygging", want: ProjectTypeResidential},
		{in: " næringsbygg ", want: ProjectTypeCommercial},
		{in: "Offentlig bygg", want: ProjectTypePublic},
		{in: "INFRASTRUCTURE", want: ProjectTypeInfrastructure},
		{in: "Rehabilitering", want: ProjectTypeRenovation},
		{in: "Annet", want: ProjectTypeOther},
		{in: "hytte", want: "hytte"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseProjectType(tt.in))
		})
	}

	p := ProjectFromMap(map[string]any{"project_type": "Boligbygging"})
	assert.Equal(t, ProjectTypeResidential, p.ProjectType)
}

func TestProjectTypeLabel(t *testing.T) {
	assert.Equal(t, "Boligbygging", ProjectTypeLabel(ProjectTypeResidential))
	assert.Equal(t, "Annet", ProjectTypeLabel(ProjectTypeOther))
	assert.Equal(t, "ukjent", ProjectTypeLabel("ukjent"))
	assert.Len(t, ProjectTypes(), 6)
}

func TestRiskLevel(t *testing.T) {
	assert.True(t, RiskLevelCritical.IsValid())
	assert.False(t, RiskLevel("Extreme").IsValid())
	assert.Equal(t, "#148F77", RiskLevelLow.Color())
	assert.Equal(t, "#8B0000", RiskLevelCritical.Color())
	assert.Equal(t, "High", RiskLevelHigh.String())
}

func TestRiskAssessment_Score(t *testing.T) {
	ra := RiskAssessment{EnvironmentalRisk: 0.1, TrafficRisk: 0.2, NeighborRisk: 0.3, RegulatoryRisk: 0.4, TechnicalRisk: 0.5}
	want := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	for i, c := range RiskCategories() {
		assert.True(t, c.IsValid())
		assert.InDelta(t, want[i], ra.Score(c), 1e-12)
	}
	assert.Zero(t, ra.Score(RiskCategory("unknown")))
}
