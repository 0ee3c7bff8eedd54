package core

import (
	"math"
	"strconv"
	"strings"
)

// Project types accepted by the assessor.
const (
	ProjectTypeResidential    = "residential"
	ProjectTypeCommercial     = "commercial"
	ProjectTypePublic         = "public"
	ProjectTypeInfrastructure = "infrastructure"
	ProjectTypeRenovation     = "renovation"
	ProjectTypeOther          = "other"
)

// ProjectTypeOption pairs a project type with its display label.
type ProjectTypeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProjectTypes returns the selectable project types in display order.
func ProjectTypes() []ProjectTypeOption {
	return []ProjectTypeOption{
		{Value: ProjectTypeResidential, Label: "Boligbygging"},
		{Value: ProjectTypeCommercial, Label: "Næringsbygg"},
		{Value: ProjectTypePublic, Label: "Offentlig bygg"},
		{Value: ProjectTypeInfrastructure, Label: "Infrastruktur"},
		{Value: ProjectTypeRenovation, Label: "Rehabilitering"},
		{Value: ProjectTypeOther, Label: "Annet"},
	}
}

// ProjectTypeLabel returns the display label for a project type,
// or the raw value when it is not a known type.
func ProjectTypeLabel(value string) string {
	for _, opt := range ProjectTypes() {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// ParseProjectType maps a project type value or its display label onto the
// internal value. Unknown input is returned unchanged.
func ParseProjectType(s string) string {
	s = strings.TrimSpace(s)
	for _, opt := range ProjectTypes() {
		if strings.EqualFold(s, opt.Value) || strings.EqualFold(s, opt.Label) {
			return opt.Value
		}
	}
	return s
}

// ProjectDescription is the input to one assessment.
// Every field is optional; the zero value means "condition not met".
type ProjectDescription struct {
	ProjectName          string  `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	Location             string  `json:"location" yaml:"location"`
	ProjectType          string  `json:"project_type" yaml:"project_type"`
	BuildingHeight       float64 `json:"building_height" yaml:"building_height"`
	ResidentialUnits     int     `json:"residential_units" yaml:"residential_units"`
	ParkingSpaces        int     `json:"parking_spaces" yaml:"parking_spaces"`
	ConstructionDuration int     `json:"construction_duration" yaml:"construction_duration"`
	RequiresZoningChange bool    `json:"requires_zoning_change" yaml:"requires_zoning_change"`
	EnvironmentalImpact  bool    `json:"environmental_impact" yaml:"environmental_impact"`
	HeritageArea         bool    `json:"heritage_area" yaml:"heritage_area"`
	ZoneType             string  `json:"zone_type" yaml:"zone_type"`
	NearbyFeatures       string  `json:"nearby_features" yaml:"nearby_features"`
	NearbyRoads          string  `json:"nearby_roads" yaml:"nearby_roads"`
	ComplexFoundation    bool    `json:"complex_foundation" yaml:"complex_foundation"`
	InnovativeDesign     bool    `json:"innovative_design" yaml:"innovative_design"`
	TightSite            bool    `json:"tight_site" yaml:"tight_site"`
}

// ProjectFromMap builds a ProjectDescription from loosely typed input such as
// decoded JSON, YAML or form signals. Missing or mistyped values fall back to
// the zero value instead of failing.
func ProjectFromMap(raw map[string]any) ProjectDescription {
	return ProjectDescription{
		ProjectName:          asString(raw["project_name"]),
		Location:             asString(raw["location"]),
		ProjectType:          ParseProjectType(asString(raw["project_type"])),
		BuildingHeight:       asFloat(raw["building_height"]),
		ResidentialUnits:     asInt(raw["residential_units"]),
		ParkingSpaces:        asInt(raw["parking_spaces"]),
		ConstructionDuration: asInt(raw["construction_duration"]),
		RequiresZoningChange: asBool(raw["requires_zoning_change"]),
		EnvironmentalImpact:  asBool(raw["environmental_impact"]),
		HeritageArea:         asBool(raw["heritage_area"]),
		ZoneType:             asString(raw["zone_type"]),
		NearbyFeatures:       asString(raw["nearby_features"]),
		NearbyRoads:          asString(raw["nearby_roads"]),
		ComplexFoundation:    asBool(raw["complex_foundation"]),
		InnovativeDesign:     asBool(raw["innovative_design"]),
		TightSite:            asBool(raw["tight_site"]),
	}
}

// ToMap is the inverse of ProjectFromMap.
func (p ProjectDescription) ToMap() map[string]any {
	return map[string]any{
		"project_name":           p.ProjectName,
		"location":               p.Location,
		"project_type":           p.ProjectType,
		"building_height":        p.BuildingHeight,
		"residential_units":      p.ResidentialUnits,
		"parking_spaces":         p.ParkingSpaces,
		"construction_duration":  p.ConstructionDuration,
		"requires_zoning_change": p.RequiresZoningChange,
		"environmental_impact":   p.EnvironmentalImpact,
		"heritage_area":          p.HeritageArea,
		"zone_type":              p.ZoneType,
		"nearby_features":        p.NearbyFeatures,
		"nearby_roads":           p.NearbyRoads,
		"complex_foundation":     p.ComplexFoundation,
		"innovative_design":      p.InnovativeDesign,
		"tight_site":             p.TightSite,
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int, int64, float64:
		return strconv.FormatFloat(asFloat(t), 'f', -1, 64)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case bool:
		if t {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(t, ",", ".")), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func asInt(v any) int {
	f := asFloat(v)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "on", "1", "ja":
			return true
		}
		return false
	case nil:
		return false
	default:
		return asFloat(t) != 0
	}
}
