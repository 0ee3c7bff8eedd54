package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// AssessOptions holds options for the assess command.
type AssessOptions struct {
	File string
	Save bool

	Name                string
	Location            string
	Type                string
	Height              float64
	Units               int
	Parking             int
	Duration            int
	ZoningChange        bool
	EnvironmentalImpact bool
	Heritage            bool
	ZoneType            string
	NearbyFeatures      string
	NearbyRoads         string
	ComplexFoundation   bool
	InnovativeDesign    bool
	TightSite           bool
}

// NewAssessCommand creates the assess command.
func NewAssessCommand() *cobra.Command {
	opts := &AssessOptions{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess the planning risk of a building project",
		Long: `Score a building project for environmental, traffic, neighbor,
regulatory and technical risk, and derive its stakeholders, a risk-adjusted
timeline and the regulations that apply.

The project is read from --file (YAML) and/or the project flags. Flags
override values from the file. Project types accept either the internal
value (residential) or the Norwegian label (Boligbygging).

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Assess a project file
  planportal assess --file project.yaml

  # Assess from flags and save the result
  planportal assess --type residential --units 150 --height 12 --zoning-change --save

  # JSON output for scripts
  planportal assess --file project.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssess(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.File, "file", "f", "", "Project description YAML file")
	f.BoolVar(&opts.Save, "save", false, "Persist the assessment")
	f.StringVar(&opts.Name, "name", "", "Project name")
	f.StringVar(&opts.Location, "location", "", "Project location")
	f.StringVar(&opts.Type, "type", "", "Project type (residential|commercial|public|infrastructure|renovation|other)")
	f.Float64Var(&opts.Height, "height", 0, "Building height in meters")
	f.IntVar(&opts.Units, "units", 0, "Number of residential units")
	f.IntVar(&opts.Parking, "parking", 0, "Number of parking spaces")
	f.IntVar(&opts.Duration, "duration", 0, "Construction duration in months")
	f.BoolVar(&opts.ZoningChange, "zoning-change", false, "Project requires a zoning change")
	f.BoolVar(&opts.EnvironmentalImpact, "environmental-impact", false, "Project has environmental impact")
	f.BoolVar(&opts.Heritage, "heritage", false, "Project is in a heritage area")
	f.StringVar(&opts.ZoneType, "zone-type", "", "Current zone type")
	f.StringVar(&opts.NearbyFeatures, "nearby-features", "", "Nearby features (free text)")
	f.StringVar(&opts.NearbyRoads, "nearby-roads", "", "Nearby roads (free text)")
	f.BoolVar(&opts.ComplexFoundation, "complex-foundation", false, "Complex foundation work")
	f.BoolVar(&opts.InnovativeDesign, "innovative-design", false, "Innovative design or materials")
	f.BoolVar(&opts.TightSite, "tight-site", false, "Tight construction site")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var values []string
		for _, opt := range core.ProjectTypes() {
			values = append(values, opt.Value)
		}
		return values, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runAssess(cmd *cobra.Command, opts *AssessOptions) error {
	project, err := buildProject(opts, cmd.Flags())
	if err != nil {
		return err
	}

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := cc.Service.Assess(project)
	if err != nil {
		return err
	}

	var saved *core.SavedAssessment
	if opts.Save {
		saved, err = cc.Service.Save(commandCtx(cmd), report)
		if err != nil {
			return err
		}
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := assessOutput{Report: report}
		if saved != nil {
			out.AssessmentID = saved.ID
		}
		return r.JSON(out)
	case output.ModeMarkdown:
		renderReportMarkdown(r, report)
	default:
		renderReportText(r, report)
	}

	if saved != nil {
		r.Println("")
		r.Success("Assessment saved: " + saved.ID)
	}
	return nil
}

type assessOutput struct {
	*core.Report
	AssessmentID string `json:"assessment_id,omitempty"`
}

// buildProject merges the project file with explicitly set flags.
func buildProject(opts *AssessOptions, flags *pflag.FlagSet) (core.ProjectDescription, error) {
	raw := map[string]any{}
	if opts.File != "" {
		fileRaw, err := loadProjectFile(opts.File)
		if err != nil {
			return core.ProjectDescription{}, err
		}
		raw = fileRaw
	}

	overrides := map[string]any{
		"name":                 opts.Name,
		"location":             opts.Location,
		"type":                 opts.Type,
		"height":               opts.Height,
		"units":                opts.Units,
		"parking":              opts.Parking,
		"duration":             opts.Duration,
		"zoning-change":        opts.ZoningChange,
		"environmental-impact": opts.EnvironmentalImpact,
		"heritage":             opts.Heritage,
		"zone-type":            opts.ZoneType,
		"nearby-features":      opts.NearbyFeatures,
		"nearby-roads":         opts.NearbyRoads,
		"complex-foundation":   opts.ComplexFoundation,
		"innovative-design":    opts.InnovativeDesign,
		"tight-site":           opts.TightSite,
	}
	for flag, value := range overrides {
		if flags.Changed(flag) {
			raw[projectFlagKeys[flag]] = value
		}
	}

	return core.ProjectFromMap(raw), nil
}

// projectFlagKeys maps assess flags to project description keys.
var projectFlagKeys = map[string]string{
	"name":                 "project_name",
	"location":             "location",
	"type":                 "project_type",
	"height":               "building_height",
	"units":                "residential_units",
	"parking":              "parking_spaces",
	"duration":             "construction_duration",
	"zoning-change":        "requires_zoning_change",
	"environmental-impact": "environmental_impact",
	"heritage":             "heritage_area",
	"zone-type":            "zone_type",
	"nearby-features":      "nearby_features",
	"nearby-roads":         "nearby_roads",
	"complex-foundation":   "complex_foundation",
	"innovative-design":    "innovative_design",
	"tight-site":           "tight_site",
}

// loadProjectFile reads a project description YAML file as a loose map.
func loadProjectFile(path string) (map[string]any, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	return raw, nil
}
