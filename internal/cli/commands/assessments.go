package commands

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/leapstack-labs/planportal/internal/state"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/spf13/cobra"
)

// NewAssessmentsCommand creates the assessments command.
func NewAssessmentsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "assessments",
		Short: "List saved assessments",
		Long: `List assessments saved with 'planportal assess --save' or from the
dashboard, newest first.`,
		Example: `  planportal assessments
  planportal assessments --limit 5 -o json
  planportal assessments show 3f2a...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssessmentsList(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of assessments (0 for all)")
	cmd.AddCommand(newAssessmentsShowCommand())

	return cmd
}

func newAssessmentsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssessmentsShow(cmd, args[0])
		},
	}
}

func runAssessmentsList(cmd *cobra.Command, limit int) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := cc.Service.Recent(limit)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if list == nil {
			list = []*core.SavedAssessment{}
		}
		return r.JSON(list)
	}

	r.Header(1, "Lagrede vurderinger")
	if len(list) == 0 {
		r.Muted("Ingen lagrede vurderinger")
		return nil
	}

	t := newTable(r, "ID", "Prosjekt", "Lokasjon", "Type", "Total", "Nivå", "Opprettet")
	for _, a := range list {
		t.AppendRow(table.Row{
			a.ID, a.ProjectName, a.Location, core.ProjectTypeLabel(a.ProjectType),
			fmt.Sprintf("%.2f", a.Risk.TotalRiskScore), string(a.Risk.RiskLevel), formatTime(a.CreatedAt),
		})
	}
	renderTable(r, t)
	return nil
}

func runAssessmentsShow(cmd *cobra.Command, id string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := cc.Service.Get(id)
	if errors.Is(err, state.ErrNotFound) {
		return fmt.Errorf("no assessment with id %s", id)
	}
	if err != nil {
		return err
	}

	// Stakeholders, timeline and regulations are recomputed from the stored
	// project; risk scores come from the saved row.
	report, err := cc.Service.Assess(a.Project)
	if err != nil {
		return err
	}
	report.Risk = a.Risk

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(assessOutput{Report: report, AssessmentID: a.ID})
	case output.ModeMarkdown:
		renderReportMarkdown(r, report)
	default:
		renderReportText(r, report)
	}
	r.Println("")
	r.Muted("Lagret " + formatTime(a.CreatedAt))
	return nil
}
