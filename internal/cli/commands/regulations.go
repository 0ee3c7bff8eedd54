package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/planportal/internal/assessor"
	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/spf13/cobra"
)

// NewRegulationsCommand creates the regulations command.
func NewRegulationsCommand() *cobra.Command {
	var applicableTo string

	cmd := &cobra.Command{
		Use:   "regulations",
		Short: "List the regulation catalog",
		Long: `List the regulations projects are checked against, in catalog order.

Mandatory regulations always apply. Conditional regulations apply when their
rule matches the project; a conditional regulation without a rule applies to
every project.

The catalog is read from the state database and the optional
regulations_file override.`,
		Example: `  planportal regulations
  planportal regulations --applicable-to project.yaml
  planportal regulations --regulations-file overrides.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			regs, err := cc.Catalog.Regulations()
			if err != nil {
				return err
			}

			title := "Regelverk"
			if applicableTo != "" {
				raw, err := loadProjectFile(applicableTo)
				if err != nil {
					return err
				}
				p := core.ProjectFromMap(raw)
				regs = assessor.ApplicableRegulations(p, regs)
				title = "Gjeldende regelverk: " + projectTitle(p)
			}

			return renderRegulations(cc.Renderer, title, regs)
		},
	}

	cmd.Flags().StringVar(&applicableTo, "applicable-to", "", "Only regulations that apply to this project file")

	return cmd
}

type regulationOutput struct {
	core.RegulationRecord
	Condition string `json:"condition,omitempty"`
}

func renderRegulations(r *output.Renderer, title string, regs []core.RegulationRecord) error {
	if r.EffectiveMode() == output.ModeJSON {
		out := make([]regulationOutput, len(regs))
		for i, reg := range regs {
			out[i] = regulationOutput{RegulationRecord: reg, Condition: assessor.ConditionFor(reg.ID)}
		}
		return r.JSON(out)
	}

	r.Header(1, title)
	if len(regs) == 0 {
		r.Muted("Ingen regelverk gjelder")
		return nil
	}

	t := newTable(r, "ID", "Navn", "Type", "Status", "Vilkår", "Frist (dager)", "Dokumentasjon")
	for _, reg := range regs {
		t.AppendRow(table.Row{
			reg.ID, reg.Name, reg.Type, string(reg.ComplianceStatus),
			assessor.ConditionFor(reg.ID), reg.DeadlineDays, reg.RequiredDocuments,
		})
	}
	renderTable(r, t)
	return nil
}
