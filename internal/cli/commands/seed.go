package commands

import (
	"strconv"

	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/spf13/cobra"
)

// SeedOutput is the JSON output of the seed command.
type SeedOutput struct {
	StatePath        string `json:"state_path"`
	MigrationVersion int64  `json:"migration_version"`
	Categories       int    `json:"categories"`
	Documents        int    `json:"documents"`
	Regulations      int    `json:"regulations"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the state database and load the built-in catalog",
		Long: `Apply database migrations and load the built-in document categories,
planning documents and regulations.

Seeding is idempotent: rows that already exist are left untouched, so the
counts report only what was added.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Seed the default state database
  planportal seed

  # Seed a specific database as JSON
  planportal seed --state ./data/planportal.db -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd)
		},
	}

	return cmd
}

func runSeed(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutStore(cmd)

	store, err := openStore(cc.Cfg.StatePath, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := store.SeedCatalog()
	if err != nil {
		return err
	}
	version, err := store.GetMigrationVersion()
	if err != nil {
		return err
	}

	out := SeedOutput{
		StatePath:        cc.Cfg.StatePath,
		MigrationVersion: version,
		Categories:       result.Categories,
		Documents:        result.Documents,
		Regulations:      result.Regulations,
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Seed"))
		r.Println("")
		r.Println(output.FormatKeyValue("State", out.StatePath))
		r.Println("")
		r.Println(output.FormatKeyValue("Migration version", out.MigrationVersion))
		r.Println("")
		r.Println(output.FormatKeyValue("Categories added", out.Categories))
		r.Println("")
		r.Println(output.FormatKeyValue("Documents added", out.Documents))
		r.Println("")
		r.Println(output.FormatKeyValue("Regulations added", out.Regulations))
	default:
		r.Header(1, "Seed")
		r.StatusLine("migrations", "success", "version "+strconv.FormatInt(out.MigrationVersion, 10))
		r.StatusLine("categories", "success", strconv.Itoa(out.Categories)+" added")
		r.StatusLine("documents", "success", strconv.Itoa(out.Documents)+" added")
		r.StatusLine("regulations", "success", strconv.Itoa(out.Regulations)+" added")
		r.Println("")
		r.Muted("State: " + out.StatePath)
	}
	return nil
}
