package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/planportal/internal/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	// sqlite driver for state database queries.
	_ "modernc.org/sqlite"
)

// resolveStatePath returns the state database path from config or the default.
func resolveStatePath(cfg *config.Config) string {
	if cfg.StatePath != "" {
		return cfg.StatePath
	}
	return config.DefaultStateFile
}

// openStateDBReadOnly opens the state database in read-only mode.
func openStateDBReadOnly(path string) (*sql.DB, error) {
	return sql.Open("sqlite", "file:"+path+"?mode=ro")
}

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Query the state database",
		Long: `Query the planportal state database directly.

Execute read-only SQL against the document catalog, regulations and saved
assessments. Supports multiple output formats for scripting and integration.

When invoked without arguments, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  planportal query "SELECT * FROM v_assessments"

  # List available tables
  planportal query tables

  # Show schema for a table
  planportal query schema planning_documents

  # Search documents
  planportal query search "klima"

  # Output as JSON
  planportal query "SELECT title, status FROM planning_documents" --format json

  # Interactive mode
  planportal query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	cmd.AddCommand(newQueryTablesCommand(opts))
	cmd.AddCommand(newQueryViewsCommand(opts))
	cmd.AddCommand(newQuerySchemaCommand(opts))
	cmd.AddCommand(newQuerySearchCommand(opts))

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	statePath, err := existingStatePath(cmd)
	if err != nil {
		return err
	}

	var sqlQuery string

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !term.IsTerminal(int(os.Stdin.Fd())): //nolint:gosec // fd fits in int
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		return runQueryREPL(cmd, statePath, opts)
	}

	return executeAndRender(cmd.Context(), cmd.OutOrStdout(), statePath, sqlQuery, opts.Format)
}

// existingStatePath returns the configured state path, failing when the
// database has not been created yet.
func existingStatePath(cmd *cobra.Command) (string, error) {
	cc := NewCommandContextWithoutStore(cmd)
	statePath := resolveStatePath(cc.Cfg)
	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		return "", fmt.Errorf("state database not found at %s (run 'planportal seed' first)", statePath)
	}
	return statePath, nil
}

func executeAndRender(ctx context.Context, w io.Writer, statePath, sqlQuery, format string) error {
	db, err := openStateDBReadOnly(statePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return queryAndRender(ctx, w, db, sqlQuery, format)
}

func queryAndRender(ctx context.Context, w io.Writer, db *sql.DB, sqlQuery, format string, args ...any) error {
	rows, err := db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return renderResults(w, rows, format)
}

// newQueryTablesCommand creates the tables subcommand.
func newQueryTablesCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List all tables and views in the state database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStateDB(cmd, func(db *sql.DB) error {
				return listTablesFromDB(cmd.Context(), cmd.OutOrStdout(), db, opts.Format, false)
			})
		},
	}
}

// newQueryViewsCommand creates the views subcommand.
func newQueryViewsCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List views only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStateDB(cmd, func(db *sql.DB) error {
				return listTablesFromDB(cmd.Context(), cmd.OutOrStdout(), db, opts.Format, true)
			})
		},
	}
}

// newQuerySchemaCommand creates the schema subcommand.
func newQuerySchemaCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show schema for a table or view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStateDB(cmd, func(db *sql.DB) error {
				return showSchemaFromDB(cmd.Context(), cmd.OutOrStdout(), db, args[0], opts.Format)
			})
		},
	}
}

// newQuerySearchCommand creates the search subcommand.
func newQuerySearchCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search planning documents",
		Long: `Search planning documents by title, description and tags.

Matching is case-insensitive for ASCII letters.`,
		Example: `  planportal query search "klima"
  planportal query search "sykkel" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStateDB(cmd, func(db *sql.DB) error {
				return searchDocumentsFromDB(cmd.Context(), cmd.OutOrStdout(), db, args[0], opts.Format)
			})
		},
	}
}

func withStateDB(cmd *cobra.Command, fn func(db *sql.DB) error) error {
	statePath, err := existingStatePath(cmd)
	if err != nil {
		return err
	}
	db, err := openStateDBReadOnly(statePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()
	return fn(db)
}

func searchDocumentsFromDB(ctx context.Context, w io.Writer, db *sql.DB, term, format string) error {
	query := `
		SELECT id, title, category, status, priority
		FROM planning_documents
		WHERE title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'
		ORDER BY priority DESC, title
		LIMIT 50
	`
	pattern := "%" + escapeLikePattern(term) + "%"
	return queryAndRender(ctx, w, db, query, format, pattern, pattern, pattern)
}

func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
