package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/leapstack-labs/planportal/internal/verify"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Verification statuses written back to the catalog by --online.
const (
	verificationVerified    = "verified"
	verificationUnreachable = "unreachable"
)

// VerifyOptions holds options for the verify command.
type VerifyOptions struct {
	Online      bool
	Concurrency int
}

// VerifyOutput is the JSON output of the verify command.
type VerifyOutput struct {
	AverageScore float64                `json:"average_score"`
	Quality      []verify.QualityReport `json:"quality"`
	Issues       []verify.Issue         `json:"issues"`
	Online       []verify.URLResult     `json:"online,omitempty"`
	Accessible   int                    `json:"accessible,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	opts := &VerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check document metadata quality and catalog integrity",
		Long: `Score every planning document on eight metadata quality checks and
check the catalog for duplicates, bad URLs, unknown categories and invalid
values.

With --online each document URL is probed through the robots-aware fetcher
and the result is stored as the document's verification status.`,
		Example: `  planportal verify
  planportal verify --online --concurrency 2
  planportal verify -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Online, "online", false, "Check that document URLs are reachable")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Concurrent URL checks (default: fetch.concurrency)")

	return cmd
}

func runVerify(cmd *cobra.Command, opts *VerifyOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := cc.Store.ListDocuments()
	if err != nil {
		return err
	}
	categories, err := cc.Store.ListCategories()
	if err != nil {
		return err
	}

	quality := verify.QualityAll(docs)
	out := &VerifyOutput{
		AverageScore: verify.AverageScore(quality),
		Quality:      quality,
		Issues:       verify.Integrity(docs, categories),
	}

	if opts.Online {
		concurrency := opts.Concurrency
		if concurrency < 1 {
			concurrency = cc.Cfg.Fetch.Concurrency
		}
		results, err := verify.CheckURLs(commandCtx(cmd), cc.NewFetcher(), docs, concurrency)
		if err != nil {
			return fmt.Errorf("online verification failed: %w", err)
		}
		now := time.Now().UTC()
		for _, res := range results {
			status := verificationUnreachable
			if res.Status.Accessible && res.Status.Error == "" {
				status = verificationVerified
			}
			if err := cc.Store.MarkVerified(res.DocumentID, status, now); err != nil {
				cc.Logger.Warn("failed to record verification", "document", res.DocumentTitle, "error", err)
			}
		}
		out.Online = results
		out.Accessible = verify.Accessible(results)
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		if out.Issues == nil {
			out.Issues = []verify.Issue{}
		}
		return r.JSON(out)
	case output.ModeMarkdown:
		renderVerifyMarkdown(r, out)
	default:
		renderVerifyText(r, out)
	}
	return nil
}

// issuesByCheck groups issues by check name, keeping first-seen order.
func issuesByCheck(issues []verify.Issue) ([]string, map[string][]verify.Issue) {
	var order []string
	groups := make(map[string][]verify.Issue)
	for _, is := range issues {
		if _, ok := groups[is.Check]; !ok {
			order = append(order, is.Check)
		}
		groups[is.Check] = append(groups[is.Check], is)
	}
	return order, groups
}

func checkTitle(check string) string {
	return cases.Title(language.Norwegian).String(strings.ReplaceAll(check, "_", " "))
}

func renderVerifyText(r *output.Renderer, out *VerifyOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Dokumentverifisering"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Kvalitet"))
	t := newTable(r, "Dokument", "Bestått", "Score", "Status")
	for _, q := range out.Quality {
		t.AppendRow(table.Row{q.DocumentTitle, fmt.Sprintf("%d/%d", q.Passed, len(q.Checks)), fmt.Sprintf("%.1f", q.Score), q.Status})
	}
	renderTable(r, t)
	r.Println("")

	r.Println(styles.Header2.Render("Integritet"))
	if len(out.Issues) == 0 {
		r.Success("Ingen integritetsproblemer")
	}
	order, groups := issuesByCheck(out.Issues)
	for _, check := range order {
		r.Println(styles.Bold.Render("   " + checkTitle(check)))
		for i, is := range groups[check] {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(groups[check])-3)))
				break
			}
			r.Println("   " + styles.Warning.Render("!") + " " + is.DocumentTitle + ": " + is.Message)
		}
	}
	r.Println("")

	if out.Online != nil {
		r.Println(styles.Header2.Render("Tilgjengelighet"))
		for _, res := range out.Online {
			if res.Status.Accessible && res.Status.Error == "" {
				r.StatusLine(res.DocumentTitle, "success", "")
				continue
			}
			r.StatusLine(res.DocumentTitle, "error", res.Status.Error)
		}
		r.Printf("   %d/%d tilgjengelige\n", out.Accessible, len(out.Online))
		r.Println("")
	}

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.AverageScore < 90 {
		scoreStyle = styles.Warning
	}
	if out.AverageScore < 75 {
		scoreStyle = styles.Error
	}
	r.Printf("   Gjennomsnittlig kvalitet: %s\n", scoreStyle.Render(fmt.Sprintf("%.1f%%", out.AverageScore)))
	r.Println("")
}

func renderVerifyMarkdown(r *output.Renderer, out *VerifyOutput) {
	r.Println(output.FormatHeader(1, "Dokumentverifisering"))
	r.Println("")
	r.Println(output.FormatKeyValue("Gjennomsnittlig kvalitet", fmt.Sprintf("%.1f%%", out.AverageScore)))
	r.Println("")

	r.Println(output.FormatHeader(2, "Kvalitet"))
	r.Println("")
	t := newTable(r, "Dokument", "Bestått", "Score", "Status")
	for _, q := range out.Quality {
		t.AppendRow(table.Row{q.DocumentTitle, fmt.Sprintf("%d/%d", q.Passed, len(q.Checks)), fmt.Sprintf("%.1f", q.Score), q.Status})
	}
	renderTable(r, t)
	r.Println("")

	r.Println(output.FormatHeader(2, "Integritet"))
	r.Println("")
	if len(out.Issues) == 0 {
		r.Println("Ingen integritetsproblemer.")
	}
	order, groups := issuesByCheck(out.Issues)
	for _, check := range order {
		r.Println(output.FormatHeader(3, checkTitle(check)))
		r.Println("")
		for _, is := range groups[check] {
			r.Printf("- **%s**: %s\n", is.DocumentTitle, is.Message)
		}
		r.Println("")
	}

	if out.Online != nil {
		r.Println(output.FormatHeader(2, "Tilgjengelighet"))
		r.Println("")
		for _, res := range out.Online {
			status := "OK"
			if !res.Status.Accessible || res.Status.Error != "" {
				status = res.Status.Error
			}
			r.Printf("- %s: %s\n", res.DocumentTitle, status)
		}
		r.Println("")
		r.Printf("**Tilgjengelige:** %d/%d\n", out.Accessible, len(out.Online))
	}
}
