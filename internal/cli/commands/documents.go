package commands

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/leapstack-labs/planportal/internal/state"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewDocumentsCommand creates the documents command.
func NewDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Browse Oslo planning documents",
		Long: `Browse the catalog of Oslo municipal planning documents.

Documents are listed by priority, then title in Norwegian alphabetical order.`,
		Example: `  planportal documents list
  planportal documents list --category Transport
  planportal documents search klima
  planportal documents categories
  planportal documents show 4`,
	}

	cmd.AddCommand(newDocumentsListCommand())
	cmd.AddCommand(newDocumentsSearchCommand())
	cmd.AddCommand(newDocumentsCategoriesCommand())
	cmd.AddCommand(newDocumentsShowCommand())

	return cmd
}

func newDocumentsListCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List planning documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var docs []*core.Document
			if category != "" {
				docs, err = cc.Store.ListDocumentsByCategory(category)
			} else {
				docs, err = cc.Store.ListDocuments()
			}
			if err != nil {
				return err
			}

			title := "Plandokumenter"
			if category != "" {
				title += ": " + category
			}
			return renderDocuments(cc.Renderer, title, docs)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only documents in this category")
	return cmd
}

func newDocumentsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search documents by title, description and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			docs, err := cc.Store.SearchDocuments(args[0])
			if err != nil {
				return err
			}
			return renderDocuments(cc.Renderer, fmt.Sprintf("Søk: %q", args[0]), docs)
		},
	}
}

func newDocumentsCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List document categories with counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			categories, err := cc.Store.ListCategories()
			if err != nil {
				return err
			}
			stats, err := cc.Store.DocumentStats()
			if err != nil {
				return err
			}
			counts := make(map[string]int, len(stats.ByCategory))
			for _, c := range stats.ByCategory {
				counts[c.Category] = c.Count
			}

			r := cc.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(categoriesOutput{Categories: categories, Stats: stats})
			}

			r.Header(1, "Kategorier")
			t := newTable(r, "", "Kategori", "Dokumenter", "Beskrivelse")
			for _, c := range categories {
				t.AppendRow(table.Row{c.Icon, c.Name, counts[c.Name], c.Description})
			}
			renderTable(r, t)
			r.Println("")
			r.Printf("%d dokumenter, %d vedtatt (%d%%), %d høy prioritet\n",
				stats.Total, stats.Adopted, stats.CompletionRate, stats.HighPriority)
			return nil
		},
	}
}

func newDocumentsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid document id %q", args[0])
			}

			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := cc.Store.GetDocument(id)
			if errors.Is(err, state.ErrNotFound) {
				return fmt.Errorf("no document with id %d", id)
			}
			if err != nil {
				return err
			}

			r := cc.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(doc)
			}

			r.Header(1, doc.Title)
			if r.EffectiveMode() == output.ModeMarkdown {
				for _, kv := range documentFields(doc) {
					r.Println("- " + output.FormatKeyValue(kv[0], kv[1]))
				}
			} else {
				styles := r.Styles()
				for _, kv := range documentFields(doc) {
					r.Printf("   %s %s\n", styles.Bold.Render(kv[0]+":"), kv[1])
				}
			}
			r.Println("")
			r.Println(doc.Description)
			return nil
		},
	}
}

type categoriesOutput struct {
	Categories []*core.Category    `json:"categories"`
	Stats      *core.DocumentStats `json:"stats"`
}

func documentFields(d *core.Document) [][2]string {
	verified := "-"
	if d.LastVerified != nil {
		verified = formatTime(*d.LastVerified)
	}
	return [][2]string{
		{"Kategori", d.Category + " / " + d.Subcategory},
		{"Type", d.DocumentType},
		{"Status", d.Status},
		{"Ansvarlig", d.ResponsibleDepartment},
		{"Publisert", d.DatePublished},
		{"Prioritet", strconv.Itoa(d.Priority)},
		{"Stikkord", d.Tags},
		{"URL", d.URL},
		{"Verifisert", d.VerificationStatus + " " + verified},
	}
}

// sortDocuments orders by priority, highest first, then by title in Norwegian
// collation order so æ, ø and å sort after z.
func sortDocuments(docs []*core.Document) {
	c := collate.New(language.Norwegian, collate.IgnoreCase)
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Priority != docs[j].Priority {
			return docs[i].Priority > docs[j].Priority
		}
		return c.CompareString(docs[i].Title, docs[j].Title) < 0
	})
}

func renderDocuments(r *output.Renderer, title string, docs []*core.Document) error {
	sortDocuments(docs)

	if r.EffectiveMode() == output.ModeJSON {
		if docs == nil {
			docs = []*core.Document{}
		}
		return r.JSON(docs)
	}

	r.Header(1, title)
	if len(docs) == 0 {
		r.Muted("Ingen dokumenter funnet")
		return nil
	}

	t := newTable(r, "ID", "Tittel", "Kategori", "Status", "Prioritet", "Publisert")
	for _, d := range docs {
		t.AppendRow(table.Row{d.ID, d.Title, d.Category, d.Status, d.Priority, d.DatePublished})
	}
	renderTable(r, t)
	r.Println("")
	r.Muted(fmt.Sprintf("%d dokumenter", len(docs)))
	return nil
}
