package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/leapstack-labs/planportal/internal/webfetch"
	"github.com/spf13/cobra"
)

// FetchOptions holds options for the fetch command.
type FetchOptions struct {
	Full      bool
	Check     bool
	MaxLength int
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	opts := &FetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a planning page and summarize it",
		Long: `Fetch a web page politely: robots.txt is honoured, requests are paced
by fetch.min_delay and identify themselves with fetch.user_agent.

Prints the page title, meta description and a markdown summary of the main
content. With --check only reachability is reported.`,
		Example: `  planportal fetch https://www.oslo.kommune.no/plan-bygg-og-eiendom/
  planportal fetch https://www.oslo.kommune.no/ --full
  planportal fetch https://www.oslo.kommune.no/ --check -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Full, "full", false, "Print the full markdown body")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Only check that the URL is reachable")
	cmd.Flags().IntVar(&opts.MaxLength, "max-length", 800, "Summary length in characters")

	return cmd
}

func runFetch(cmd *cobra.Command, rawURL string, opts *FetchOptions) error {
	cc := NewCommandContextWithoutStore(cmd)
	fetcher := cc.NewFetcher()
	r := cc.Renderer
	ctx := commandCtx(cmd)

	if opts.Check {
		status := fetcher.CheckURL(ctx, rawURL)
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(status)
		}
		detail := status.Error
		if status.StatusCode != 0 && detail == "" {
			detail = "HTTP " + strconv.Itoa(status.StatusCode)
		}
		if status.Accessible && status.Error == "" {
			r.StatusLine(rawURL, "success", detail)
		} else {
			r.StatusLine(rawURL, "error", detail)
		}
		return nil
	}

	page, err := fetcher.Fetch(ctx, rawURL)
	if errors.Is(err, webfetch.ErrRobotsDisallowed) {
		return fmt.Errorf("%s is disallowed by robots.txt for %s", rawURL, fetcher.UserAgent())
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(page)
	}

	body := page.Summary(opts.MaxLength)
	if opts.Full {
		body = page.Markdown
	}

	title := page.Title
	if title == "" {
		title = rawURL
	}
	r.Header(1, title)
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatKeyValue("URL", page.URL))
		r.Println("")
		if page.Description != "" {
			r.Println("> " + page.Description)
			r.Println("")
		}
	} else {
		r.Muted(page.URL)
		if page.Description != "" {
			r.Println(r.Styles().Info.Render(page.Description))
		}
		r.Println("")
	}
	r.Println(body)
	return nil
}
