package verify

import (
	"context"

	"github.com/leapstack-labs/planportal/internal/webfetch"
	"github.com/leapstack-labs/planportal/pkg/core"
	"golang.org/x/sync/errgroup"
)

// URLChecker probes a single URL.
type URLChecker interface {
	CheckURL(ctx context.Context, rawURL string) webfetch.URLStatus
}

// URLResult pairs a document with its URL probe.
type URLResult struct {
	DocumentID    int64              `json:"document_id"`
	DocumentTitle string             `json:"document_title"`
	Status        webfetch.URLStatus `json:"status"`
}

// CheckURLs probes every document URL with at most concurrency requests in
// flight. Results keep document order.
func CheckURLs(ctx context.Context, checker URLChecker, docs []*core.Document, concurrency int) ([]URLResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]URLResult, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, d := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = URLResult{
				DocumentID:    d.ID,
				DocumentTitle: d.Title,
				Status:        checker.CheckURL(ctx, d.URL),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Accessible counts the results that returned HTTP 200.
func Accessible(results []URLResult) int {
	n := 0
	for _, r := range results {
		if r.Status.Accessible && r.Status.Error == "" {
			n++
		}
	}
	return n
}
