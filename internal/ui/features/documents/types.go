// Package documents provides the planning-document browser.
package documents

import (
	"github.com/leapstack-labs/planportal/internal/ui/features/common"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// SearchSignals are the datastar signals the filter form sends.
type SearchSignals struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

// ListData is the document list page.
type ListData struct {
	Signals    string
	Categories []*core.Category
	Results    ResultsData
}

// ResultsData is the patchable result area.
type ResultsData struct {
	Query    string
	Category string
	Groups   []common.CategoryGroup
	Count    int
}

// DetailData is a single document page.
type DetailData struct {
	Document *core.Document
	Category *core.Category
}
