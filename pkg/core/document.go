package core

import "time"

// Document statuses used by the catalog.
const (
	StatusAdopted      = "Vedtatt"
	StatusInProgress   = "Under behandling"
	StatusRevision     = "Under revisjon"
	StatusConsultation = "Høring"
)

// Document is a published planning document in the catalog.
type Document struct {
	ID                    int64      `json:"id"`
	Title                 string     `json:"title" yaml:"title"`
	Category              string     `json:"category" yaml:"category"`
	Subcategory           string     `json:"subcategory" yaml:"subcategory"`
	DocumentType          string     `json:"document_type" yaml:"document_type"`
	Status                string     `json:"status" yaml:"status"`
	URL                   string     `json:"url" yaml:"url"`
	Description           string     `json:"description" yaml:"description"`
	ResponsibleDepartment string     `json:"responsible_department" yaml:"responsible_department"`
	DatePublished         string     `json:"date_published" yaml:"date_published"` // YYYY-MM-DD
	Priority              int        `json:"priority" yaml:"priority"`
	Tags                  string     `json:"tags" yaml:"tags"`
	VerificationStatus    string     `json:"verification_status"`
	LastVerified          *time.Time `json:"last_verified,omitempty"`
	DocumentHash          string     `json:"document_hash"`
}

// Category groups documents on the dashboard.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" yaml:"name"`
	Icon         string `json:"icon" yaml:"icon"`
	Color        string `json:"color" yaml:"color"`
	Description  string `json:"description" yaml:"description"`
	DisplayOrder int    `json:"display_order" yaml:"display_order"`
}

// CategoryCount is the number of documents in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DocumentStats holds the dashboard KPIs for the catalog.
type DocumentStats struct {
	Total          int             `json:"total"`
	Adopted        int             `json:"adopted"`
	CompletionRate int             `json:"completion_rate"` // percent, rounded
	HighPriority   int             `json:"high_priority"`
	Categories     int             `json:"categories"`
	ByCategory     []CategoryCount `json:"by_category"`
}
