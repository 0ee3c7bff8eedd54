package core

import (
	"database/sql"
	"time"
)

// RegulationStore is the read side of the regulation catalog.
type RegulationStore interface {
	ListRegulations() ([]RegulationRecord, error)
}

// DocumentStore provides access to the planning-document catalog.
type DocumentStore interface {
	ListDocuments() ([]*Document, error)
	ListDocumentsByCategory(category string) ([]*Document, error)
	SearchDocuments(term string) ([]*Document, error)
	GetDocument(id int64) (*Document, error)
	ListCategories() ([]*Category, error)
	DocumentStats() (*DocumentStats, error)
	MarkVerified(id int64, status string, at time.Time) error
}

// AssessmentStore persists assessment results.
type AssessmentStore interface {
	SaveAssessment(report *Report) (*SavedAssessment, error)
	GetAssessment(id string) (*SavedAssessment, error)
	ListAssessments(limit int) ([]*SavedAssessment, error)
}

// Store defines the interface for state management operations.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error
	Seed() error

	RegulationStore
	DocumentStore
	AssessmentStore
}

// QueryableStore is implemented by stores that expose the raw database.
type QueryableStore interface {
	DB() *sql.DB
}
