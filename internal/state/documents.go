package state

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/leapstack-labs/planportal/pkg/core"
)

const documentColumns = `id, title, category, subcategory, document_type, status, url, description,
	responsible_department, date_published, priority, tags, verification_status, last_verified, document_hash`

// ListDocuments returns every document, highest priority first.
func (s *SQLiteStore) ListDocuments() ([]*core.Document, error) {
	return s.queryDocuments(
		`SELECT ` + documentColumns + ` FROM planning_documents ORDER BY priority DESC, title`,
	)
}

// ListDocumentsByCategory returns the documents in one category.
func (s *SQLiteStore) ListDocumentsByCategory(category string) ([]*core.Document, error) {
	return s.queryDocuments(
		`SELECT `+documentColumns+` FROM planning_documents WHERE category = ? ORDER BY priority DESC, title`,
		category,
	)
}

// SearchDocuments matches term against title, description and tags.
// An empty term returns every document.
func (s *SQLiteStore) SearchDocuments(term string) ([]*core.Document, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListDocuments()
	}
	pattern := "%" + escapeLike(term) + "%"
	return s.queryDocuments(
		`SELECT `+documentColumns+` FROM planning_documents
		 WHERE title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'
		 ORDER BY priority DESC, title`,
		pattern, pattern, pattern,
	)
}

// GetDocument retrieves a document by ID.
func (s *SQLiteStore) GetDocument(id int64) (*core.Document, error) {
	docs, err := s.queryDocuments(
		`SELECT `+documentColumns+` FROM planning_documents WHERE id = ?`, id,
	)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	return docs[0], nil
}

// UpsertDocument inserts a document unless one with the same title exists.
// It returns true when a row was inserted.
func (s *SQLiteStore) UpsertDocument(d *core.Document) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database not opened")
	}
	if d.DocumentHash == "" {
		d.DocumentHash = DocumentHash(d.Title)
	}
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO planning_documents
		 (title, category, subcategory, document_type, status, url, description,
		  responsible_department, date_published, priority, tags, document_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Title, d.Category, d.Subcategory, d.DocumentType, d.Status, d.URL, d.Description,
		d.ResponsibleDepartment, d.DatePublished, d.Priority, d.Tags, d.DocumentHash,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert document: %w", err)
	}
	return rowsAffected(res) > 0, nil
}

// MarkVerified records the outcome of a verification run for a document.
func (s *SQLiteStore) MarkVerified(id int64, status string, at time.Time) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	res, err := s.db.Exec(
		`UPDATE planning_documents SET verification_status = ?, last_verified = ? WHERE id = ?`,
		status, at.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark document verified: %w", err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListCategories returns the categories in display order.
func (s *SQLiteStore) ListCategories() ([]*core.Category, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, category_name, icon, color, description, display_order
		 FROM document_categories ORDER BY display_order, category_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*core.Category
	for rows.Next() {
		c := &core.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.Description, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DocumentStats computes the catalog KPIs shown on the dashboard.
func (s *SQLiteStore) DocumentStats() (*core.DocumentStats, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	stats := &core.DocumentStats{}
	err := s.db.QueryRow(
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority >= 3 THEN 1 ELSE 0 END), 0),
			COUNT(DISTINCT category)
		 FROM planning_documents`,
		core.StatusAdopted,
	).Scan(&stats.Total, &stats.Adopted, &stats.HighPriority, &stats.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to compute document stats: %w", err)
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Adopted) / float64(stats.Total) * 100))
	}

	rows, err := s.db.Query(
		`SELECT d.category, COUNT(*)
		 FROM planning_documents d
		 LEFT JOIN document_categories c ON c.category_name = d.category
		 GROUP BY d.category
		 ORDER BY COALESCE(MIN(c.display_order), 999), d.category`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents by category: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var cc core.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.ByCategory = append(stats.ByCategory, cc)
	}
	return stats, rows.Err()
}

func (s *SQLiteStore) queryDocuments(query string, args ...any) ([]*core.Document, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*core.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return out, nil
}

func scanDocument(rows *sql.Rows) (*core.Document, error) {
	d := &core.Document{}
	var lastVerified sql.NullTime
	err := rows.Scan(
		&d.ID, &d.Title, &d.Category, &d.Subcategory, &d.DocumentType, &d.Status, &d.URL,
		&d.Description, &d.ResponsibleDepartment, &d.DatePublished, &d.Priority, &d.Tags,
		&d.VerificationStatus, &lastVerified, &d.DocumentHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	if lastVerified.Valid {
		t := lastVerified.Time
		d.LastVerified = &t
	}
	return d, nil
}

// escapeLike escapes LIKE wildcards so the term is matched literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
