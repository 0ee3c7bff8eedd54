package state

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"embed"
	"encoding/hex"
	"fmt"

	"github.com/leapstack-labs/planportal/pkg/core"
	"gopkg.in/yaml.v3"
)

//go:embed seed/*.yaml
var seedFS embed.FS

// SeedData is the built-in catalog content.
type SeedData struct {
	Categories  []core.Category         `yaml:"categories"`
	Documents   []core.Document         `yaml:"documents"`
	Regulations []core.RegulationRecord `yaml:"regulations"`
}

// SeedResult reports how many rows a seed run inserted.
type SeedResult struct {
	Categories  int
	Documents   int
	Regulations int
}

// LoadSeedData parses the embedded seed files.
func LoadSeedData() (*SeedData, error) {
	data := &SeedData{}
	for _, name := range []string{"seed/categories.yaml", "seed/documents.yaml", "seed/regulations.yaml"} {
		raw, err := seedFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := yaml.Unmarshal(raw, data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}
	for i := range data.Documents {
		data.Documents[i].DocumentHash = DocumentHash(data.Documents[i].Title)
	}
	return data, nil
}

// DocumentHash returns the hex md5 of a document title.
func DocumentHash(title string) string {
	sum := md5.Sum([]byte(title)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// Seed inserts the built-in catalog. Existing rows are left untouched.
func (s *SQLiteStore) Seed() error {
	_, err := s.SeedCatalog()
	return err
}

// SeedCatalog inserts the built-in catalog and reports what was added.
func (s *SQLiteStore) SeedCatalog() (*SeedResult, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	data, err := LoadSeedData()
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result := &SeedResult{}

	for _, c := range data.Categories {
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO document_categories (category_name, icon, color, description, display_order)
			 VALUES (?, ?, ?, ?, ?)`,
			c.Name, c.Icon, c.Color, c.Description, c.DisplayOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
		result.Categories += rowsAffected(res)
	}

	for _, d := range data.Documents {
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO planning_documents
			 (title, category, subcategory, document_type, status, url, description,
			  responsible_department, date_published, priority, tags, document_hash)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.Title, d.Category, d.Subcategory, d.DocumentType, d.Status, d.URL, d.Description,
			d.ResponsibleDepartment, d.DatePublished, d.Priority, d.Tags, d.DocumentHash,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seed document %q: %w", d.Title, err)
		}
		result.Documents += rowsAffected(res)
	}

	for i, r := range data.Regulations {
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO regulations
			 (id, name, regulation_type, description, compliance_status, required_documents,
			  deadline_days, priority_level, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Type, r.Description, string(r.ComplianceStatus), r.RequiredDocuments,
			r.DeadlineDays, r.PriorityLevel, i+1,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seed regulation %s: %w", r.ID, err)
		}
		result.Regulations += rowsAffected(res)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}

	s.logger.Info("catalog seeded",
		"categories", result.Categories,
		"documents", result.Documents,
		"regulations", result.Regulations,
	)
	return result, nil
}

func rowsAffected(res interface{ RowsAffected() (int64, error) }) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}
