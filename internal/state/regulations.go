package state

import (
	"fmt"

	"github.com/leapstack-labs/planportal/pkg/core"
)

// ListRegulations returns the regulation catalog in catalog order.
func (s *SQLiteStore) ListRegulations() ([]core.RegulationRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, name, regulation_type, description, compliance_status, required_documents,
		        deadline_days, priority_level
		 FROM regulations ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list regulations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.RegulationRecord
	for rows.Next() {
		var r core.RegulationRecord
		var status string
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Description, &status, &r.RequiredDocuments,
			&r.DeadlineDays, &r.PriorityLevel); err != nil {
			return nil, fmt.Errorf("failed to scan regulation: %w", err)
		}
		r.ComplianceStatus = core.ComplianceStatus(status)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate regulations: %w", err)
	}
	return out, nil
}

// SaveRegulation inserts or replaces a regulation, keeping its catalog position.
func (s *SQLiteStore) SaveRegulation(r core.RegulationRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	_, err := s.db.Exec(
		`INSERT INTO regulations
		 (id, name, regulation_type, description, compliance_status, required_documents,
		  deadline_days, priority_level, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, COALESCE((SELECT MAX(position) FROM regulations), 0) + 1)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   regulation_type = excluded.regulation_type,
		   description = excluded.description,
		   compliance_status = excluded.compliance_status,
		   required_documents = excluded.required_documents,
		   deadline_days = excluded.deadline_days,
		   priority_level = excluded.priority_level`,
		r.ID, r.Name, r.Type, r.Description, string(r.ComplianceStatus), r.RequiredDocuments,
		r.DeadlineDays, r.PriorityLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to save regulation %s: %w", r.ID, err)
	}
	return nil
}
