package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/leapstack-labs/planportal/internal/assessor"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// SaveAssessment persists a report together with its stakeholders and
// per-category risk rows.
func (s *SQLiteStore) SaveAssessment(report *core.Report) (*core.SavedAssessment, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if report == nil {
		return nil, fmt.Errorf("report is required")
	}

	projectJSON, err := json.Marshal(report.Project)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	recsJSON, err := json.Marshal(report.Risk.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommendations: %w", err)
	}

	saved := &core.SavedAssessment{
		ID:           generateID(),
		ProjectName:  report.Project.ProjectName,
		Location:     report.Project.Location,
		ProjectType:  report.Project.ProjectType,
		Status:       core.AssessmentStatusAnalyzed,
		Risk:         report.Risk,
		Project:      report.Project,
		Stakeholders: report.Stakeholders,
		CreatedAt:    time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	r := report.Risk
	_, err = tx.Exec(
		`INSERT INTO assessments
		 (id, project_name, location, project_type, status, environmental_risk, traffic_risk,
		  neighbor_risk, regulatory_risk, technical_risk, total_risk_score, risk_level,
		  project_json, recommendations, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.ProjectName, saved.Location, saved.ProjectType, saved.Status,
		r.EnvironmentalRisk, r.TrafficRisk, r.NeighborRisk, r.RegulatoryRisk, r.TechnicalRisk,
		r.TotalRiskScore, string(r.RiskLevel), string(projectJSON), string(recsJSON), saved.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	for i, sh := range report.Stakeholders {
		_, err = tx.Exec(
			`INSERT INTO assessment_stakeholders
			 (assessment_id, position, name, stakeholder_type, influence, interest, engagement_strategy)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			saved.ID, i, sh.Name, sh.Type, sh.Influence, sh.Interest, sh.EngagementStrategy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save stakeholder: %w", err)
		}
	}

	for _, c := range core.RiskCategories() {
		_, err = tx.Exec(
			`INSERT INTO assessment_risks (assessment_id, risk_category, score, weight) VALUES (?, ?, ?, ?)`,
			saved.ID, string(c), r.Score(c), assessor.Weight(c),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save risk row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit assessment: %w", err)
	}

	s.logger.Debug("assessment saved", "id", saved.ID, "risk_level", r.RiskLevel)
	return saved, nil
}

// GetAssessment retrieves a saved assessment with its stakeholders.
func (s *SQLiteStore) GetAssessment(id string) (*core.SavedAssessment, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRow(`SELECT `+assessmentColumns+` FROM assessments WHERE id = ?`, id)
	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT name, stakeholder_type, influence, interest, engagement_strategy
		 FROM assessment_stakeholders WHERE assessment_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load stakeholders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var sh core.Stakeholder
		if err := rows.Scan(&sh.Name, &sh.Type, &sh.Influence, &sh.Interest, &sh.EngagementStrategy); err != nil {
			return nil, fmt.Errorf("failed to scan stakeholder: %w", err)
		}
		a.Stakeholders = append(a.Stakeholders, sh)
	}
	return a, rows.Err()
}

// ListAssessments returns the most recent assessments first.
// A limit of zero or less returns all of them.
func (s *SQLiteStore) ListAssessments(limit int) ([]*core.SavedAssessment, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(
		`SELECT `+assessmentColumns+` FROM assessments ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*core.SavedAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const assessmentColumns = `id, project_name, location, project_type, status, environmental_risk,
	traffic_risk, neighbor_risk, regulatory_risk, technical_risk, total_risk_score, risk_level,
	project_json, recommendations, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*core.SavedAssessment, error) {
	a := &core.SavedAssessment{}
	var level, projectJSON, recsJSON string
	err := row.Scan(
		&a.ID, &a.ProjectName, &a.Location, &a.ProjectType, &a.Status,
		&a.Risk.EnvironmentalRisk, &a.Risk.TrafficRisk, &a.Risk.NeighborRisk,
		&a.Risk.RegulatoryRisk, &a.Risk.TechnicalRisk, &a.Risk.TotalRiskScore, &level,
		&projectJSON, &recsJSON, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}
	a.Risk.RiskLevel = core.RiskLevel(level)
	if err := json.Unmarshal([]byte(projectJSON), &a.Project); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	if err := json.Unmarshal([]byte(recsJSON), &a.Risk.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	return a, nil
}
