// Package portal runs and persists project assessments for the CLI and the
// dashboard.
package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/planportal/internal/events"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// Assessor scores a project against the loaded regulation catalog.
type Assessor interface {
	Assess(p core.ProjectDescription) (*core.Report, error)
}

// Service ties the assessor to persistence and event publishing.
type Service struct {
	store     core.AssessmentStore
	assessor  Assessor
	publisher events.Publisher
	logger    *slog.Logger
}

// Config holds the collaborators of a Service.
type Config struct {
	Store     core.AssessmentStore
	Assessor  Assessor
	Publisher events.Publisher
	Logger    *slog.Logger
}

// New creates a Service. Publisher defaults to events.Noop.
func New(cfg Config) *Service {
	s := &Service{
		store:     cfg.Store,
		assessor:  cfg.Assessor,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
	}
	if s.publisher == nil {
		s.publisher = events.Noop{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Assess runs every assessment step for p.
func (s *Service) Assess(p core.ProjectDescription) (*core.Report, error) {
	if s.assessor == nil {
		return nil, errors.New("no assessor configured")
	}
	report, err := s.assessor.Assess(p)
	if err != nil {
		return nil, fmt.Errorf("failed to assess project: %w", err)
	}
	s.logger.Debug("project assessed",
		"project", p.ProjectName,
		"total_risk_score", report.Risk.TotalRiskScore,
		"risk_level", report.Risk.RiskLevel)
	return report, nil
}

// Save persists report and publishes an assessment.saved event.
// A publish failure is logged and does not fail the save.
func (s *Service) Save(ctx context.Context, report *core.Report) (*core.SavedAssessment, error) {
	if s.store == nil {
		return nil, errors.New("no assessment store configured")
	}
	if report == nil {
		return nil, errors.New("report is required")
	}

	saved, err := s.store.SaveAssessment(report)
	if err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.AssessmentSaved(saved)); err != nil {
		s.logger.Warn("failed to publish assessment event", "id", saved.ID, "error", err)
	}

	s.logger.Info("assessment saved", "id", saved.ID, "project", saved.ProjectName)
	return saved, nil
}

// AssessAndSave runs an assessment and persists the result.
func (s *Service) AssessAndSave(ctx context.Context, p core.ProjectDescription) (*core.Report, *core.SavedAssessment, error) {
	report, err := s.Assess(p)
	if err != nil {
		return nil, nil, err
	}
	saved, err := s.Save(ctx, report)
	if err != nil {
		return report, nil, err
	}
	return report, saved, nil
}

// Recent lists the most recent saved assessments.
func (s *Service) Recent(limit int) ([]*core.SavedAssessment, error) {
	if s.store == nil {
		return nil, nil
	}
	list, err := s.store.ListAssessments(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return list, nil
}

// Get loads a saved assessment by ID.
func (s *Service) Get(id string) (*core.SavedAssessment, error) {
	if s.store == nil {
		return nil, errors.New("no assessment store configured")
	}
	return s.store.GetAssessment(id)
}
