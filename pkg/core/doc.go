// Package core defines the shared language of planportal.
//
// This package contains:
//   - Project input (ProjectDescription) and its lenient decoding
//   - Assessment results (RiskAssessment, Stakeholder, Timeline, Insight, Report)
//   - Catalog entities (RegulationRecord, Document, Category)
//   - Store interfaces implemented by internal/state
//
// pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
