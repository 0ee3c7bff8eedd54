// Package catalog holds the regulation catalog the assessor checks projects
// against. The catalog is an immutable snapshot that is swapped atomically on
// reload, so readers never observe a partially loaded set.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/leapstack-labs/planportal/internal/assessor"
	"github.com/leapstack-labs/planportal/pkg/core"
	"gopkg.in/yaml.v3"
)

var (
	// ErrCatalogUnavailable is returned when no regulation snapshot can be loaded.
	ErrCatalogUnavailable = errors.New("regulation catalog unavailable")
	// ErrCatalogIncomplete is returned when a loaded set fails validation.
	ErrCatalogIncomplete = errors.New("regulation catalog incomplete")
)

// Source supplies the base regulation records.
type Source interface {
	ListRegulations() ([]core.RegulationRecord, error)
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithOverrideFile layers a YAML file of regulation records over the source.
// Records are matched by ID; unknown IDs are appended.
func WithOverrideFile(path string) Option {
	return func(c *Catalog) { c.overridePath = path }
}

// WithLogger sets the catalog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Catalog serves regulation snapshots.
type Catalog struct {
	source       Source
	overridePath string
	logger       *slog.Logger

	mu       sync.Mutex // serializes Reload
	snapshot atomic.Pointer[[]core.RegulationRecord]
}

// New creates a catalog. Call Reload before use.
func New(source Source, opts ...Option) *Catalog {
	c := &Catalog{
		source: source,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OverridePath returns the configured override file, if any.
func (c *Catalog) OverridePath() string {
	return c.overridePath
}

// Ready reports whether a valid snapshot is loaded.
func (c *Catalog) Ready() bool {
	return c.snapshot.Load() != nil
}

// Regulations returns a copy of the current snapshot.
func (c *Catalog) Regulations() ([]core.RegulationRecord, error) {
	snap := c.snapshot.Load()
	if snap == nil {
		return nil, fmt.Errorf("%w: not loaded", ErrCatalogUnavailable)
	}
	out := make([]core.RegulationRecord, len(*snap))
	copy(out, *snap)
	return out, nil
}

// ListRegulations lets a Catalog stand in wherever a store is expected.
func (c *Catalog) ListRegulations() ([]core.RegulationRecord, error) {
	return c.Regulations()
}

// Assess runs a full assessment against the current snapshot.
func (c *Catalog) Assess(p core.ProjectDescription) (*core.Report, error) {
	regs, err := c.Regulations()
	if err != nil {
		return nil, err
	}
	return assessor.Assess(p, regs), nil
}

// Reload loads the source and override file, validates the result and swaps
// it in. On failure the previous snapshot stays active.
func (c *Catalog) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	var regs []core.RegulationRecord
	if c.source != nil {
		base, err := c.source.ListRegulations()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		regs = base
	}

	if c.overridePath != "" {
		overrides, err := LoadFile(c.overridePath)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		regs = Merge(regs, overrides)
	}

	if err := Validate(regs); err != nil {
		return err
	}

	snap := make([]core.RegulationRecord, len(regs))
	copy(snap, regs)
	c.snapshot.Store(&snap)

	c.logger.Info("regulation catalog loaded", "regulations", len(snap), "override", c.overridePath)
	return nil
}

type overrideFile struct {
	Regulations []core.RegulationRecord `yaml:"regulations"`
}

// LoadFile reads regulation records from a YAML file.
func LoadFile(path string) ([]core.RegulationRecord, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read regulations file: %w", err)
	}
	var f overrideFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse regulations file %s: %w", path, err)
	}
	return f.Regulations, nil
}

// Merge overlays records by ID. Non-zero override fields replace base fields;
// records with new IDs are appended in override order.
func Merge(base, overrides []core.RegulationRecord) []core.RegulationRecord {
	out := make([]core.RegulationRecord, len(base))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, r := range out {
		index[r.ID] = i
	}

	for _, o := range overrides {
		i, ok := index[o.ID]
		if !ok {
			index[o.ID] = len(out)
			out = append(out, o)
			continue
		}
		out[i] = overlay(out[i], o)
	}
	return out
}

func overlay(r, o core.RegulationRecord) core.RegulationRecord {
	if o.Name != "" {
		r.Name = o.Name
	}
	if o.Type != "" {
		r.Type = o.Type
	}
	if o.Description != "" {
		r.Description = o.Description
	}
	if o.ComplianceStatus != "" {
		r.ComplianceStatus = o.ComplianceStatus
	}
	if o.RequiredDocuments != "" {
		r.RequiredDocuments = o.RequiredDocuments
	}
	if o.DeadlineDays != 0 {
		r.DeadlineDays = o.DeadlineDays
	}
	if o.PriorityLevel != 0 {
		r.PriorityLevel = o.PriorityLevel
	}
	return r
}

// Validate checks that a regulation set is usable.
func Validate(regs []core.RegulationRecord) error {
	if len(regs) == 0 {
		return fmt.Errorf("%w: no regulations", ErrCatalogIncomplete)
	}
	seen := make(map[string]bool, len(regs))
	for i, r := range regs {
		switch {
		case r.ID == "":
			return fmt.Errorf("%w: regulation %d has no id", ErrCatalogIncomplete, i)
		case r.Name == "":
			return fmt.Errorf("%w: regulation %s has no name", ErrCatalogIncomplete, r.ID)
		case !r.ComplianceStatus.IsValid():
			return fmt.Errorf("%w: regulation %s has invalid compliance status %q",
				ErrCatalogIncomplete, r.ID, r.ComplianceStatus)
		case seen[r.ID]:
			return fmt.Errorf("%w: duplicate regulation id %s", ErrCatalogIncomplete, r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}
