package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/leapstack-labs/planportal/internal/testutil"
	"github.com/leapstack-labs/planportal/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu   sync.Mutex
	regs []core.RegulationRecord
	err  error
}

func (f *fakeSource) ListRegulations() ([]core.RegulationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs, f.err
}

func (f *fakeSource) set(regs []core.RegulationRecord, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs, f.err = regs, err
}

func baseRegulations() []core.RegulationRecord {
	return []core.RegulationRecord{
		{ID: core.RegulationPBL, Name: "Plan- og bygningsloven (PBL)", ComplianceStatus: core.ComplianceMandatory, DeadlineDays: 180, PriorityLevel: 1},
		{ID: core.RegulationNaturmangfoldloven, Name: "Naturmangfoldloven", ComplianceStatus: core.ComplianceConditional, DeadlineDays: 120, PriorityLevel: 2},
		{ID: core.RegulationForurensningsloven, Name: "Forurensningsloven", ComplianceStatus: core.ComplianceConditional, DeadlineDays: 90, PriorityLevel: 2},
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regulations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalog_NotLoaded(t *testing.T) {
	c := New(&fakeSource{regs: baseRegulations()})

	assert.False(t, c.Ready())
	_, err := c.Regulations()
	assert.ErrorIs(t, err, ErrCatalogUnavailable)

	_, err = c.Assess(core.ProjectDescription{})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestCatalog_Reload(t *testing.T) {
	c := New(&fakeSource{regs: baseRegulations()}, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, c.Reload(context.Background()))
	assert.True(t, c.Ready())

	regs, err := c.Regulations()
	require.NoError(t, err)
	require.Len(t, regs, 3)
	assert.Equal(t, core.RegulationPBL, regs[0].ID)

	// Callers get a copy.
	regs[0].Name = "changed"
	again, err := c.Regulations()
	require.NoError(t, err)
	assert.Equal(t, "Plan- og bygningsloven (PBL)", again[0].Name)
}

func TestCatalog_ReloadFailureKeepsSnapshot(t *testing.T) {
	src := &fakeSource{regs: baseRegulations()}
	c := New(src)
	require.NoError(t, c.Reload(context.Background()))

	tests := []struct {
		name    string
		regs    []core.RegulationRecord
		err     error
		wantErr error
	}{
		{name: "source error", err: errors.New("disk gone"), wantErr: ErrCatalogUnavailable},
		{name: "empty set", regs: nil, wantErr: ErrCatalogIncomplete},
		{
			name:    "missing name",
			regs:    []core.RegulationRecord{{ID: "x", ComplianceStatus: core.ComplianceMandatory}},
			wantErr: ErrCatalogIncomplete,
		},
		{
			name:    "bad status",
			regs:    []core.RegulationRecord{{ID: "x", Name: "X", ComplianceStatus: "sometimes"}},
			wantErr: ErrCatalogIncomplete,
		},
		{
			name: "duplicate id",
			regs: []core.RegulationRecord{
				{ID: "x", Name: "X", ComplianceStatus: core.ComplianceMandatory},
				{ID: "x", Name: "Y", ComplianceStatus: core.ComplianceMandatory},
			},
			wantErr: ErrCatalogIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src.set(tt.regs, tt.err)
			err := c.Reload(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)

			regs, err := c.Regulations()
			require.NoError(t, err)
			assert.Len(t, regs, 3)
		})
	}
}

func TestCatalog_ReloadCanceled(t *testing.T) {
	c := New(&fakeSource{regs: baseRegulations()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Reload(ctx), context.Canceled)
	assert.False(t, c.Ready())
}

func TestCatalog_OverrideFile(t *testing.T) {
	path := writeFile(t, `
regulations:
- id: forurensningsloven
  deadline_days: 60
- id: kulturminneloven
  name: Kulturminneloven
  compliance_status: conditional
  deadline_days: 90
  priority_level: 2
`)
	c := New(&fakeSource{regs: baseRegulations()}, WithOverrideFile(path))
	assert.Equal(t, path, c.OverridePath())
	require.NoError(t, c.Reload(context.Background()))

	regs, err := c.Regulations()
	require.NoError(t, err)
	require.Len(t, regs, 4)
	assert.Equal(t, 60, regs[2].DeadlineDays)
	assert.Equal(t, "Forurensningsloven", regs[2].Name)
	assert.Equal(t, "kulturminneloven", regs[3].ID)
}

func TestCatalog_OverrideOnly(t *testing.T) {
	path := writeFile(t, `
regulations:
- id: pbl
  name: Plan- og bygningsloven
  compliance_status: mandatory
`)
	c := New(nil, WithOverrideFile(path))
	require.NoError(t, c.Reload(context.Background()))

	regs, err := c.ListRegulations()
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestCatalog_BadOverrideFile(t *testing.T) {
	c := New(&fakeSource{regs: baseRegulations()}, WithOverrideFile(writeFile(t, "regulations: [")))
	err := c.Reload(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.False(t, c.Ready())

	c = New(&fakeSource{regs: baseRegulations()}, WithOverrideFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorIs(t, c.Reload(context.Background()), ErrCatalogUnavailable)
}

func TestCatalog_Assess(t *testing.T) {
	c := New(&fakeSource{regs: baseRegulations()})
	require.NoError(t, c.Reload(context.Background()))

	report, err := c.Assess(core.ProjectDescription{EnvironmentalImpact: true})
	require.NoError(t, err)

	var ids []string
	for _, r := range report.Regulations {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{core.RegulationPBL, core.RegulationNaturmangfoldloven, core.RegulationForurensningsloven}, ids)
}

func TestCatalog_ConcurrentReads(t *testing.T) {
	src := &fakeSource{regs: baseRegulations()}
	c := New(src)
	require.NoError(t, c.Reload(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Reload(context.Background())
		}()
		go func() {
			defer wg.Done()
			regs, err := c.Regulations()
			assert.NoError(t, err)
			assert.Len(t, regs, 3)
		}()
	}
	wg.Wait()
}

func TestMerge(t *testing.T) {
	base := baseRegulations()
	merged := Merge(base, []core.RegulationRecord{{ID: core.RegulationPBL, PriorityLevel: 3}})

	assert.Equal(t, 3, merged[0].PriorityLevel)
	assert.Equal(t, 1, base[0].PriorityLevel, "base must not be modified")
	assert.Equal(t, base[0].Name, merged[0].Name)
}
