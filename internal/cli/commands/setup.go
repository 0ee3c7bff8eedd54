package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/planportal/internal/catalog"
	"github.com/leapstack-labs/planportal/internal/cli/config"
	"github.com/leapstack-labs/planportal/internal/cli/output"
	"github.com/leapstack-labs/planportal/internal/events"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/state"
	"github.com/leapstack-labs/planportal/internal/webfetch"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLiteStore
	Catalog  *catalog.Catalog
	Service  *portal.Service
	Renderer *output.Renderer
}

// NewCommandContext opens the state database, loads the regulation catalog
// and wires the assessment service.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutStore(cmd)

	store, err := openStore(cc.Cfg.StatePath, cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := seedIfEmpty(store); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cat := catalog.New(store,
		catalog.WithOverrideFile(cc.Cfg.RegulationsFile),
		catalog.WithLogger(cc.Logger),
	)
	if err := cat.Reload(commandCtx(cmd)); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	publisher, err := events.New(events.Config{
		Enabled: cc.Cfg.Events.Enabled,
		Brokers: cc.Cfg.Events.Brokers,
		Topic:   cc.Cfg.Events.Topic,
	}, cc.Logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cc.Store = store
	cc.Catalog = cat
	cc.Service = portal.New(portal.Config{
		Store:     store,
		Assessor:  cat,
		Publisher: publisher,
		Logger:    cc.Logger,
	})

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			cc.Logger.Warn("failed to close event publisher", "error", err)
		}
		_ = store.Close()
	}

	return cc, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a database.
// Useful for commands that don't need database access.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.OutputMode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewFetcher builds a web fetcher from the fetch configuration.
func (cc *CommandContext) NewFetcher() *webfetch.Fetcher {
	return webfetch.New(cc.fetchConfig())
}

// fetchConfig maps the fetch section onto the fetcher. A zero min_delay in
// config turns pacing off.
func (cc *CommandContext) fetchConfig() webfetch.Config {
	return webfetch.Config{
		UserAgent:     cc.Cfg.Fetch.UserAgent,
		MinDelay:      cc.Cfg.Fetch.MinDelay,
		DisablePacing: cc.Cfg.Fetch.MinDelay == 0,
		Timeout:       cc.Cfg.Fetch.Timeout,
		Logger:        cc.Logger,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration, or the defaults when no
// configuration was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openStore opens and migrates the state database.
func openStore(path string, logger *slog.Logger) (*state.SQLiteStore, error) {
	if path != ":memory:" {
		stateDir := filepath.Dir(path)
		if stateDir != "." && stateDir != "" {
			if err := os.MkdirAll(stateDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(path); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// seedIfEmpty loads the built-in catalog into a fresh database.
func seedIfEmpty(store *state.SQLiteStore) error {
	stats, err := store.DocumentStats()
	if err != nil {
		return err
	}
	if stats.Total > 0 {
		return nil
	}
	_, err = store.SeedCatalog()
	return err
}

// formatTime renders a timestamp the way every listing shows it.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
