package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/leapstack-labs/planportal/internal/ui"
	"github.com/spf13/cobra"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the planning dashboard",
		Long: `Start a local web server with the planning dashboard.

The dashboard provides:
- Document KPIs and category overview
- Document browser with live search
- Project risk assessment with stakeholders, timeline and regulations
- Regulation catalog and document quality scores

With --watch, edits to the regulations override file reload the catalog
and refresh open pages.`,
		Example: `  # Start UI on default port
  planportal ui

  # Start on custom port
  planportal ui --port 3000

  # Start without auto-opening browser
  planportal ui --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the regulations file for changes")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	uiCfg := cc.Cfg.UI

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := uiCfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	secret := uiCfg.SessionSecret
	if secret == "" {
		secret, err = generateSessionSecret()
		if err != nil {
			return err
		}
		cc.Logger.Warn("no ui.session_secret configured, sessions will not survive a restart")
	}

	queryDB, err := openStateDBReadOnly(cc.Cfg.StatePath)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	defer func() { _ = queryDB.Close() }()

	server := ui.NewServer(ui.Config{
		Store:         cc.Store,
		Catalog:       cc.Catalog,
		Service:       cc.Service,
		QueryDB:       queryDB,
		Port:          port,
		Watch:         watch,
		SessionSecret: secret,
		Logger:        cc.Logger,
	})

	if autoOpen {
		go openBrowser(fmt.Sprintf("http://localhost:%d", port))
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Starting planportal on http://localhost:%d\n", port)
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.Serve(commandCtx(cmd))
}

// generateSessionSecret returns a random 32-byte key, hex encoded.
func generateSessionSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
