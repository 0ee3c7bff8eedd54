// Package config provides configuration management for the planportal CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	StatePath       string       `koanf:"state_path"`
	OutputFormat    string       `koanf:"output"`
	Verbose         bool         `koanf:"verbose"`
	RegulationsFile string       `koanf:"regulations_file"`
	UI              UIConfig     `koanf:"ui"`
	Fetch           FetchConfig  `koanf:"fetch"`
	Events          EventsConfig `koanf:"events"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// FetchConfig configures the web fetcher used by fetch and verify --online.
type FetchConfig struct {
	UserAgent   string        `koanf:"user_agent"`
	MinDelay    time.Duration `koanf:"min_delay"`
	Timeout     time.Duration `koanf:"timeout"`
	Concurrency int           `koanf:"concurrency"`
}

// EventsConfig configures assessment event publishing.
type EventsConfig struct {
	Enabled bool     `koanf:"enabled"`
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

// Default configuration values.
const (
	DefaultStateFile   = ".planportal/planportal.db"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPort        = 8765
	DefaultMinDelay    = time.Second
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 4
	DefaultTopic       = "planportal.assessments"
	DefaultUserAgent   = "Oslo-Planning-Premium/1.0 (Planning Document Research; contact@oslo.kommune.no)"
)

// defaults returns the lowest-precedence configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"state_path":        DefaultStateFile,
		"output":            DefaultOutput,
		"verbose":           false,
		"regulations_file":  "",
		"ui.port":           DefaultPort,
		"ui.auto_open":      true,
		"ui.watch":          true,
		"ui.session_secret": "",
		"fetch.user_agent":  DefaultUserAgent,
		"fetch.min_delay":   DefaultMinDelay.String(),
		"fetch.timeout":     DefaultTimeout.String(),
		"fetch.concurrency": DefaultConcurrency,
		"events.enabled":    false,
		"events.brokers":    []string{},
		"events.topic":      DefaultTopic,
	}
}
