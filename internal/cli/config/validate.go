package config

import "fmt"

var validOutputs = map[string]bool{"": true, "auto": true, "text": true, "markdown": true, "json": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (expected auto|text|markdown|json)", c.OutputFormat)
	}
	if c.UI.Port < 1 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port %d is out of range", c.UI.Port)
	}
	if c.Fetch.MinDelay < 0 {
		return fmt.Errorf("fetch.min_delay must not be negative")
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("fetch.concurrency must be at least 1")
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("events.brokers is required when events are enabled")
	}
	return nil
}
