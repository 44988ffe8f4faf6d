// Package config provides configuration types and defaults for flagreveal.
package config

import (
	"fmt"
	"net/url"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/npratt/flagreveal/internal/retrieval"
)

// Display modes.
const (
	// ModeAuto picks the TUI when stdout and stdin are terminals, plain otherwise.
	ModeAuto = "auto"
	// ModeTUI always runs the full-screen terminal UI.
	ModeTUI = "tui"
	// ModePlain streams characters to stdout without a UI.
	ModePlain = "plain"
)

// Config holds all configuration for flagreveal.
type Config struct {
	Fetch       FetchConfig       `yaml:"fetch" mapstructure:"fetch"`
	Reveal      RevealConfig      `yaml:"reveal" mapstructure:"reveal"`
	Display     DisplayConfig     `yaml:"display" mapstructure:"display"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// FetchConfig holds settings for the flag retrieval request.
type FetchConfig struct {
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"` // 0 = no client timeout
}

// RevealConfig holds settings for the character reveal sequence.
type RevealConfig struct {
	Interval       time.Duration `yaml:"interval" mapstructure:"interval"`                 // Delay between reveal steps
	ExitOnComplete bool          `yaml:"exit_on_complete" mapstructure:"exit_on_complete"` // Quit the TUI once fully revealed
}

// DisplayConfig selects how the reveal is presented.
type DisplayConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"` // "auto", "tui" or "plain"
}

// PathsConfig holds file paths for logs, the transition events file and
// the metrics textfile.
type PathsConfig struct {
	LogDir  string `yaml:"log_dir" mapstructure:"log_dir"` // Directory for the debug log
	Events  string `yaml:"events" mapstructure:"events"`   // JSON lines events file ("" = disabled)
	Metrics string `yaml:"metrics" mapstructure:"metrics"` // Prometheus textfile ("" = disabled)
}

// LogRotationConfig holds settings for the TUI debug log rotation.
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// Default returns a Config with the observed defaults: the original flag
// endpoint and a 500ms reveal step.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Endpoint: retrieval.DefaultEndpoint,
			Timeout:  30 * time.Second,
		},
		Reveal: RevealConfig{
			Interval: 500 * time.Millisecond,
		},
		Display: DisplayConfig{
			Mode: ModeAuto,
		},
		Paths: PathsConfig{
			LogDir:  ".flagreveal",
			Events:  "",
			Metrics: "",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Fetch.Endpoint == "" {
		return fmt.Errorf("fetch.endpoint must not be empty")
	}
	u, err := url.Parse(c.Fetch.Endpoint)
	if err != nil {
		return fmt.Errorf("fetch.endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("fetch.endpoint must be an http or https URL, got %q", c.Fetch.Endpoint)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative, got %v", c.Fetch.Timeout)
	}
	if c.Reveal.Interval <= 0 {
		return fmt.Errorf("reveal.interval must be positive, got %v", c.Reveal.Interval)
	}
	switch c.Display.Mode {
	case ModeAuto, ModeTUI, ModePlain:
	default:
		return fmt.Errorf("display.mode must be one of auto, tui, plain; got %q", c.Display.Mode)
	}
	return nil
}

// YAML renders the configuration in the config file format.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
