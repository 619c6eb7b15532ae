// Package config provides configuration management for terminus.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the settings of a terminus run.
type Config struct {
	// Prompt is the glyph shown before the input field (default: "$ ").
	Prompt string

	// BaseDelay is the typewriter stagger for command output (default: 20ms).
	BaseDelay time.Duration

	// EchoDelay is the typewriter stagger for the echoed command (default: 10ms).
	EchoDelay time.Duration

	// TickerInterval is how often scramblybugs prints a number (default: 100ms).
	TickerInterval time.Duration

	// MaxLines bounds the output log; older lines are dropped (default: 10000).
	MaxLines int

	// Theme is the colour theme for the TUI: "auto", "dark", or "light".
	// "auto" detects the terminal background colour automatically.
	Theme string

	// Minimal forces line mode instead of the full screen TUI.
	Minimal bool

	// NoAnimation prints every line instantly.
	NoAnimation bool

	// LogFile receives diagnostics. Empty discards them in TUI mode and
	// sends them to stderr in line mode.
	LogFile string

	// Debug enables debug level diagnostics.
	Debug bool
}

// Theme names accepted by Validate.
var Themes = []string{"auto", "dark", "light"}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Prompt:         "$ ",
		BaseDelay:      20 * time.Millisecond,
		EchoDelay:      10 * time.Millisecond,
		TickerInterval: 100 * time.Millisecond,
		MaxLines:       10000,
		Theme:          "auto",
	}
}

// Validate checks that the configuration is valid.
// Returns an error if validation fails.
func (c *Config) Validate() error {
	if c.BaseDelay < 0 {
		return errors.New("base delay cannot be negative")
	}
	if c.EchoDelay < 0 {
		return errors.New("echo delay cannot be negative")
	}
	if c.TickerInterval <= 0 {
		return errors.New("ticker interval must be positive")
	}
	if c.MaxLines <= 0 {
		return errors.New("max lines must be positive")
	}
	if !validTheme(c.Theme) {
		return fmt.Errorf("invalid theme %q, valid options: auto, dark, light", c.Theme)
	}
	return nil
}

func validTheme(s string) bool {
	for _, t := range Themes {
		if s == t {
			return true
		}
	}
	return false
}
