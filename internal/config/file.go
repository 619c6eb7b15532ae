package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the configuration loaded from .terminus/config.toml
// or a YAML file passed with --config. Durations are strings such as "20ms".
type FileConfig struct {
	// Prompt is the glyph shown before the input field.
	Prompt string `toml:"prompt" yaml:"prompt"`

	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" yaml:"theme"`

	// MaxLines bounds the output log.
	MaxLines int `toml:"max_lines" yaml:"max_lines"`

	// LogFile receives diagnostics.
	LogFile string `toml:"log_file" yaml:"log_file"`

	Animation AnimationConfig `toml:"animation" yaml:"animation"`
	Ticker    TickerConfig    `toml:"ticker" yaml:"ticker"`
}

// AnimationConfig represents the [animation] section.
type AnimationConfig struct {
	BaseDelay string `toml:"base_delay" yaml:"base_delay"`
	EchoDelay string `toml:"echo_delay" yaml:"echo_delay"`
}

// TickerConfig represents the [ticker] section.
type TickerConfig struct {
	Interval string `toml:"interval" yaml:"interval"`
}

// DefaultConfigDir is the directory, relative to the working directory,
// holding the default config file.
const DefaultConfigDir = ".terminus"

// LoadFileConfig reads configuration from .terminus/config.toml in the working directory.
// Returns nil if the file doesn't exist (not an error).
func LoadFileConfig(workingDir string) (*FileConfig, error) {
	configPath := filepath.Join(workingDir, DefaultConfigDir, "config.toml")
	return LoadFileConfigFrom(configPath)
}

// LoadFileConfigFrom reads configuration from a specific file path. Files
// ending in .yaml or .yml are parsed as YAML, anything else as TOML.
// Returns nil if the file doesn't exist (not an error).
func LoadFileConfigFrom(configPath string) (*FileConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	return &cfg, nil
}

// Apply copies every value set in the file onto cfg.
func (fc *FileConfig) Apply(cfg *Config) error {
	if fc == nil {
		return nil
	}
	if fc.Prompt != "" {
		cfg.Prompt = fc.Prompt
	}
	if fc.Theme != "" {
		cfg.Theme = fc.Theme
	}
	if fc.MaxLines != 0 {
		cfg.MaxLines = fc.MaxLines
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}

	durations := []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"animation.base_delay", fc.Animation.BaseDelay, &cfg.BaseDelay},
		{"animation.echo_delay", fc.Animation.EchoDelay, &cfg.EchoDelay},
		{"ticker.interval", fc.Ticker.Interval, &cfg.TickerInterval},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}
	return nil
}
