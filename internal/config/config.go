// Package config handles loading and parsing of completers configuration
// files. Built-in defaults always load first; a user file merged on top may
// override any subset of them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/saf/completers/internal/cerrors"
	"github.com/saf/completers/internal/engine"
	"github.com/saf/completers/internal/scoring"
)

// SupportedConfigNames contains supported configuration file names (in order
// of preference) inside the completers config directory.
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// defaultConfig is the built-in configuration every load starts from.
var defaultConfig = []byte(`
page_size: 10
poll_interval_ms: 10
word_boundaries: " \t"
completers:
  - fs
  - git
scoring:
  letter_match: 1
  word_start_bonus: 2
  subsequent_bonus: 3
fs:
  depth_limit: 4
`)

// KnownCompleters are the completion sources the completers key may enable.
var KnownCompleters = []string{"fs", "git", "num"}

// ScoringConfig carries the fuzzy scorer weights.
type ScoringConfig struct {
	LetterMatch     uint32 `koanf:"letter_match"`
	WordStartBonus  uint32 `koanf:"word_start_bonus"`
	SubsequentBonus uint32 `koanf:"subsequent_bonus"`
}

// FsConfig carries directory walker settings.
type FsConfig struct {
	DepthLimit int `koanf:"depth_limit"`
}

// Config represents a completers configuration.
type Config struct {
	PageSize       int           `koanf:"page_size"`
	PollIntervalMs int           `koanf:"poll_interval_ms"`
	WordBoundaries string        `koanf:"word_boundaries"`
	Completers     []string      `koanf:"completers"`
	Scoring        ScoringConfig `koanf:"scoring"`
	Fs             FsConfig      `koanf:"fs"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// The embedded defaults always parse.
		panic(err)
	}
	return cfg
}

// Locate returns the user config file under
// $XDG_CONFIG_HOME/completers (falling back to ~/.config), or "" when none
// exists.
func Locate() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	for _, name := range SupportedConfigNames {
		path := filepath.Join(configHome, "completers", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the built-in defaults and, when path is non-empty, merges the
// user file on top.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), yaml.Parser()); err != nil {
		return nil, cerrors.NewConfigurationError("", "failed to load default config", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, cerrors.NewConfigurationError(path, "failed to load config", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, cerrors.NewConfigurationError(path, "failed to parse config", err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parserFor picks the koanf parser matching the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, cerrors.NewConfigurationError(path, fmt.Sprintf("unsupported config format: %s", filepath.Ext(path)), nil)
	}
}

// check enforces the value constraints the schema also expresses, for
// configs that arrive without passing through schema validation.
func (c *Config) check() error {
	if c.PageSize < 1 {
		return cerrors.NewValidationError("page_size", "page_size must be at least 1", nil)
	}
	if c.PollIntervalMs < 1 {
		return cerrors.NewValidationError("poll_interval_ms", "poll_interval_ms must be at least 1", nil)
	}
	if c.WordBoundaries == "" {
		return cerrors.NewValidationError("word_boundaries", "word_boundaries must not be empty", nil)
	}
	if c.Fs.DepthLimit < 0 {
		return cerrors.NewValidationError("fs.depth_limit", "fs.depth_limit must not be negative", nil)
	}
	if len(c.Completers) == 0 {
		return cerrors.NewValidationError("completers", "at least one completer must be enabled", nil)
	}
	for _, name := range c.Completers {
		if !knownCompleter(name) {
			return cerrors.NewValidationError("completers", fmt.Sprintf("unknown completer: %s", name), nil)
		}
	}
	return nil
}

func knownCompleter(name string) bool {
	for _, known := range KnownCompleters {
		if name == known {
			return true
		}
	}
	return false
}

// PollInterval returns the fetch poll cadence of the interaction loop.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// EngineParams converts the configuration into engine parameters.
func (c *Config) EngineParams() engine.Params {
	return engine.Params{
		PageSize: c.PageSize,
		Scoring: scoring.Settings{
			LetterMatch:     scoring.Value(c.Scoring.LetterMatch),
			WordStartBonus:  scoring.Value(c.Scoring.WordStartBonus),
			SubsequentBonus: scoring.Value(c.Scoring.SubsequentBonus),
		},
	}
}
