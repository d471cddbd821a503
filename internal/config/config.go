// Package config loads accneatctl settings from YAML with ACCNEAT_ environment
// overrides layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	ExperimentsRoot string          `yaml:"experiments_root"`
	Optimizer       OptimizerConfig `yaml:"optimizer"`
	Storage         StorageConfig   `yaml:"storage"`
	Log             LogConfig       `yaml:"log"`
}

// OptimizerConfig mirrors the accneat command line.
type OptimizerConfig struct {
	Binary     string `yaml:"binary"`
	Dir        string `yaml:"dir"`
	Count      int    `yaml:"count"`
	Seed       int    `yaml:"seed"`
	PopSize    int    `yaml:"pop_size"`
	MaxGens    int    `yaml:"max_gens"`
	Search     string `yaml:"search"`
	Experiment string `yaml:"experiment"`
	Force      bool   `yaml:"force"`
}

type StorageConfig struct {
	Kind       string `yaml:"kind"`
	SQLitePath string `yaml:"sqlite_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		ExperimentsRoot: "experiments",
		Optimizer: OptimizerConfig{
			Binary:     "accneat",
			Count:      1,
			Seed:       1,
			PopSize:    1000,
			MaxGens:    10000,
			Search:     "phased",
			Experiment: "xor",
		},
		Storage: StorageConfig{
			Kind:       "sqlite",
			SQLitePath: filepath.Join(".accneat", "champions.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

var (
	validSearch  = []string{"phased", "blended", "complexify"}
	validStores  = []string{"memory", "sqlite"}
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"auto", "console", "json"}
)

func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.ExperimentsRoot) == "":
		return fmt.Errorf("%w: experiments_root is empty", ErrInvalid)
	case c.Optimizer.Count < 1:
		return fmt.Errorf("%w: optimizer.count must be positive, got %d", ErrInvalid, c.Optimizer.Count)
	case c.Optimizer.PopSize < 1:
		return fmt.Errorf("%w: optimizer.pop_size must be positive, got %d", ErrInvalid, c.Optimizer.PopSize)
	case c.Optimizer.MaxGens < 1:
		return fmt.Errorf("%w: optimizer.max_gens must be positive, got %d", ErrInvalid, c.Optimizer.MaxGens)
	case c.Storage.Kind == "sqlite" && c.Storage.SQLitePath == "":
		return fmt.Errorf("%w: storage.sqlite_path is required for sqlite", ErrInvalid)
	}
	for _, check := range []struct {
		field, value string
		valid        []string
	}{
		{"optimizer.search", c.Optimizer.Search, validSearch},
		{"storage.kind", c.Storage.Kind, validStores},
		{"log.level", c.Log.Level, validLevels},
		{"log.format", c.Log.Format, validFormats},
	} {
		if !contains(check.valid, check.value) {
			return fmt.Errorf("%w: %s %q (valid: %v)", ErrInvalid, check.field, check.value, check.valid)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
