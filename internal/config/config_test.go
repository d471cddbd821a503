package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "experiments", cfg.ExperimentsRoot)
	assert.Equal(t, 1000, cfg.Optimizer.PopSize)
	assert.Equal(t, 10000, cfg.Optimizer.MaxGens)
	assert.Equal(t, "phased", cfg.Optimizer.Search)
	assert.Equal(t, "xor", cfg.Optimizer.Experiment)
	assert.False(t, cfg.Optimizer.Force)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Optimizer, cfg.Optimizer)
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accneat.yaml")
	body := "experiments_root: runs\noptimizer:\n  seed: 7\n  search: blended\nstorage:\n  kind: memory\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "runs", cfg.ExperimentsRoot)
	assert.Equal(t, 7, cfg.Optimizer.Seed)
	assert.Equal(t, "blended", cfg.Optimizer.Search)
	assert.Equal(t, 1000, cfg.Optimizer.PopSize, "unset keys keep defaults")
	assert.Equal(t, "memory", cfg.Storage.Kind)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accneat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("optimizer: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadAppliesProcessEnv(t *testing.T) {
	t.Setenv("ACCNEAT_ROOT", "from-env")
	t.Setenv("ACCNEAT_FORCE", "yes")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ExperimentsRoot)
	assert.True(t, cfg.Optimizer.Force)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ACCNEAT_POP_SIZE":   "250",
		"ACCNEAT_SEARCH":     "complexify",
		"ACCNEAT_EXPERIMENT": "maze",
		"ACCNEAT_STORE":      "memory",
		"ACCNEAT_LOG_LEVEL":  " debug ",
		"ACCNEAT_SEED":       "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, 250, cfg.Optimizer.PopSize)
	assert.Equal(t, "complexify", cfg.Optimizer.Search)
	assert.Equal(t, "maze", cfg.Optimizer.Experiment)
	assert.Equal(t, "memory", cfg.Storage.Kind)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1, cfg.Optimizer.Seed, "empty value is ignored")
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	for key, val := range map[string]string{
		"ACCNEAT_MAX_GENS": "many",
		"ACCNEAT_FORCE":    "maybe",
	} {
		t.Run(key, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == key {
					return val, true
				}
				return "", false
			}
			err := Default().ApplyEnv(lookup)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.ExperimentsRoot = " " }},
		{"zero count", func(c *Config) { c.Optimizer.Count = 0 }},
		{"zero population", func(c *Config) { c.Optimizer.PopSize = 0 }},
		{"zero generations", func(c *Config) { c.Optimizer.MaxGens = 0 }},
		{"unknown search", func(c *Config) { c.Optimizer.Search = "random" }},
		{"unknown store", func(c *Config) { c.Storage.Kind = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Storage.SQLitePath = "" }},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "accneat.yaml")
	cfg := Default()
	cfg.Optimizer.Experiment = "regex-aba"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "regex-aba", loaded.Optimizer.Experiment)
}
