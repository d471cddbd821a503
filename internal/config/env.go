package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix is prepended to every override key.
const EnvPrefix = "ACCNEAT_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from ACCNEAT_* variables. Empty values are
// ignored; values that do not parse are reported rather than dropped.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	e := envReader{lookup: lookup}
	e.str("ROOT", &c.ExperimentsRoot)
	e.str("OPTIMIZER_BINARY", &c.Optimizer.Binary)
	e.str("OPTIMIZER_DIR", &c.Optimizer.Dir)
	e.integer("COUNT", &c.Optimizer.Count)
	e.integer("SEED", &c.Optimizer.Seed)
	e.integer("POP_SIZE", &c.Optimizer.PopSize)
	e.integer("MAX_GENS", &c.Optimizer.MaxGens)
	e.str("SEARCH", &c.Optimizer.Search)
	e.str("EXPERIMENT", &c.Optimizer.Experiment)
	e.boolean("FORCE", &c.Optimizer.Force)
	e.str("STORE", &c.Storage.Kind)
	e.str("DB_PATH", &c.Storage.SQLitePath)
	e.str("LOG_LEVEL", &c.Log.Level)
	e.str("LOG_FORMAT", &c.Log.Format)
	return e.err
}

type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	if e.err != nil || e.lookup == nil {
		return "", false
	}
	val, ok := e.lookup(EnvPrefix + key)
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return strings.TrimSpace(val), true
}

func (e *envReader) str(key string, dst *string) {
	if val, ok := e.get(key); ok {
		*dst = val
	}
}

func (e *envReader) integer(key string, dst *int) {
	val, ok := e.get(key)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		e.err = fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalid, EnvPrefix, key, val)
		return
	}
	*dst = parsed
}

// Accepts true/1/yes and false/0/no, case-insensitive.
func (e *envReader) boolean(key string, dst *bool) {
	val, ok := e.get(key)
	if !ok {
		return
	}
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		e.err = fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalid, EnvPrefix, key, val)
	}
}
