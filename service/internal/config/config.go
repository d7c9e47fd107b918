// internal/config/config.go

// Package config loads task settings. Sources are layered, later ones winning:
// engine defaults, a YAML task file, a .env file, then the process
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	engine "github.com/jason-s-yu/pdwager/engine"
)

// Environment variable names.
const (
	EnvTaskFile  = "PDW_TASK_FILE"
	EnvDT        = "PDW_DT"
	EnvSeed      = "PDW_SEED"
	EnvAbort     = "PDW_ABORT"
	EnvTrials    = "PDW_TRIALS"
	EnvLogLevel  = "PDW_LOG_LEVEL"
	EnvSureOnset = "PDW_SURE_ONSET"
)

// DefaultTrials is the number of trials a run drives when nothing is set.
const DefaultTrials = 100

// Config is the fully merged configuration.
type Config struct {
	Rules    engine.Rules
	Seed     uint64
	Trials   int
	LogLevel string
}

// Default returns the configuration used when no source sets anything.
func Default() Config {
	return Config{
		Rules:    engine.DefaultRules(),
		Seed:     1,
		Trials:   DefaultTrials,
		LogLevel: "info",
	}
}

// Options says where to look for configuration.
type Options struct {
	// TaskFile is a YAML task file. Empty means use $PDW_TASK_FILE, if set.
	TaskFile string
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load merges every source and validates the result.
func Load(opts Options) (Config, error) {
	cfg := Default()

	lookup, err := envLookup(opts)
	if err != nil {
		return Config{}, err
	}

	taskFile := opts.TaskFile
	if taskFile == "" {
		taskFile, _ = lookup(EnvTaskFile)
	}
	if taskFile != "" {
		data, err := os.ReadFile(taskFile)
		if err != nil {
			return Config{}, fmt.Errorf("config: read task file: %w", err)
		}
		if err := applyYAML(&cfg, data); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", taskFile, err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the rules and the run settings.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if c.Trials < 0 {
		return fmt.Errorf("%w: trials %d must be >= 0", engine.ErrInvalidRules, c.Trials)
	}
	return nil
}

// envLookup returns a lookup that prefers the process environment and falls
// back to the dotenv file, matching godotenv.Load's no-override behavior.
func envLookup(opts Options) (func(string) (string, bool), error) {
	process := opts.LookupEnv
	if process == nil {
		process = os.LookupEnv
	}
	if opts.EnvFile == "" {
		return process, nil
	}
	fileVars, err := godotenv.Read(opts.EnvFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return process, nil
		}
		return nil, fmt.Errorf("config: read env file: %w", err)
	}
	return func(key string) (string, bool) {
		if v, ok := process(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// applyEnv overlays the PDW_* variables onto cfg.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDT); ok {
		dt, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDT, err)
		}
		cfg.Rules.DT = dt
	}
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvAbort); ok {
		abort, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAbort, err)
		}
		cfg.Rules.AbortEndsTrial = abort
	}
	if v, ok := lookup(EnvTrials); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTrials, err)
		}
		cfg.Trials = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvSureOnset); ok {
		onset, err := engine.ParseSureOnset(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSureOnset, err)
		}
		cfg.Rules.SureOnset = onset
	}
	return nil
}
