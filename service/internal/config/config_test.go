// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/jason-s-yu/pdwager/engine"
)

// mapEnv returns a LookupEnv backed by m.
func mapEnv(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{LookupEnv: mapEnv(nil)})
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, want, cfg)
	assert.Equal(t, 100.0, cfg.Rules.DT)
	assert.False(t, cfg.Rules.AbortEndsTrial)
	assert.Equal(t, engine.TruncExp(180, 100, 900), cfg.Rules.Timing[engine.PhaseStimulus])
}

func TestLoadTaskFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "task.yaml", `
dt: 50
seed: 9
trials: 12
abort: true
sure_onset: stimulus_offset
coherences: [0, 51.2]
rewards:
  correct: 2
timing:
  fixation: {dist: constant, params: [300]}
  delay: {dist: uniform, params: [1000, 1500]}
  stimulus: {dist: truncated_exponential, params: [200, 100, 800]}
`)
	cfg, err := Load(Options{TaskFile: path, LookupEnv: mapEnv(nil)})
	require.NoError(t, err)

	r := cfg.Rules
	assert.Equal(t, 50.0, r.DT)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, 12, cfg.Trials)
	assert.True(t, r.AbortEndsTrial)
	assert.Equal(t, engine.SureOnsetStimulusOffset, r.SureOnset)
	assert.Equal(t, []float64{0, 51.2}, r.Coherences)
	assert.Equal(t, 2.0, r.Rewards.Correct)
	assert.InDelta(t, 1.4, r.Rewards.Sure, 1e-12, "sure follows correct when unset")
	assert.Equal(t, -0.1, r.Rewards.Aborted)
	assert.Equal(t, engine.Constant(300), r.Timing[engine.PhaseFixation])
	assert.Equal(t, engine.Uniform(1000, 1500), r.Timing[engine.PhaseDelay])
	assert.Equal(t, engine.TruncExp(200, 100, 800), r.Timing[engine.PhaseStimulus])
	assert.Equal(t, engine.Uniform(500, 750), r.Timing[engine.PhasePreSure], "untouched phases keep defaults")
}

func TestLoadEmptyTaskFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "")
	cfg, err := Load(Options{TaskFile: path, LookupEnv: mapEnv(nil)})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTaskFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown phase", "timing:\n  target: {dist: constant, params: [0]}\n", engine.ErrUnknownPhase},
		{"unknown dist", "timing:\n  delay: {dist: gamma, params: [1, 2]}\n", engine.ErrInvalidDist},
		{"wrong arity", "timing:\n  delay: {dist: uniform, params: [1]}\n", engine.ErrInvalidDist},
		{"low above high", "timing:\n  delay: {dist: truncated_exponential, params: [1350, 1800, 1200]}\n", engine.ErrInvalidDist},
		{"bad dt", "dt: 0\n", engine.ErrInvalidRules},
		{"bad onset", "sure_onset: whenever\n", engine.ErrInvalidRules},
		{"negative trials", "trials: -3\n", engine.ErrInvalidRules},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "task.yaml", tc.body)
			_, err := Load(Options{TaskFile: path, LookupEnv: mapEnv(nil)})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadTaskFileUnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "task.yaml", "dtt: 100\n")
	_, err := Load(Options{TaskFile: path, LookupEnv: mapEnv(nil)})
	assert.Error(t, err)
}

func TestLoadMissingTaskFile(t *testing.T) {
	_, err := Load(Options{TaskFile: filepath.Join(t.TempDir(), "nope.yaml"), LookupEnv: mapEnv(nil)})
	assert.Error(t, err)
}

func TestLoadEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	task := writeFile(t, dir, "task.yaml", "dt: 50\nseed: 9\ntrials: 12\nlog_level: warn\n")
	envFile := writeFile(t, dir, ".env", "PDW_SEED=21\nPDW_TRIALS=30\nPDW_ABORT=true\nPDW_TASK_FILE="+task+"\n")

	cfg, err := Load(Options{
		EnvFile:   envFile,
		LookupEnv: mapEnv(map[string]string{EnvTrials: "40", EnvLogLevel: "debug"}),
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, cfg.Rules.DT, "task file found through the env file")
	assert.Equal(t, uint64(21), cfg.Seed, "env file beats task file")
	assert.Equal(t, 40, cfg.Trials, "process env beats env file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Rules.AbortEndsTrial)
}

func TestLoadMissingEnvFileIgnored(t *testing.T) {
	cfg, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), ".env"), LookupEnv: mapEnv(nil)})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvErrors(t *testing.T) {
	for _, key := range []string{EnvDT, EnvSeed, EnvAbort, EnvTrials, EnvSureOnset} {
		t.Run(key, func(t *testing.T) {
			_, err := Load(Options{LookupEnv: mapEnv(map[string]string{key: "not-a-value"})})
			assert.Error(t, err)
		})
	}
}

func TestLoadUsesProcessEnvByDefault(t *testing.T) {
	t.Setenv(EnvSureOnset, "stimulus_offset")
	t.Setenv(EnvDT, "20")
	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, engine.SureOnsetStimulusOffset, cfg.Rules.SureOnset)
	assert.Equal(t, 20.0, cfg.Rules.DT)
}
