// internal/config/taskfile.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	engine "github.com/jason-s-yu/pdwager/engine"
)

// taskFile is the YAML layout. Absent fields keep the current value.
type taskFile struct {
	DT         *float64            `yaml:"dt"`
	Seed       *uint64             `yaml:"seed"`
	Trials     *int                `yaml:"trials"`
	LogLevel   *string             `yaml:"log_level"`
	Abort      *bool               `yaml:"abort"`
	SureOnset  *string             `yaml:"sure_onset"`
	Sigma      *float64            `yaml:"sigma"`
	Coherences []float64           `yaml:"coherences"`
	Rewards    *rewardsFile        `yaml:"rewards"`
	Timing     map[string]distFile `yaml:"timing"`
}

type rewardsFile struct {
	Aborted *float64 `yaml:"aborted"`
	Correct *float64 `yaml:"correct"`
	Fail    *float64 `yaml:"fail"`
	Sure    *float64 `yaml:"sure"`
}

// distFile is one timing entry, e.g. {dist: uniform, params: [500, 750]}.
type distFile struct {
	Dist   string    `yaml:"dist"`
	Params []float64 `yaml:"params"`
}

// distArity is the number of params each family takes.
var distArity = map[engine.DistKind]int{
	engine.DistConstant: 1,
	engine.DistUniform:  2,
	engine.DistTruncExp: 3,
}

// toDist converts a timing entry. Params are (value), (low, high) or
// (mean, low, high).
func (d distFile) toDist() (engine.Dist, error) {
	kind, err := engine.ParseDistKind(d.Dist)
	if err != nil {
		return engine.Dist{}, err
	}
	if want := distArity[kind]; len(d.Params) != want {
		return engine.Dist{}, fmt.Errorf("%w: %s takes %d params, got %d", engine.ErrInvalidDist, kind, want, len(d.Params))
	}
	p := d.Params
	switch kind {
	case engine.DistUniform:
		return engine.Uniform(p[0], p[1]), nil
	case engine.DistTruncExp:
		return engine.TruncExp(p[0], p[1], p[2]), nil
	default:
		return engine.Constant(p[0]), nil
	}
}

// applyYAML decodes data and overlays it onto cfg. Unknown keys are errors.
func applyYAML(cfg *Config, data []byte) error {
	var f taskFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}

	r := &cfg.Rules
	if f.DT != nil {
		r.DT = *f.DT
	}
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.Trials != nil {
		cfg.Trials = *f.Trials
	}
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}
	if f.Abort != nil {
		r.AbortEndsTrial = *f.Abort
	}
	if f.SureOnset != nil {
		onset, err := engine.ParseSureOnset(*f.SureOnset)
		if err != nil {
			return err
		}
		r.SureOnset = onset
	}
	if f.Sigma != nil {
		r.Sigma = *f.Sigma
	}
	if f.Coherences != nil {
		r.Coherences = append([]float64(nil), f.Coherences...)
	}
	if rw := f.Rewards; rw != nil {
		if rw.Aborted != nil {
			r.Rewards.Aborted = *rw.Aborted
		}
		if rw.Correct != nil {
			r.Rewards.Correct = *rw.Correct
			if rw.Sure == nil {
				r.Rewards.Sure = engine.SureFraction * *rw.Correct
			}
		}
		if rw.Fail != nil {
			r.Rewards.Fail = *rw.Fail
		}
		if rw.Sure != nil {
			r.Rewards.Sure = *rw.Sure
		}
	}
	for name, entry := range f.Timing {
		phase, err := engine.ParsePhase(name)
		if err != nil {
			return fmt.Errorf("timing: %w", err)
		}
		d, err := entry.toDist()
		if err != nil {
			return fmt.Errorf("timing %s: %w", name, err)
		}
		r.Timing[phase] = d
	}
	return nil
}
