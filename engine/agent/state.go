// Package agent implements scripted (non-learning) agents for the wagering
// task. Agents see the observation from the previous tick plus the engine's
// penalty-free action mask and return the next action.
package agent

import (
	"math"

	engine "github.com/jason-s-yu/pdwager/engine"
)

// State is the evidence an agent has gathered during the current trial.
// It is a flat value type; a zero State is a fresh trial.
type State struct {
	Evidence float64 // sum of (right - left) over stimulus ticks
	Samples  int     // stimulus ticks observed
	SureSeen bool    // sure channel was lit at least once
	Ticks    int     // observations seen this trial
}

// Observe folds one observation into the state. Stimulus ticks are the ones
// with the fixation cue off and evidence present.
func (s *State) Observe(obs engine.Observation) {
	s.Ticks++
	if obs[engine.ChanSure] > 0.5 {
		s.SureSeen = true
	}
	if obs[engine.ChanFixation] != 0 {
		return
	}
	if obs[engine.ChanLeft] == 0 && obs[engine.ChanRight] == 0 {
		return
	}
	s.Evidence += obs[engine.ChanRight] - obs[engine.ChanLeft]
	s.Samples++
}

// Mean returns the average right-minus-left evidence, or 0 with no samples.
func (s *State) Mean() float64 {
	if s.Samples == 0 {
		return 0
	}
	return s.Evidence / float64(s.Samples)
}

// Confidence returns |Mean|.
func (s *State) Confidence() float64 { return math.Abs(s.Mean()) }

// Direction returns the choice favoured by the evidence; ties go right.
func (s *State) Direction() engine.Action {
	if s.Evidence < 0 {
		return engine.ActionChooseLeft
	}
	return engine.ActionChooseRight
}
