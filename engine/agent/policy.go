package agent

import (
	engine "github.com/jason-s-yu/pdwager/engine"
)

// Policy chooses one action per tick.
type Policy interface {
	// Reset clears per-trial state. Called at every new trial.
	Reset()
	// Act receives the previous tick's observation (zero on the first tick)
	// and the penalty-free action mask for the coming tick.
	Act(obs engine.Observation, mask engine.ActionMask) engine.Action
}

// ---------------------------------------------------------------------------
// Accumulator
// ---------------------------------------------------------------------------

// DefaultSureThreshold is the mean-evidence level below which the
// accumulator takes an offered sure option.
const DefaultSureThreshold = 0.1

// Accumulator integrates evidence and fixates until the mask says a choice is
// due (fixate no longer penalty-free and a choice is). It takes the sure
// option when it was offered and the evidence is weak.
type Accumulator struct {
	SureThreshold float64
	State         State
}

// NewAccumulator returns an accumulator with the given sure threshold.
func NewAccumulator(sureThreshold float64) *Accumulator {
	return &Accumulator{SureThreshold: sureThreshold}
}

func (a *Accumulator) Reset() { a.State = State{} }

func (a *Accumulator) Act(obs engine.Observation, mask engine.ActionMask) engine.Action {
	a.State.Observe(obs)
	if mask.Has(engine.ActionFixate) || !mask.Has(engine.ActionChooseLeft) {
		return engine.ActionFixate
	}
	if a.State.SureSeen && mask.Has(engine.ActionChooseSure) && a.State.Confidence() < a.SureThreshold {
		return engine.ActionChooseSure
	}
	return a.State.Direction()
}

// ---------------------------------------------------------------------------
// Fixed and Random
// ---------------------------------------------------------------------------

// Fixed always emits the same action.
type Fixed struct {
	Action engine.Action
}

func (f Fixed) Reset() {}

func (f Fixed) Act(engine.Observation, engine.ActionMask) engine.Action { return f.Action }

// Random picks uniformly among the masked actions, or among all actions when
// the mask is empty.
type Random struct {
	Rand engine.Rand
}

func (r Random) Reset() {}

func (r Random) Act(_ engine.Observation, mask engine.ActionMask) engine.Action {
	choices := mask.List()
	if len(choices) == 0 {
		return engine.Action(r.Rand.IntN(int(engine.NumActions)))
	}
	return choices[r.Rand.IntN(len(choices))]
}

var (
	_ Policy = (*Accumulator)(nil)
	_ Policy = Fixed{}
	_ Policy = Random{}
)
