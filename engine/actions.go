package engine

import (
	"fmt"
	"math"
)

// Action is an index into the action table.
type Action uint8

const (
	ActionFixate      Action = iota // 0
	ActionChooseLeft                // 1
	ActionChooseRight               // 2
	ActionChooseSure                // 3
	NumActions
)

// SignSure is the signed value of the sure action. It is outside {-1, 0, +1}
// so it never matches a ground-truth sign.
const SignSure = 2

// actionSigns maps action indices to signed actions:
// fixate → 0, left → -1, right → +1, sure → 2.
var actionSigns = [NumActions]int{
	ActionFixate:      0,
	ActionChooseLeft:  -1,
	ActionChooseRight: +1,
	ActionChooseSure:  SignSure,
}

var actionNames = [NumActions]string{
	ActionFixate:      "fixate",
	ActionChooseLeft:  "choose_left",
	ActionChooseRight: "choose_right",
	ActionChooseSure:  "choose_sure",
}

// Signed returns the signed action value from the action table.
func (a Action) Signed() int { return actionSigns[a] }

// Valid reports whether a is inside the action table.
func (a Action) Valid() bool { return a < NumActions }

// IsChoice reports whether a is a left or right discrimination choice.
func (a Action) IsChoice() bool { return a == ActionChooseLeft || a == ActionChooseRight }

func (a Action) String() string {
	if a.Valid() {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction maps an action name to its Action.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, name)
}

// ---------------------------------------------------------------------------
// Step
// ---------------------------------------------------------------------------

// Info carries the auxiliary per-step signals.
type Info struct {
	// NewTrial is set when this step concluded the trial.
	NewTrial bool
	// GT is always the zero vector: a ground-truth target is not defined for
	// this task.
	GT Observation
	// Missed is set when the decision window elapsed without a choice.
	Missed bool
}

// StepResult is the output of one Step call.
type StepResult struct {
	Observation Observation
	Reward      float64
	Done        bool
	Info        Info

	Tick    int      // clock value the step was evaluated at
	Active  PhaseSet // phases active at Tick
	Outcome Outcome
}

// Step applies one action at the current tick and advances the clock.
// An action index outside the table, a step before any trial, or a step after
// the trial ended is a caller error.
func (t *Task) Step(actionIdx int) (StepResult, error) {
	if !t.started {
		return StepResult{}, ErrNoTrial
	}
	if actionIdx < 0 || actionIdx >= int(NumActions) {
		return StepResult{}, fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidAction, actionIdx, int(NumActions)-1)
	}
	if t.over {
		return StepResult{}, ErrTrialOver
	}

	res := StepResult{Tick: t.Tick, Active: t.Active()}
	t.applyReward(Action(actionIdx), &res)
	t.observe(&res.Observation)

	t.Tick++
	t.checkMissed(&res)

	if res.Info.NewTrial {
		res.Done = true
		t.over = true
	}
	return res, nil
}

// observe writes the observation for the current tick. The sure channel is an
// overlay on whatever the other phases wrote.
func (t *Task) observe(obs *Observation) {
	tr := &t.Trial
	if t.InPhase(PhaseFixation) {
		obs[ChanFixation] = 1
	}
	if t.InPhase(PhaseDelay) {
		obs[ChanFixation] = 1
	} else if t.InPhase(PhaseStimulus) {
		noise := t.Rules.Sigma / math.Sqrt(t.Rules.DT)
		high := evidenceChannel(tr.GroundTruth)
		low := evidenceChannel(-tr.GroundTruth)
		obs[high] = scale(+tr.Coherence) + t.rng.NormFloat64()*noise
		obs[low] = scale(-tr.Coherence) + t.rng.NormFloat64()*noise
	}
	if tr.Wager && t.InPhase(PhaseSure) {
		obs[ChanSure] = 1
	}
}
