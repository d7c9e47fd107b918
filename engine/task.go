// Package engine implements a perceptual-decision task with post-decision
// wagering.
//
// A Task runs one trial at a time: NewTrial draws the trial parameters and the
// phase schedule, and Step advances a tick clock, emitting a 4-channel
// observation, a reward and a termination signal per call. The engine has no
// logging and no global state; the random source is injected by the caller.
package engine

import "fmt"

// Task is the trial state machine. It is not safe for concurrent use; the
// host serialises NewTrial and Step calls.
type Task struct {
	Rules Rules

	rng     Rand
	sampler Sampler

	Trial    Trial
	Schedule Schedule
	Tick     int // simulation clock, reset each trial
	TrialNum int // number of trials started

	started bool
	over    bool
}

// NewTask validates rules and returns a task drawing from rng. No trial is
// started; call NewTrial before Step.
func NewTask(rules Rules, rng Rand) (*Task, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidRules)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Task{
		Rules:   rules,
		rng:     rng,
		sampler: NewSampler(rules.DT, rng),
	}, nil
}

// ---------------------------------------------------------------------------
// NewTrial
// ---------------------------------------------------------------------------

// NewTrial replaces any previous trial. It samples wager, ground truth and
// coherence, applies ov, lays out the phase schedule and resets the clock.
// The random stream is consumed the same way whether or not overrides are
// given.
func (t *Task) NewTrial(ov TrialOverrides) (Trial, error) {
	tr := Trial{
		Wager:       t.rng.IntN(2) == 0,
		GroundTruth: choices[t.rng.IntN(len(choices))],
		Coherence:   t.Rules.Coherences[t.rng.IntN(len(t.Rules.Coherences))],
	}
	tr = ov.apply(tr)
	if err := tr.Validate(); err != nil {
		return Trial{}, err
	}

	sched, err := buildSchedule(t.sampler, t.Rules.Timing, tr.Wager, t.Rules.SureOnset)
	if err != nil {
		return Trial{}, err
	}

	t.Trial = tr
	t.Schedule = sched
	t.Tick = 0
	t.TrialNum++
	t.started = true
	t.over = false
	return tr, nil
}

// choices are the two ground-truth directions.
var choices = [2]int{-1, 1}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// Started reports whether NewTrial has been called at least once.
func (t *Task) Started() bool { return t.started }

// IsOver reports whether the current trial has ended.
func (t *Task) IsOver() bool { return t.over }

// Active returns the phases containing the current tick.
func (t *Task) Active() PhaseSet { return t.Schedule.Active(t.Tick) }

// InPhase reports whether phase p contains the current tick.
func (t *Task) InPhase(p Phase) bool { return t.Schedule.In(p, t.Tick) }
