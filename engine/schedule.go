package engine

import (
	"fmt"
	"strings"
)

// Interval is a half-open tick range [Start, End). Set is false for phases
// that do not occur in the current trial.
type Interval struct {
	Start int
	End   int
	Set   bool
}

// Contains reports whether tick lies inside the interval.
func (iv Interval) Contains(tick int) bool {
	return iv.Set && iv.Start <= tick && tick < iv.End
}

// Len returns the interval length in ticks.
func (iv Interval) Len() int {
	if !iv.Set {
		return 0
	}
	return iv.End - iv.Start
}

// Schedule is the phase layout of one trial. It is fixed once built.
type Schedule struct {
	Intervals [NumPhases]Interval
	Terminal  Phase
	Length    int // end tick of the terminal phase
}

// Active returns the set of phases containing tick.
func (s *Schedule) Active(tick int) PhaseSet {
	var set PhaseSet
	for p := Phase(0); p < NumPhases; p++ {
		if s.Intervals[p].Contains(tick) {
			set.add(p)
		}
	}
	return set
}

// In reports whether phase p contains tick.
func (s *Schedule) In(p Phase, tick int) bool {
	return s.Intervals[p].Contains(tick)
}

func (s Schedule) String() string {
	var b strings.Builder
	for p := Phase(0); p < NumPhases; p++ {
		iv := s.Intervals[p]
		if !iv.Set {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s[%d,%d)", p, iv.Start, iv.End)
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Layout rules
// ---------------------------------------------------------------------------

// Anchor says which edge of the dependency a phase starts from.
type Anchor uint8

const (
	AnchorStart  Anchor = iota // 0: trial start (tick 0)
	AnchorOffset               // 1: dependency's end tick
	AnchorOnset                // 2: dependency's start tick
)

// epochRule places one phase relative to an already scheduled phase.
type epochRule struct {
	Phase    Phase
	Anchor   Anchor
	After    Phase // ignored for AnchorStart
	Terminal bool
}

// baseLayout is the fixation → stimulus → delay → decision chain.
var baseLayout = [...]epochRule{
	{Phase: PhaseFixation, Anchor: AnchorStart},
	{Phase: PhaseStimulus, Anchor: AnchorOffset, After: PhaseFixation},
	{Phase: PhaseDelay, Anchor: AnchorOffset, After: PhaseStimulus},
	{Phase: PhaseDecision, Anchor: AnchorOffset, After: PhaseDelay, Terminal: true},
}

// wagerLayout returns the two sure-option windows. The pre-sure window opens at
// stimulus onset or offset depending on the rules.
func wagerLayout(onset SureOnset) [2]epochRule {
	anchor := AnchorOnset
	if onset == SureOnsetStimulusOffset {
		anchor = AnchorOffset
	}
	return [2]epochRule{
		{Phase: PhasePreSure, Anchor: anchor, After: PhaseStimulus},
		{Phase: PhaseSure, Anchor: AnchorOffset, After: PhasePreSure},
	}
}

// scheduleBuilder lays out phases one rule at a time.
type scheduleBuilder struct {
	s        Schedule
	terminal bool
}

// add places rule.Phase with the given duration in ticks.
func (b *scheduleBuilder) add(rule epochRule, ticks int) error {
	if rule.Phase >= NumPhases {
		return fmt.Errorf("%w: %s", ErrUnknownPhase, rule.Phase)
	}
	if b.s.Intervals[rule.Phase].Set {
		return fmt.Errorf("%w: %s scheduled twice", ErrInvalidRules, rule.Phase)
	}
	start := 0
	if rule.Anchor != AnchorStart {
		if rule.After >= NumPhases || !b.s.Intervals[rule.After].Set {
			return fmt.Errorf("%w: %s after %s", ErrUnknownDependency, rule.Phase, rule.After)
		}
		dep := b.s.Intervals[rule.After]
		if rule.Anchor == AnchorOnset {
			start = dep.Start
		} else {
			start = dep.End
		}
	}
	b.s.Intervals[rule.Phase] = Interval{Start: start, End: start + ticks, Set: true}
	if rule.Terminal {
		if b.terminal {
			return fmt.Errorf("%w: more than one terminal phase", ErrInvalidRules)
		}
		b.terminal = true
		b.s.Terminal = rule.Phase
		b.s.Length = start + ticks
	}
	return nil
}

// build returns the finished schedule; exactly one terminal phase is required.
func (b *scheduleBuilder) build() (Schedule, error) {
	if !b.terminal {
		return Schedule{}, fmt.Errorf("%w: no terminal phase", ErrInvalidRules)
	}
	return b.s, nil
}

// buildSchedule draws every duration from the sampler and lays out the trial.
// Durations are drawn in layout order so a fixed seed reproduces the schedule.
func buildSchedule(sm Sampler, timing Timing, wager bool, onset SureOnset) (Schedule, error) {
	var b scheduleBuilder
	for _, rule := range baseLayout {
		if err := b.add(rule, sm.Ticks(timing[rule.Phase])); err != nil {
			return Schedule{}, err
		}
	}
	if wager {
		for _, rule := range wagerLayout(onset) {
			if err := b.add(rule, sm.Ticks(timing[rule.Phase])); err != nil {
				return Schedule{}, err
			}
		}
	}
	return b.build()
}
