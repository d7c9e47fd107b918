package engine

import (
	"fmt"
	"math"
)

// Timing holds one duration distribution per phase.
type Timing [NumPhases]Dist

// DefaultTiming returns the standard phase durations (ms).
func DefaultTiming() Timing {
	var t Timing
	t[PhaseFixation] = Constant(100)
	t[PhaseStimulus] = TruncExp(180, 100, 900)
	t[PhaseDelay] = TruncExp(1350, 1200, 1800)
	t[PhasePreSure] = Uniform(500, 750)
	t[PhaseDecision] = Constant(100)
	t[PhaseSure] = Constant(10000)
	return t
}

// Validate checks every phase's distribution.
func (t *Timing) Validate() error {
	for p := Phase(0); p < NumPhases; p++ {
		if err := t[p].Validate(); err != nil {
			return fmt.Errorf("timing %s: %w", p, err)
		}
	}
	return nil
}

// Rewards holds the value of each reward branch.
type Rewards struct {
	Aborted float64
	Correct float64
	Fail    float64
	Sure    float64
}

// SureFraction is the sure-option reward as a fraction of the correct reward.
const SureFraction = 0.7

// DefaultRewards returns the standard reward table.
func DefaultRewards() Rewards {
	return Rewards{
		Aborted: -0.1,
		Correct: 1.0,
		Fail:    0.0,
		Sure:    SureFraction * 1.0,
	}
}

// SureOnset selects where the pre-sure window starts.
type SureOnset uint8

const (
	SureOnsetStimulusOnset  SureOnset = iota // 0: pre-sure opens with the stimulus
	SureOnsetStimulusOffset                  // 1: pre-sure opens when the stimulus ends
)

func (o SureOnset) String() string {
	switch o {
	case SureOnsetStimulusOnset:
		return "stimulus_onset"
	case SureOnsetStimulusOffset:
		return "stimulus_offset"
	}
	return fmt.Sprintf("SureOnset(%d)", uint8(o))
}

// ParseSureOnset maps "stimulus_onset" / "stimulus_offset" to a SureOnset.
func ParseSureOnset(s string) (SureOnset, error) {
	switch s {
	case "stimulus_onset":
		return SureOnsetStimulusOnset, nil
	case "stimulus_offset":
		return SureOnsetStimulusOffset, nil
	}
	return 0, fmt.Errorf("%w: unknown sure onset %q", ErrInvalidRules, s)
}

// Rules holds the configurable task settings.
type Rules struct {
	DT             float64 // ms per tick
	Timing         Timing
	Rewards        Rewards
	Coherences     []float64
	Sigma          float64 // input noise before 1/sqrt(dt) scaling
	AbortEndsTrial bool    // if true, breaking fixation ends the trial
	SureOnset      SureOnset
}

// DefaultCoherences is the standard coherence set (percent).
var DefaultCoherences = []float64{0, 3.2, 6.4, 12.8, 25.6, 51.2}

// DefaultRules returns the standard task settings.
func DefaultRules() Rules {
	return Rules{
		DT:             100,
		Timing:         DefaultTiming(),
		Rewards:        DefaultRewards(),
		Coherences:     append([]float64(nil), DefaultCoherences...),
		Sigma:          math.Sqrt(2 * 100 * 0.01),
		AbortEndsTrial: false,
		SureOnset:      SureOnsetStimulusOnset,
	}
}

// Validate reports the first configuration error in r.
func (r *Rules) Validate() error {
	if !nonNegative(r.DT) || r.DT == 0 {
		return fmt.Errorf("%w: dt %g must be finite and > 0", ErrInvalidRules, r.DT)
	}
	if err := r.Timing.Validate(); err != nil {
		return err
	}
	if len(r.Coherences) == 0 {
		return fmt.Errorf("%w: empty coherence set", ErrInvalidRules)
	}
	for _, c := range r.Coherences {
		if !nonNegative(c) || c > 100 {
			return fmt.Errorf("%w: coherence %g must be in [0, 100]", ErrInvalidRules, c)
		}
	}
	if !nonNegative(r.Sigma) {
		return fmt.Errorf("%w: sigma %g must be finite and >= 0", ErrInvalidRules, r.Sigma)
	}
	if r.SureOnset > SureOnsetStimulusOffset {
		return fmt.Errorf("%w: unknown sure onset %d", ErrInvalidRules, uint8(r.SureOnset))
	}
	return nil
}

// scale maps a signed coherence to an evidence level in [0, 1].
func scale(coh float64) float64 {
	return (1 + coh/100) / 2
}
