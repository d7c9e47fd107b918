package engine

import (
	"fmt"
	"strings"
)

// Phase is one named epoch of a trial.
type Phase uint8

const (
	PhaseFixation Phase = iota // 0
	PhaseStimulus              // 1
	PhaseDelay                 // 2
	PhaseDecision              // 3
	PhasePreSure               // 4: wager trials only, sure target not yet shown
	PhaseSure                  // 5: wager trials only, sure target shown
	NumPhases
)

var phaseNames = [NumPhases]string{
	PhaseFixation: "fixation",
	PhaseStimulus: "stimulus",
	PhaseDelay:    "delay",
	PhaseDecision: "decision",
	PhasePreSure:  "pre_sure",
	PhaseSure:     "sure",
}

func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// ParsePhase maps a phase name to its Phase.
func ParsePhase(name string) (Phase, error) {
	for p, n := range phaseNames {
		if n == name {
			return Phase(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPhase, name)
}

// PhaseSet is a bitmask of phases; bit p is set when phase p is active.
type PhaseSet uint8

// Has reports whether p is in the set.
func (s PhaseSet) Has(p Phase) bool { return s&(1<<p) != 0 }

func (s *PhaseSet) add(p Phase) { *s |= 1 << p }

func (s PhaseSet) String() string {
	var names []string
	for p := Phase(0); p < NumPhases; p++ {
		if s.Has(p) {
			names = append(names, p.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// ---------------------------------------------------------------------------
// Observation channels
// ---------------------------------------------------------------------------

const (
	ObsDim = 4

	ChanFixation = 0
	ChanLeft     = 1
	ChanRight    = 2
	ChanSure     = 3
)

// Observation is the per-tick input vector.
type Observation [ObsDim]float64

// evidenceChannel returns the evidence channel for a signed direction:
// -1 → ChanLeft, +1 → ChanRight.
func evidenceChannel(direction int) int {
	if direction > 0 {
		return ChanRight
	}
	return ChanLeft
}

// ---------------------------------------------------------------------------
// Trial
// ---------------------------------------------------------------------------

// Trial holds the parameters drawn at the start of a trial.
type Trial struct {
	Wager       bool
	GroundTruth int // -1 (left) or +1 (right)
	Coherence   float64
}

func (tr Trial) String() string {
	return fmt.Sprintf("wager=%t gt=%+d coh=%g", tr.Wager, tr.GroundTruth, tr.Coherence)
}

// TrialOverrides replace sampled trial parameters. Nil fields keep the
// sampled value.
type TrialOverrides struct {
	Wager       *bool
	GroundTruth *int
	Coherence   *float64
}

// apply returns tr with every non-nil override applied.
func (ov TrialOverrides) apply(tr Trial) Trial {
	if ov.Wager != nil {
		tr.Wager = *ov.Wager
	}
	if ov.GroundTruth != nil {
		tr.GroundTruth = *ov.GroundTruth
	}
	if ov.Coherence != nil {
		tr.Coherence = *ov.Coherence
	}
	return tr
}

// Validate checks the ground truth sign and the coherence range.
func (tr Trial) Validate() error {
	if tr.GroundTruth != -1 && tr.GroundTruth != 1 {
		return fmt.Errorf("%w: ground truth %d must be -1 or +1", ErrInvalidTrial, tr.GroundTruth)
	}
	if !nonNegative(tr.Coherence) || tr.Coherence > 100 {
		return fmt.Errorf("%w: coherence %g must be in [0, 100]", ErrInvalidTrial, tr.Coherence)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Outcome
// ---------------------------------------------------------------------------

// Outcome classifies what a step did to the trial.
type Outcome uint8

const (
	OutcomeNone            Outcome = iota // 0: nothing rewarded or penalised
	OutcomeAborted                        // 1: broke fixation
	OutcomeCorrect                        // 2
	OutcomeFail                           // 3
	OutcomeSure                           // 4: took the offered sure option
	OutcomeSureUnavailable                // 5: chose sure on a non-wager trial
	OutcomeMissed                         // 6: decision window elapsed without a choice
	NumOutcomes
)

var outcomeNames = [NumOutcomes]string{
	OutcomeNone:            "none",
	OutcomeAborted:         "aborted",
	OutcomeCorrect:         "correct",
	OutcomeFail:            "fail",
	OutcomeSure:            "sure",
	OutcomeSureUnavailable: "sure_unavailable",
	OutcomeMissed:          "missed",
}

func (o Outcome) String() string {
	if o < NumOutcomes {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}
