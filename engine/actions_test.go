package engine

import (
	"errors"
	"testing"
)

// TestActionSignTable verifies the explicit action-to-sign mapping.
func TestActionSignTable(t *testing.T) {
	want := map[Action]int{
		ActionFixate:      0,
		ActionChooseLeft:  -1,
		ActionChooseRight: 1,
		ActionChooseSure:  2,
	}
	for a, s := range want {
		if got := a.Signed(); got != s {
			t.Errorf("%s.Signed() = %d, want %d", a, got, s)
		}
	}
	if NumActions != 4 {
		t.Errorf("NumActions = %d, want 4", NumActions)
	}
}

// TestActionPredicates covers Valid and IsChoice.
func TestActionPredicates(t *testing.T) {
	if Action(4).Valid() {
		t.Error("Action(4) reported valid")
	}
	if !ActionChooseLeft.IsChoice() || !ActionChooseRight.IsChoice() {
		t.Error("left/right not reported as choices")
	}
	if ActionFixate.IsChoice() || ActionChooseSure.IsChoice() {
		t.Error("fixate/sure reported as choices")
	}
	if got := Action(9).String(); got != "Action(9)" {
		t.Errorf("String() = %q", got)
	}
}

// TestParseAction round-trips action names.
func TestParseAction(t *testing.T) {
	for a := Action(0); a < NumActions; a++ {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAction("wait"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("err = %v, want ErrInvalidAction", err)
	}
}

// TestStepReportsActivePhases walks a fixed wager trial and checks the
// reported phase sets tick by tick.
func TestStepReportsActivePhases(t *testing.T) {
	task := newTask(t, fixedRules(), 1)
	startTrial(t, task, overrides(true, 1, 12.8))

	want := []PhaseSet{
		1 << PhaseFixation,
		1<<PhaseStimulus | 1<<PhasePreSure,
		1<<PhaseStimulus | 1<<PhaseSure,
		1<<PhaseStimulus | 1<<PhaseSure,
		1<<PhaseDelay | 1<<PhaseSure,
		1<<PhaseDelay | 1<<PhaseSure,
		1<<PhaseDecision | 1<<PhaseSure,
	}
	for tick, w := range want {
		res := mustStep(t, task, ActionFixate)
		if res.Tick != tick || res.Active != w {
			t.Errorf("tick %d: got tick=%d active=%s, want %s", tick, res.Tick, res.Active, w)
		}
	}
	if !task.IsOver() {
		t.Error("trial still running after the decision window")
	}
}
