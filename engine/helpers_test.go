package engine

import "testing"

// fixedRules returns rules with constant durations so schedules are exact:
// fixation [0,1) stimulus [1,4) delay [4,6) decision [6,7), and on wager
// trials pre_sure [1,2) sure [2,102).
func fixedRules() Rules {
	r := DefaultRules()
	r.Timing[PhaseFixation] = Constant(100)
	r.Timing[PhaseStimulus] = Constant(300)
	r.Timing[PhaseDelay] = Constant(200)
	r.Timing[PhaseDecision] = Constant(100)
	r.Timing[PhasePreSure] = Constant(100)
	r.Timing[PhaseSure] = Constant(10000)
	return r
}

func newTask(t *testing.T, rules Rules, seed uint64) *Task {
	t.Helper()
	task, err := NewTask(rules, NewRNG(seed))
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	return task
}

func boolPtr(v bool) *bool        { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func overrides(wager bool, gt int, coh float64) TrialOverrides {
	return TrialOverrides{Wager: boolPtr(wager), GroundTruth: intPtr(gt), Coherence: floatPtr(coh)}
}

func startTrial(t *testing.T, task *Task, ov TrialOverrides) Trial {
	t.Helper()
	tr, err := task.NewTrial(ov)
	if err != nil {
		t.Fatalf("NewTrial: %v", err)
	}
	return tr
}

func mustStep(t *testing.T, task *Task, a Action) StepResult {
	t.Helper()
	res, err := task.Step(int(a))
	if err != nil {
		t.Fatalf("Step(%s) at tick %d: %v", a, task.Tick, err)
	}
	return res
}

// fixateUntil steps with ActionFixate until phase p is active.
func fixateUntil(t *testing.T, task *Task, p Phase) {
	t.Helper()
	for !task.InPhase(p) {
		if task.Tick >= task.Schedule.Length {
			t.Fatalf("phase %s never became active (schedule %s)", p, task.Schedule)
		}
		res := mustStep(t, task, ActionFixate)
		if res.Done {
			t.Fatalf("trial ended at tick %d before %s", res.Tick, p)
		}
	}
}

// constRand is a Rand that always returns the same values.
type constRand struct {
	f, norm, exp float64
}

func (c constRand) Float64() float64     { return c.f }
func (c constRand) IntN(n int) int       { return 0 }
func (c constRand) NormFloat64() float64 { return c.norm }
func (c constRand) ExpFloat64() float64  { return c.exp }
