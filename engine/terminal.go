package engine

// checkMissed ends the trial when the clock has run past the terminal phase
// without a choice. It runs after the clock advances, so the last tick of the
// decision window is still evaluated normally.
func (t *Task) checkMissed(res *StepResult) {
	if res.Info.NewTrial || t.Tick < t.Schedule.Length {
		return
	}
	res.Info.NewTrial = true
	res.Info.Missed = true
	if res.Outcome == OutcomeNone {
		res.Outcome = OutcomeMissed
	}
}

// Remaining returns the number of ticks left before the terminal phase ends.
func (t *Task) Remaining() int {
	if n := t.Schedule.Length - t.Tick; n > 0 {
		return n
	}
	return 0
}
