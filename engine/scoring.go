package engine

// applyReward evaluates the reward policy for action a at the current tick.
//
// Policy branches:
//   - Fixation: any non-fixate action is penalised with Rewards.Aborted and
//     ends the trial only when Rules.AbortEndsTrial is set.
//   - Decision: sure pays Rewards.Sure on wager trials and Rewards.Aborted
//     otherwise; left/right pay Rewards.Correct when the sign matches the
//     ground truth and Rewards.Fail when it does not. Fixating pays 0. Every
//     non-fixate action ends the trial.
//   - Other phases: no reward effect.
func (t *Task) applyReward(a Action, res *StepResult) {
	rw := &t.Rules.Rewards
	tr := &t.Trial

	switch {
	case t.InPhase(PhaseFixation):
		if a != ActionFixate {
			res.Reward = rw.Aborted
			res.Outcome = OutcomeAborted
			res.Info.NewTrial = t.Rules.AbortEndsTrial
		}

	case t.InPhase(PhaseDecision):
		if a == ActionFixate {
			return
		}
		if a == ActionChooseSure {
			if tr.Wager {
				res.Reward = rw.Sure
				res.Outcome = OutcomeSure
			} else {
				res.Reward = rw.Aborted
				res.Outcome = OutcomeSureUnavailable
			}
		} else {
			gt := sign(tr.GroundTruth)
			act := sign(a.Signed())
			if gt == act {
				res.Reward = rw.Correct
				res.Outcome = OutcomeCorrect
			} else if gt == -act {
				res.Reward = rw.Fail
				res.Outcome = OutcomeFail
			}
		}
		res.Info.NewTrial = true
	}
}

// sign returns -1, 0 or +1.
func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// RewardSet returns the closed set of values a step can pay under the rules.
func (r *Rules) RewardSet() [5]float64 {
	rw := r.Rewards
	return [5]float64{rw.Aborted, rw.Correct, rw.Fail, rw.Sure, 0}
}
