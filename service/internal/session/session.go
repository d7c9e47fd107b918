// internal/session/session.go

// Package session hosts a Task the way an environment loop does: it starts
// trials, steps them, starts the next trial as soon as one ends and keeps
// running totals.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/pdwager/engine"
	"github.com/jason-s-yu/pdwager/engine/agent"
)

// Stats are the running totals of a session.
type Stats struct {
	Trials      int                     // trials that ended
	Steps       int                     // ticks stepped
	Breaks      int                     // fixation breaks that did not end the trial
	Outcomes    [engine.NumOutcomes]int // trial-ending outcomes
	TotalReward float64
}

// Accuracy is the fraction of left/right choices that were correct. Sure
// choices and missed trials are excluded. It is 0 when no choice was made.
func (s Stats) Accuracy() float64 {
	n := s.Outcomes[engine.OutcomeCorrect] + s.Outcomes[engine.OutcomeFail]
	if n == 0 {
		return 0
	}
	return float64(s.Outcomes[engine.OutcomeCorrect]) / float64(n)
}

// MeanReward is the total reward per ended trial.
func (s Stats) MeanReward() float64 {
	if s.Trials == 0 {
		return 0
	}
	return s.TotalReward / float64(s.Trials)
}

// Session owns one Task and its bookkeeping. Like the Task it wraps, it is
// not safe for concurrent use.
type Session struct {
	ID    uuid.UUID
	Task  *engine.Task
	Stats Stats

	log         *logrus.Entry
	trialReward float64
}

// New creates a session over rules drawing from rng. A nil logger discards
// output.
func New(rules engine.Rules, rng engine.Rand, logger *logrus.Logger) (*Session, error) {
	task, err := engine.NewTask(rules, rng)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	id := uuid.New()
	return &Session{
		ID:   id,
		Task: task,
		log:  logger.WithField("session", id.String()),
	}, nil
}

// Reset starts a fresh trial with everything sampled.
func (s *Session) Reset() (engine.Trial, error) {
	return s.ResetWith(engine.TrialOverrides{})
}

// ResetWith starts a fresh trial, pinning whatever ov sets. An unfinished
// trial is dropped without being counted.
func (s *Session) ResetWith(ov engine.TrialOverrides) (engine.Trial, error) {
	tr, err := s.Task.NewTrial(ov)
	if err != nil {
		return engine.Trial{}, fmt.Errorf("session %s: new trial: %w", s.ID, err)
	}
	s.trialReward = 0
	s.trialLog().WithFields(logrus.Fields{
		"wager":     tr.Wager,
		"gt":        tr.GroundTruth,
		"coherence": tr.Coherence,
		"schedule":  s.Task.Schedule.String(),
	}).Debug("trial start")
	return tr, nil
}

// Step applies action to the current trial. When the step ends the trial the
// result is returned as-is, and the next trial has already been started.
func (s *Session) Step(action int) (engine.StepResult, error) {
	res, err := s.Task.Step(action)
	if err != nil {
		return res, fmt.Errorf("session %s: step: %w", s.ID, err)
	}
	s.Stats.Steps++
	s.Stats.TotalReward += res.Reward
	s.trialReward += res.Reward

	if s.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		s.trialLog().WithFields(logrus.Fields{
			"tick":    res.Tick,
			"action":  engine.Action(action).String(),
			"phases":  res.Active.String(),
			"reward":  res.Reward,
			"outcome": res.Outcome.String(),
		}).Trace("step")
	}

	if !res.Info.NewTrial {
		if res.Outcome == engine.OutcomeAborted {
			s.Stats.Breaks++
		}
		return res, nil
	}

	s.Stats.Trials++
	s.Stats.Outcomes[res.Outcome]++
	s.trialLog().WithFields(logrus.Fields{
		"outcome": res.Outcome.String(),
		"reward":  s.trialReward,
		"tick":    res.Tick,
	}).Info("trial end")

	if _, err := s.Reset(); err != nil {
		return res, err
	}
	return res, nil
}

// Run drives n more trials with p, starting one first if needed. The
// context is checked before every step. The returned stats cover the whole
// session, not just this call.
func (s *Session) Run(ctx context.Context, p agent.Policy, n int) (Stats, error) {
	if !s.Task.Started() || s.Task.IsOver() {
		if _, err := s.Reset(); err != nil {
			return s.Stats, err
		}
	}
	p.Reset()

	var obs engine.Observation
	for done := 0; done < n; {
		if err := ctx.Err(); err != nil {
			return s.Stats, fmt.Errorf("session %s: %w", s.ID, err)
		}
		a := p.Act(obs, s.Task.RewardedActions())
		res, err := s.Step(int(a))
		if err != nil {
			return s.Stats, err
		}
		obs = res.Observation
		if res.Done {
			done++
			obs = engine.Observation{}
			p.Reset()
		}
	}
	return s.Stats, nil
}

func (s *Session) trialLog() *logrus.Entry {
	return s.log.WithField("trial", s.Task.TrialNum)
}
