package engine

import "errors"

// Precondition violations. These are caller errors and are never recovered
// inside the engine.
var (
	ErrNoTrial       = errors.New("no trial started")
	ErrInvalidAction = errors.New("invalid action index")
	ErrTrialOver     = errors.New("trial is already over")
)

// Configuration errors, surfaced before any step is taken.
var (
	ErrInvalidDist       = errors.New("invalid timing distribution")
	ErrUnknownPhase      = errors.New("unknown phase")
	ErrUnknownDependency = errors.New("phase depends on unscheduled phase")
	ErrInvalidTrial      = errors.New("invalid trial parameters")
	ErrInvalidRules      = errors.New("invalid rules")
)
