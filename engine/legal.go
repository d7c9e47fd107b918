package engine

// ActionMask has bit a set when action a is included.
type ActionMask uint8

// Has reports whether a is in the mask.
func (m ActionMask) Has(a Action) bool { return a < NumActions && m&(1<<a) != 0 }

// List returns the actions in the mask in index order.
func (m ActionMask) List() []Action {
	var out []Action
	for a := Action(0); a < NumActions; a++ {
		if m.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (m *ActionMask) set(a Action) { *m |= 1 << a }

const allActions ActionMask = 1<<NumActions - 1

// RewardedActions returns the actions that do not draw the abort penalty at
// the current tick. During fixation only fixate qualifies; during decision the
// two choices qualify, plus sure on wager trials. Elsewhere every action is
// free of penalty.
func (t *Task) RewardedActions() ActionMask {
	if !t.started || t.over {
		return 0
	}
	var m ActionMask
	switch {
	case t.InPhase(PhaseFixation):
		m.set(ActionFixate)
	case t.InPhase(PhaseDecision):
		m.set(ActionChooseLeft)
		m.set(ActionChooseRight)
		if t.Trial.Wager {
			m.set(ActionChooseSure)
		}
	default:
		m = allActions
	}
	return m
}
