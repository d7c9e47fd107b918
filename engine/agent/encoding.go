package agent

import engine "github.com/jason-s-yu/pdwager/engine"

const (
	InputDim  = 12
	TickScale = 100 // ticks at which the elapsed-time feature saturates
)

// Encode writes the 12-dim feature vector for a learning agent into out.
// Layout:
//
//	[0-3]  current observation (fixation, left, right, sure)
//	[4-7]  penalty-free action mask (fixate, left, right, sure)
//	[8]    mean right-minus-left evidence
//	[9]    stimulus samples / (samples + 1)
//	[10]   sure option seen (0/1)
//	[11]   elapsed ticks / TickScale, capped at 1
//
// out is zeroed internally before writing.
func (s *State) Encode(obs engine.Observation, mask engine.ActionMask, out *[InputDim]float32) {
	*out = [InputDim]float32{}
	offset := 0

	// [0-3] Observation.
	for ch := 0; ch < engine.ObsDim; ch++ {
		out[offset+ch] = float32(obs[ch])
	}
	offset += engine.ObsDim

	// [4-7] Action mask.
	for a := engine.Action(0); a < engine.NumActions; a++ {
		if mask.Has(a) {
			out[offset+int(a)] = 1.0
		}
	}
	offset += int(engine.NumActions)
	// offset = 8

	out[offset] = float32(s.Mean())
	offset++

	out[offset] = float32(s.Samples) / float32(s.Samples+1)
	offset++

	if s.SureSeen {
		out[offset] = 1.0
	}
	offset++

	ticks := s.Ticks
	if ticks > TickScale {
		ticks = TickScale
	}
	out[offset] = float32(ticks) / TickScale
	// offset = 12
}
