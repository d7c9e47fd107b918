package engine

import (
	"fmt"
	"math"
)

// MaxTruncExpDraws bounds the rejection loop of the truncated exponential.
// After this many out-of-range draws the last draw is clamped into range.
const MaxTruncExpDraws = 1000

// DistKind identifies a timing distribution family.
type DistKind uint8

const (
	DistConstant DistKind = iota // 0
	DistUniform                  // 1
	DistTruncExp                 // 2
	numDistKinds
)

var distKindNames = [numDistKinds]string{
	DistConstant: "constant",
	DistUniform:  "uniform",
	DistTruncExp: "truncated_exponential",
}

func (k DistKind) String() string {
	if k < numDistKinds {
		return distKindNames[k]
	}
	return fmt.Sprintf("DistKind(%d)", uint8(k))
}

// ParseDistKind maps a family name ("constant", "uniform",
// "truncated_exponential") to its DistKind.
func ParseDistKind(name string) (DistKind, error) {
	for k, n := range distKindNames {
		if n == name {
			return DistKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown family %q", ErrInvalidDist, name)
}

// Dist is a duration distribution. All parameters are in milliseconds.
//   - DistConstant uses Value.
//   - DistUniform uses Low and High.
//   - DistTruncExp uses Mean, Low and High.
type Dist struct {
	Kind  DistKind
	Value float64
	Mean  float64
	Low   float64
	High  float64
}

// Constant returns a distribution that always yields ms.
func Constant(ms float64) Dist { return Dist{Kind: DistConstant, Value: ms} }

// Uniform returns a uniform distribution over [low, high].
func Uniform(low, high float64) Dist { return Dist{Kind: DistUniform, Low: low, High: high} }

// TruncExp returns an exponential distribution with the given mean, restricted
// to [low, high].
func TruncExp(mean, low, high float64) Dist {
	return Dist{Kind: DistTruncExp, Mean: mean, Low: low, High: high}
}

func (d Dist) String() string {
	switch d.Kind {
	case DistConstant:
		return fmt.Sprintf("constant(%g)", d.Value)
	case DistUniform:
		return fmt.Sprintf("uniform(%g, %g)", d.Low, d.High)
	case DistTruncExp:
		return fmt.Sprintf("truncated_exponential(%g, %g, %g)", d.Mean, d.Low, d.High)
	}
	return d.Kind.String()
}

// Validate reports whether the parameters describe a drawable distribution.
func (d Dist) Validate() error {
	switch d.Kind {
	case DistConstant:
		if !nonNegative(d.Value) {
			return fmt.Errorf("%w: constant value %g must be finite and >= 0", ErrInvalidDist, d.Value)
		}
	case DistUniform, DistTruncExp:
		if !nonNegative(d.Low) || !nonNegative(d.High) {
			return fmt.Errorf("%w: %s bounds [%g, %g] must be finite and >= 0", ErrInvalidDist, d.Kind, d.Low, d.High)
		}
		if d.Low > d.High {
			return fmt.Errorf("%w: %s low %g > high %g", ErrInvalidDist, d.Kind, d.Low, d.High)
		}
		if d.Kind == DistTruncExp && (!nonNegative(d.Mean) || d.Mean == 0) {
			return fmt.Errorf("%w: truncated_exponential mean %g must be finite and > 0", ErrInvalidDist, d.Mean)
		}
	default:
		return fmt.Errorf("%w: unknown family %d", ErrInvalidDist, uint8(d.Kind))
	}
	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ---------------------------------------------------------------------------
// Sampler
// ---------------------------------------------------------------------------

// Sampler draws durations and converts them to whole ticks of DT ms.
type Sampler struct {
	DT  float64
	rng Rand
}

// NewSampler returns a sampler drawing from rng with tick size dt (ms).
func NewSampler(dt float64, rng Rand) Sampler {
	return Sampler{DT: dt, rng: rng}
}

// Millis draws one duration in milliseconds. d must be valid.
func (s Sampler) Millis(d Dist) float64 {
	switch d.Kind {
	case DistUniform:
		return d.Low + (d.High-d.Low)*s.rng.Float64()
	case DistTruncExp:
		return s.truncExp(d.Mean, d.Low, d.High)
	default:
		return d.Value
	}
}

// Ticks draws one duration and rounds it to the nearest whole tick.
func (s Sampler) Ticks(d Dist) int {
	n := int(math.Round(s.Millis(d) / s.DT))
	if n < 0 {
		return 0
	}
	return n
}

// truncExp resamples Exp(mean) until it lands in [low, high].
func (s Sampler) truncExp(mean, low, high float64) float64 {
	if low >= high {
		return low
	}
	var x float64
	for i := 0; i < MaxTruncExpDraws; i++ {
		x = s.rng.ExpFloat64() * mean
		if x >= low && x <= high {
			return x
		}
	}
	return math.Min(math.Max(x, low), high)
}
