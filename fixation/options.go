// SPDX-License-Identifier: MIT

package fixation

// Policy selects how a vanishing T⁺[j] is handled.
type Policy int

const (
	// Saturate propagates T⁻/0 = +Inf, yielding ρ = 0.
	Saturate Policy = iota
	// Strict reports every vanishing T⁺[j] as *DegenerateRateError.
	Strict
)

// DefaultPolicy is the policy used when no option is given.
const DefaultPolicy = Saturate

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case Saturate:
		return "saturate"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// Option configures Rate.
type Option func(*Options)

// Options holds the effective solver configuration.
type Options struct {
	Policy Policy
	// InstanceOffset is added to the instance index of every reported error,
	// so a caller solving a slice of a larger batch sees batch-wide indices.
	InstanceOffset int
}

// WithPolicy sets the degenerate-rate policy.
// Panics on an unknown policy (programmer error).
func WithPolicy(p Policy) Option {
	if p != Saturate && p != Strict {
		panic("fixation: WithPolicy: unknown policy")
	}

	return func(o *Options) { o.Policy = p }
}

// WithInstanceOffset shifts the instance index reported in errors by lo.
// Panics when lo < 0.
func WithInstanceOffset(lo int) Option {
	if lo < 0 {
		panic("fixation: WithInstanceOffset: offset must be >= 0")
	}

	return func(o *Options) { o.InstanceOffset = lo }
}

// WithStrict is shorthand for WithPolicy(Strict).
func WithStrict() Option { return WithPolicy(Strict) }

func gatherOptions(opts ...Option) Options {
	o := Options{Policy: DefaultPolicy}
	for _, set := range opts {
		set(&o)
	}

	return o
}
