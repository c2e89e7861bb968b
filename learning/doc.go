// Package learning implements the pairwise social-learning comparison used by
// the evolutionary-dynamics packages: the Fermi rule.
//
// Overview:
//
//   - A focal individual compares its fitness with that of a randomly chosen
//     model individual and adopts the model's strategy with probability
//
//     p = 1 / (1 + exp(-β · (fitness_other − fitness_focal)))
//
//   - β is the selection strength (inverse temperature). β = 0 makes every
//     comparison a fair coin flip; β → ∞ turns the rule into a hard
//     best-response step function.
//
// Numeric guarantees:
//
//   - Equal fitness values always yield exactly 0.5, for any β including ±Inf.
//   - The exponential may overflow for extreme arguments. Go's float64 never
//     traps: +Inf saturates the result to exactly 0 and an underflow to 0
//     saturates it to exactly 1.
//   - Output is monotonically increasing in (other − focal) for β > 0.
//
// Batched form:
//
//   - FermiInto evaluates the rule elementwise over slices with scalar
//     broadcasting (length-1 inputs stretch to the output length), which is
//     how the transition-matrix builder evaluates many model instances at once.
//
// Errors:
//
//   - ErrBroadcast: an input length is neither 1 nor len(dst).
package learning
