// Package fixation computes the probability that a single mutant takes over
// a finite, well-mixed population under a one-dimensional birth–death process.
//
// Overview:
//
//   - States are mutant counts k = 0..Z; 0 and Z are absorbing.
//   - T⁺[k] is the probability that the count grows by one in a single
//     learning event, T⁻[k] the probability that it shrinks by one.
//   - Starting from one mutant, the absorption probability at Z is
//
//     ρ = 1 / (1 + Σ_{i=1}^{Z-1} Π_{j=1}^{i} T⁻[j]/T⁺[j])
//
//   - Rate evaluates this closed form with a running cumulative product
//     inside a running sum. No linear system is solved.
//
// Batching:
//
//   - T⁺[k] and T⁻[k] are slices over independent model instances; Rate
//     returns one ρ per instance.
//
// Edge cases:
//
//   - Z ≤ 1 (rate sequences of length ≤ 2): the sum is empty and ρ = 1.
//   - Once the running product reaches 0 every later term is 0 and the
//     remaining counts are skipped.
//
// Degenerate rates (T⁺[j] = 0 with a non-zero running product):
//
//   - Saturate (default): T⁻[j]/0 propagates as +Inf and ρ = 0, the limit of
//     the closed form. This is what strong selection produces when the Fermi
//     rule saturates to exactly 0.
//   - Strict (WithStrict): return *DegenerateRateError.
//   - 0/0 (T⁺[j] = T⁻[j] = 0) has no limit and is always *DegenerateRateError.
//
// Errors:
//
//   - ErrShape: empty, mismatched or ragged rate sequences.
//   - ErrInvalidRate: a negative or NaN rate.
//   - ErrDegenerateRate (via *DegenerateRateError): see above.
//
// Both carry the instance index; WithInstanceOffset shifts it when the caller
// passes one shard of a larger batch.
package fixation
