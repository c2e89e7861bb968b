// SPDX-License-Identifier: MIT

package fixation

import (
	"fmt"
	"math"
)

// Rate returns, for every model instance, the probability that a single
// mutant reaches fixation.
//
// tplus[k][m] and tneg[k][m] are the gain/loss probabilities at mutant count
// k (0..Z) for instance m. Only counts 1..Z-1 enter the formula.
//
// Implementation:
//   - Stage 1: validate shape (non-empty, equal lengths, rectangular).
//   - Stage 2: per instance, accumulate the running product of T⁻/T⁺ and the
//     running sum of products; stop early on a zero product or +Inf sum.
//   - Stage 3: ρ = 1/(1+sum).
//
// Errors:
//   - ErrShape, ErrInvalidRate, *DegenerateRateError (see package doc).
//
// Complexity:
//   - Time O(Z·instances), Space O(instances).
func Rate(tplus, tneg [][]float64, opts ...Option) ([]float64, error) {
	n, err := validateShape(tplus, tneg)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	out := make([]float64, n)
	var m int
	for m = 0; m < n; m++ {
		if out[m], err = single(m, tplus, tneg, o); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Single is Rate for one model instance: tplus[k] and tneg[k] are scalars.
func Single(tplus, tneg []float64, opts ...Option) (float64, error) {
	tp := make([][]float64, len(tplus))
	tn := make([][]float64, len(tneg))
	for k := range tplus {
		tp[k] = []float64{tplus[k]}
	}
	for k := range tneg {
		tn[k] = []float64{tneg[k]}
	}
	out, err := Rate(tp, tn, opts...)
	if err != nil {
		return 0, err
	}

	return out[0], nil
}

// validateShape returns the number of instances.
func validateShape(tplus, tneg [][]float64) (int, error) {
	if len(tplus) == 0 {
		return 0, fmt.Errorf("Rate: empty sequence: %w", ErrShape)
	}
	if len(tplus) != len(tneg) {
		return 0, fmt.Errorf("Rate: len(T+)=%d, len(T-)=%d: %w", len(tplus), len(tneg), ErrShape)
	}
	n := len(tplus[0])
	if n == 0 {
		return 0, fmt.Errorf("Rate: no instances: %w", ErrShape)
	}
	var k int
	for k = range tplus {
		if len(tplus[k]) != n || len(tneg[k]) != n {
			return 0, fmt.Errorf("Rate: count %d has ragged instances: %w", k, ErrShape)
		}
	}

	return n, nil
}

// single evaluates the closed form for instance m.
func single(m int, tplus, tneg [][]float64, o Options) (float64, error) {
	var (
		z    = len(tplus) - 1 // population size
		sum  = 0.0            // Σ_i Π_{j≤i} T⁻[j]/T⁺[j]
		prod = 1.0            // running Π_{j≤i}
		p, q float64
		j    int
	)
	for j = 1; j <= z-1; j++ {
		p, q = tplus[j][m], tneg[j][m]
		if math.IsNaN(p) || math.IsNaN(q) || p < 0 || q < 0 {
			return 0, fmt.Errorf("Rate: instance %d count %d: %w", m+o.InstanceOffset, j, ErrInvalidRate)
		}
		if prod == 0 {
			// Every later term is a multiple of zero.
			break
		}
		if p == 0 {
			if q == 0 || o.Policy == Strict {
				return 0, &DegenerateRateError{Instance: m + o.InstanceOffset, Count: j, Tplus: p, Tneg: q}
			}
			sum = math.Inf(1)
			break
		}
		prod *= q / p
		sum += prod
		if math.IsInf(sum, 1) {
			break
		}
	}

	return 1 / (1 + sum), nil
}
