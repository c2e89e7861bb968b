// SPDX-License-Identifier: MIT

package learning

import (
	"errors"
	"fmt"
	"math"
)

// ErrBroadcast is returned when input lengths cannot be broadcast to the output length.
var ErrBroadcast = errors.New("learning: inputs cannot be broadcast to a common length")

// Fermi returns the probability that a focal individual with fitness focal
// adopts the strategy of a model individual with fitness other, under
// selection strength beta.
//
// Implementation:
//   - Stage 1: equal fitness short-circuits to exactly 0.5 (also avoids 0·Inf).
//   - Stage 2: evaluate 1/(1+exp(-β·Δ)); IEEE saturation gives exact 0 or 1.
//
// Complexity: O(1).
func Fermi(beta, focal, other float64) float64 {
	if focal == other {
		return 0.5
	}
	x := -beta * (other - focal)
	if math.IsNaN(x) {
		// β = 0 with an infinite gap: no selection, coin flip.
		return 0.5
	}

	return 1 / (1 + math.Exp(x))
}

// FermiInto evaluates Fermi elementwise into dst.
// Each of beta, focal and other must have length 1 (broadcast) or len(dst).
//
// Errors:
//   - ErrBroadcast on incompatible lengths.
//
// Complexity: O(len(dst)); no allocations.
func FermiInto(dst, beta, focal, other []float64) error {
	n := len(dst)
	if err := checkBroadcast("beta", len(beta), n); err != nil {
		return err
	}
	if err := checkBroadcast("focal", len(focal), n); err != nil {
		return err
	}
	if err := checkBroadcast("other", len(other), n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		dst[i] = Fermi(at(beta, i), at(focal, i), at(other, i))
	}

	return nil
}

// checkBroadcast accepts length 1 or exactly n.
func checkBroadcast(name string, got, n int) error {
	if got == 1 || got == n {
		return nil
	}

	return fmt.Errorf("FermiInto: %s has length %d, want 1 or %d: %w", name, got, n, ErrBroadcast)
}

// at reads s[i] with length-1 broadcasting.
func at(s []float64, i int) float64 {
	if len(s) == 1 {
		return s[0]
	}

	return s[i]
}
