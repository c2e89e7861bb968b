// SPDX-License-Identifier: MIT

package fixation

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is returned when T⁺/T⁻ are empty, differ in length, or hold
	// per-instance slices of different lengths.
	ErrShape = errors.New("fixation: rate sequences have inconsistent shape")

	// ErrInvalidRate is returned for a negative or NaN transition probability.
	ErrInvalidRate = errors.New("fixation: rate must be a non-negative number")

	// ErrDegenerateRate is matched by every *DegenerateRateError.
	ErrDegenerateRate = errors.New("fixation: zero probability of gaining a mutant")
)

// DegenerateRateError reports the instance and mutant count at which
// T⁺ vanished while the running product still required it.
type DegenerateRateError struct {
	Instance int     // model instance index
	Count    int     // mutant count k
	Tplus    float64 // always 0
	Tneg     float64 // numerator of the offending ratio
}

func (e *DegenerateRateError) Error() string {
	return fmt.Sprintf("fixation: instance %d: T+[%d]=%g, T-[%d]=%g: %v",
		e.Instance, e.Count, e.Tplus, e.Count, e.Tneg, ErrDegenerateRate)
}

// Unwrap lets errors.Is(err, ErrDegenerateRate) match.
func (e *DegenerateRateError) Unwrap() error { return ErrDegenerateRate }
