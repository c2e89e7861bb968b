// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape/finite/stochastic checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Square → Finite → Stochastic).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Also catches typed-nil *Dense hidden behind the interface.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil (caller must ensure).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects any NaN or ±Inf cell.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFinite", err)
	}
	var i, j int
	var v float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if isNonFinite(v) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateBatchFinite rejects any NaN or ±Inf cell in a Batch.
// Complexity: O(k*r*c).
func ValidateBatchFinite(b *Batch) error {
	if b == nil {
		return validatorErrorf("ValidateBatchFinite", ErrNilMatrix)
	}
	for off, v := range b.data {
		if isNonFinite(v) {
			inst := off / (b.r * b.c)
			rem := off % (b.r * b.c)
			return validatorErrorf(fmt.Sprintf("ValidateBatchFinite(%d,%d,%d)", inst, rem/b.c, rem%b.c), ErrNaNInf)
		}
	}

	return nil
}

// ValidateRowStochastic checks that m is square, finite, has no entry below
// -eps, and that every row sums to 1 within eps. eps comes from WithEpsilon
// (DefaultEpsilon when absent).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrNotStochastic.
// Complexity: O(n²).
func ValidateRowStochastic(m Matrix, opts ...Option) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateRowStochastic", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateRowStochastic", err)
	}
	eps := gatherOptions(opts...).eps
	var (
		i, j int
		v    float64
		sum  float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		sum = 0
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateRowStochastic", err)
			}
			if isNonFinite(v) {
				return validatorErrorf(fmt.Sprintf("ValidateRowStochastic(%d,%d)", i, j), ErrNaNInf)
			}
			if v < -eps {
				return validatorErrorf(fmt.Sprintf("ValidateRowStochastic(%d,%d)", i, j), ErrNotStochastic)
			}
			sum += v
		}
		if math.Abs(sum-1) > eps {
			return validatorErrorf(fmt.Sprintf("ValidateRowStochastic: row %d sums to %g", i, sum), ErrNotStochastic)
		}
	}

	return nil
}
