// SPDX-License-Identifier: MIT

// Package matrix - general (non-symmetric) eigen decomposition.
//
// Purpose:
//   - Expose right eigenpairs of an arbitrary real square matrix. Transition
//     matrices of Markov chains are not symmetric, so Jacobi-style symmetric
//     solvers do not apply.
//   - Delegate the numerics to gonum's LAPACK port (Dgeev: balance, Hessenberg
//     reduction, shifted QR) and keep its native eigenvalue ordering intact.
//
// Determinism:
//   - Same input bits produce the same eigenpairs in the same order.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// EigenPairs holds the eigenvalues of an n×n matrix and the matching right
// eigenvectors. Vectors[k] corresponds to Values[k]; ordering is the solver's
// native ordering and is never re-sorted.
type EigenPairs struct {
	Values  []complex128
	Vectors [][]complex128
}

// EigenGeneral computes all eigenvalues and right eigenvectors of a real
// square matrix m.
// Implementation:
//   - Stage 1: Validate not nil, square, finite.
//   - Stage 2: Copy into a gonum Dense (row-major, same layout).
//   - Stage 3: Factorize with EigenRight; extract values and column vectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrMatrixEigenFailed.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func EigenGeneral(m Matrix) (*EigenPairs, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}

	n := m.Rows()
	buf := make([]float64, n*n)
	if d, ok := m.(*Dense); ok {
		copy(buf, d.data)
	} else {
		var i, j int
		var v float64
		var err error
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if v, err = m.At(i, j); err != nil {
					return nil, matrixErrorf(opEigen, fmt.Errorf("At(%d,%d): %w", i, j, err))
				}
				buf[i*n+j] = v
			}
		}
	}

	var eig mat.Eigen
	if ok := eig.Factorize(mat.NewDense(n, n, buf), mat.EigenRight); !ok {
		return nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	values := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	out := &EigenPairs{
		Values:  values,
		Vectors: make([][]complex128, n),
	}
	var i, k int
	for k = 0; k < n; k++ {
		col := make([]complex128, n)
		for i = 0; i < n; i++ {
			col[i] = vecs.At(i, k)
		}
		out.Vectors[k] = col
	}

	return out, nil
}
