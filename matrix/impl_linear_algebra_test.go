// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/evodyn/matrix"
)

// hide wraps any Matrix to hide its concrete type and force fallback paths.
type hide struct{ matrix.Matrix }

func TestTranspose_FastAndFallback(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	fast, err := matrix.Transpose(m)
	require.NoError(t, err)
	slow, err := matrix.Transpose(hide{m})
	require.NoError(t, err)

	want := [][]float64{{1, 4}, {2, 5}, {3, 6}}
	require.Equal(t, want, fast.RawRows())
	require.Equal(t, want, slow.RawRows())

	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMatVec(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	y, err := matrix.MatVec(m, []float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 7}, y)

	y, err = matrix.MatVec(hide{m}, []float64{1, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, y)

	_, err = matrix.MatVec(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// requireEigenpairs checks A·v = λ·v for every returned pair.
func requireEigenpairs(t *testing.T, rows [][]float64, e *matrix.EigenPairs) {
	t.Helper()
	n := len(rows)
	require.Len(t, e.Values, n)
	require.Len(t, e.Vectors, n)
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			var av complex128
			for j := 0; j < n; j++ {
				av += complex(rows[i][j], 0) * e.Vectors[k][j]
			}
			require.InDelta(t, 0, cmplx.Abs(av-e.Values[k]*e.Vectors[k][i]), 1e-10)
		}
	}
}

func TestEigenGeneral_NonSymmetric(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{0.9, 0.1}, {0.4, 0.6}}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	e, err := matrix.EigenGeneral(m)
	require.NoError(t, err)
	requireEigenpairs(t, rows, e)

	var sawOne, sawHalf bool
	for _, v := range e.Values {
		if cmplx.Abs(v-1) < 1e-12 {
			sawOne = true
		}
		if cmplx.Abs(v-0.5) < 1e-12 {
			sawHalf = true
		}
	}
	require.True(t, sawOne && sawHalf, "eigenvalues of a 2-state chain are 1 and 1-p-q")
}

func TestEigenGeneral_ComplexPair(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{0, -1}, {1, 0}}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	e, err := matrix.EigenGeneral(hide{m})
	require.NoError(t, err)
	requireEigenpairs(t, rows, e)
	for _, v := range e.Values {
		require.InDelta(t, 1, cmplx.Abs(v), 1e-12)
		require.InDelta(t, 0, real(v), 1e-12)
	}
}

func TestEigenGeneral_Validation(t *testing.T) {
	t.Parallel()

	_, err := matrix.EigenGeneral(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.EigenGeneral(m)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
