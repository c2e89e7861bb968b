// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/evodyn/matrix"
)

func TestValidateRowStochastic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"identity", [][]float64{{1, 0}, {0, 1}}, nil},
		{"uniform", [][]float64{{0.5, 0.5}, {0.25, 0.75}}, nil},
		{"row sum off", [][]float64{{0.5, 0.4}, {0, 1}}, matrix.ErrNotStochastic},
		{"negative entry", [][]float64{{1.5, -0.5}, {0, 1}}, matrix.ErrNotStochastic},
		{"non square", [][]float64{{1, 0, 0}, {0, 1, 0}}, matrix.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := matrix.NewDenseFromRows(tc.rows)
			require.NoError(t, err)
			err = matrix.ValidateRowStochastic(m)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateRowStochastic_NilAndNaN(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.ValidateRowStochastic(nil), matrix.ErrNilMatrix)

	m, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, math.NaN()))
	require.ErrorIs(t, matrix.ValidateRowStochastic(m), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)
}

func TestValidateBatchFinite(t *testing.T) {
	t.Parallel()

	b, err := matrix.NewBatch(2, 2, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateBatchFinite(b))
	require.NoError(t, b.Set(1, 1, 0, math.Inf(-1)))
	require.ErrorIs(t, matrix.ValidateBatchFinite(b), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateBatchFinite(nil), matrix.ErrNilMatrix)
}

func TestWithEpsilon_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { matrix.WithEpsilon(-1) })
	require.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
}

func TestValidateRowStochastic_Epsilon(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFromRows([][]float64{{0.5, 0.5 + 1e-6}, {0, 1}})
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateRowStochastic(m), matrix.ErrNotStochastic)
	require.NoError(t, matrix.ValidateRowStochastic(m, matrix.WithEpsilon(1e-5)))
	require.ErrorIs(t, matrix.ValidateRowStochastic(m, matrix.WithEpsilon(1e-5), matrix.WithEpsilon(0)), matrix.ErrNotStochastic)

	slightlyNegative, err := matrix.NewDenseFromRows([][]float64{{1 + 1e-7, -1e-7}, {0, 1}})
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateRowStochastic(slightlyNegative), matrix.ErrNotStochastic)
	require.NoError(t, matrix.ValidateRowStochastic(slightlyNegative, matrix.WithEpsilon(1e-6)))
}
