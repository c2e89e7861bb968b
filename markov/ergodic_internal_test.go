// SPDX-License-Identifier: MIT
package markov

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEigenvector(t *testing.T) {
	cases := []struct {
		name string
		in   []float64
		want []float64
		err  error
	}{
		{"Positive", []float64{1, 3}, []float64{0.25, 0.75}, nil},
		{"NegativeFlipped", []float64{-0.6, -0.8}, []float64{0.6 / 1.4, 0.8 / 1.4}, nil},
		{"NoiseOfOtherSign", []float64{0.5, -1e-12, 0.5}, []float64{0.5 / (1 + 1e-12), 1e-12 / (1 + 1e-12), 0.5 / (1 + 1e-12)}, nil},
		{"MixedSign", []float64{0.7, -0.7}, nil, ErrMixedSignEigenvector},
		{"MixedSignSmall", []float64{1, 0.2, -0.01}, nil, ErrMixedSignEigenvector},
		{"Zero", []float64{0, 0}, nil, ErrNoStationaryDistribution},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeEigenvector(tc.in, DefaultSignTolerance)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.InDeltaSlice(t, tc.want, got, 1e-15)
		})
	}
}

func TestForEachShard_CoversRangeOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{{0, 4}, {1, 4}, {7, 1}, {7, 3}, {8, 4}, {5, 16}} {
		hits := make([]int, tc.n)
		err := forEachShard(context.Background(), tc.n, tc.workers, func(_ context.Context, lo, hi int) error {
			for i := lo; i < hi; i++ {
				hits[i]++
			}
			return nil
		})
		require.NoError(t, err)
		for i, h := range hits {
			require.Equal(t, 1, h, "n=%d workers=%d index %d", tc.n, tc.workers, i)
		}
	}
}

func TestModelBetaAt(t *testing.T) {
	require.Equal(t, 2.0, Model{Beta: []float64{2}}.BetaAt(5))
	require.Equal(t, 3.0, Model{Beta: []float64{1, 3}}.BetaAt(1))
	require.Equal(t, 1.0, Model{Strategies: []string{"a"}}.divisor())
	require.Equal(t, 2.0, Model{Strategies: []string{"a", "b", "c"}}.divisor())
}
