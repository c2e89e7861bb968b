// SPDX-License-Identifier: MIT
package markov_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/evodyn/markov"
	"github.com/katalvlaran/evodyn/matrix"
)

func requireDistribution(t *testing.T, d *matrix.Dense) {
	t.Helper()
	for m, row := range d.RawRows() {
		var sum float64
		for j, v := range row {
			require.GreaterOrEqual(t, v, 0.0, "instance %d entry %d", m, j)
			sum += v
		}
		require.InDelta(t, 1.0, sum, rowTol, "instance %d", m)
	}
}

func TestErgodicDistribution_UniformTwoState(t *testing.T) {
	tr := batch(t, [][][]float64{{{0.5, 0.5}, {0.5, 0.5}}})
	d, err := markov.ErgodicDistribution(context.Background(), tr)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, d.RawRows()[0], 1e-12)
}

func TestErgodicDistribution_KnownChain(t *testing.T) {
	// Detailed balance: π0·0.3 = π1·0.1 → π = [0.25, 0.75].
	tr := batch(t, [][][]float64{{{0.7, 0.3}, {0.1, 0.9}}})
	d, err := markov.ErgodicDistribution(context.Background(), tr)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.25, 0.75}, d.RawRows()[0], 1e-12)
}

func TestErgodicDistribution_PeriodicChain(t *testing.T) {
	// Eigenvalues ±1; only +1 is selected.
	tr := batch(t, [][][]float64{{{0, 1}, {1, 0}}})
	d, err := markov.ErgodicDistribution(context.Background(), tr)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, d.RawRows()[0], 1e-12)
}

func TestErgodicDistribution_SingleState(t *testing.T) {
	d, err := markov.ErgodicDistribution(context.Background(), batch(t, [][][]float64{{{1}}}))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1}}, d.RawRows())
}

// A reducible chain has one unit eigenvalue per closed class. The first unit
// eigenvalue in the eigensolver's native order is selected; this is a fixed
// tie-break, not a property of the chain.
func TestErgodicDistribution_ReducibleKeepsFirstUnitEigenvalue(t *testing.T) {
	rows := [][]float64{
		{1, 0, 0},
		{0.2, 0.5, 0.3},
		{0, 0, 1},
	}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	d, err := markov.ErgodicDistribution(context.Background(), batch(t, [][][]float64{rows}),
		markov.WithLogger(logger))
	require.NoError(t, err)
	requireDistribution(t, d)
	require.Contains(t, logs.String(), "multiplicity=2")

	// Reproduce the selection directly from the eigenpairs of Tᵀ.
	dense, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	tt, err := matrix.Transpose(dense)
	require.NoError(t, err)
	eig, err := matrix.EigenGeneral(tt)
	require.NoError(t, err)

	first := -1
	for k, v := range eig.Values {
		if math.Abs(real(v)-1) <= markov.DefaultUnitTolerance && imag(v) == 0 {
			first = k
			break
		}
	}
	require.GreaterOrEqual(t, first, 0)
	want := make([]float64, 3)
	var sum float64
	for i, x := range eig.Vectors[first] {
		want[i] = math.Abs(real(x))
		sum += want[i]
	}
	for i := range want {
		want[i] /= sum
	}
	require.InDeltaSlice(t, want, d.RawRows()[0], 1e-12)

	// Transient state 1 never carries stationary mass.
	require.InDelta(t, 0.0, d.RawRows()[0][1], 1e-12)
}

func TestErgodicDistribution_StrictErgodicity(t *testing.T) {
	tr := batch(t, [][][]float64{{{1, 0}, {0, 1}}})
	_, err := markov.ErgodicDistribution(context.Background(), tr, markov.WithStrictErgodicity())
	require.ErrorIs(t, err, markov.ErrReducibleChain)

	_, err = markov.ErgodicDistribution(context.Background(), tr)
	require.NoError(t, err)
}

func TestErgodicDistribution_NotStochastic(t *testing.T) {
	tr := batch(t, [][][]float64{{{0.5, 0}, {0, 0.5}}})
	_, err := markov.ErgodicDistribution(context.Background(), tr)
	require.ErrorIs(t, err, matrix.ErrNotStochastic)
}

func TestErgodicDistribution_EpsilonReachesStochasticCheck(t *testing.T) {
	// Row 0 sums to 1 + 1e-6.
	tr := batch(t, [][][]float64{{{0.5, 0.5 + 1e-6}, {0.5, 0.5}}})
	_, err := markov.ErgodicDistribution(context.Background(), tr)
	require.ErrorIs(t, err, matrix.ErrNotStochastic)

	d, err := markov.ErgodicDistribution(context.Background(), tr,
		markov.WithEpsilon(1e-5), markov.WithUnitTolerance(1e-5))
	require.NoError(t, err)
	requireDistribution(t, d)
}

func TestErgodicDistribution_MixedSignEigenvector(t *testing.T) {
	// Eigenvalues ±1; the unit eigenvector is (1, -1)/√2.
	tr := batch(t, [][][]float64{{{0, -1}, {-1, 0}}})
	_, err := markov.ErgodicDistribution(context.Background(), tr)
	require.ErrorIs(t, err, matrix.ErrNotStochastic)

	_, err = markov.ErgodicDistribution(context.Background(), tr, markov.WithoutStochasticCheck())
	require.ErrorIs(t, err, markov.ErrMixedSignEigenvector)
	require.ErrorContains(t, err, "instance 0")
}

func TestErgodicDistribution_NoUnitEigenvalue(t *testing.T) {
	tr := batch(t, [][][]float64{{{0.5, 0}, {0, 0.5}}})
	_, err := markov.ErgodicDistribution(context.Background(), tr, markov.WithoutStochasticCheck())
	require.ErrorIs(t, err, markov.ErrNoStationaryDistribution)
}

func TestErgodicDistribution_ShapeErrors(t *testing.T) {
	_, err := markov.ErgodicDistribution(context.Background(), nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	rect, err := matrix.NewBatch(2, 2, 3)
	require.NoError(t, err)
	_, err = markov.ErgodicDistribution(context.Background(), rect)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestErgodicDistribution_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := batch(t, [][][]float64{{{0.5, 0.5}, {0.5, 0.5}}})
	_, err := markov.ErgodicDistribution(ctx, tr)
	require.ErrorIs(t, err, context.Canceled)
}

func TestErgodicDistribution_BatchOfBuiltChains(t *testing.T) {
	ctx := context.Background()
	tr, err := markov.BuildTransitionMatrix(ctx, threeStrategyBatch(t))
	require.NoError(t, err)

	serial, err := markov.ErgodicDistribution(ctx, tr, markov.WithWorkers(1))
	require.NoError(t, err)
	requireDistribution(t, serial)

	par, err := markov.ErgodicDistribution(ctx, tr, markov.WithWorkers(3))
	require.NoError(t, err)
	require.Equal(t, serial.RawRows(), par.RawRows())
}

func TestIrreducible(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
		want bool
	}{
		{"Uniform", [][]float64{{0.5, 0.5}, {0.5, 0.5}}, true},
		{"Periodic", [][]float64{{0, 1}, {1, 0}}, true},
		{"Identity", [][]float64{{1, 0}, {0, 1}}, false},
		{"Absorbing", [][]float64{{1, 0}, {0.4, 0.6}}, false},
		{"Cycle", [][]float64{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}, true},
		{"Single", [][]float64{{1}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := matrix.NewDenseFromRows(tc.rows)
			require.NoError(t, err)
			require.Equal(t, tc.want, markov.Irreducible(d, markov.DefaultEpsilon))
		})
	}
	require.False(t, markov.Irreducible(nil, markov.DefaultEpsilon))
}
