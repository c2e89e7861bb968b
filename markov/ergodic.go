// SPDX-License-Identifier: MIT

package markov

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/evodyn/logging"
	"github.com/katalvlaran/evodyn/matrix"
)

const opErgodic = "ErgodicDistribution"

// ErgodicDistribution returns the stationary distribution of every instance
// of a row-stochastic transition batch as an instances × |S| matrix; row m
// is non-negative and sums to 1.
//
// The stationary law of T is the left unit eigenvector of T, i.e. the right
// unit eigenvector of Tᵀ.
//
// Implementation:
//   - Stage 1: Per instance (ctx checked before each), validate T row-stochastic.
//   - Stage 2: EigenGeneral(Tᵀ); pick the FIRST eigenvalue with |λ−1| ≤ unitTol
//     in the solver's native order. Several such eigenvalues mean the chain
//     has more than one closed class: the first is kept and a warning is
//     logged, or ErrReducibleChain is returned under WithStrictErgodicity.
//   - Stage 3: Reject mixed-sign eigenvectors, then normalize |v| / Σ|v|.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, matrix.ErrNotStochastic,
//     matrix.ErrNaNInf, matrix.ErrMatrixEigenFailed, ErrNoStationaryDistribution,
//     ErrReducibleChain, ErrMixedSignEigenvector, ctx.Err().
//
// Complexity:
//   - Time O(instances·|S|³), Space O(instances·|S| + |S|²) per worker.
func ErgodicDistribution(ctx context.Context, t *matrix.Batch, opts ...Option) (*matrix.Dense, error) {
	if t == nil {
		return nil, fmt.Errorf("%s: %w", opErgodic, matrix.ErrNilMatrix)
	}
	n, s, c := t.Shape()
	if s != c {
		return nil, fmt.Errorf("%s: %dx%d: %w", opErgodic, s, c, matrix.ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)

	out, err := matrix.NewDense(n, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opErgodic, err)
	}

	err = forEachShard(ctx, n, o.workers, func(ctx context.Context, lo, hi int) error {
		for m := lo; m < hi; m++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			tm, err := t.Matrix(m)
			if err != nil {
				return fmt.Errorf("%s: %w", opErgodic, err)
			}
			pi, err := stationary(tm, &o)
			if err != nil {
				return fmt.Errorf("%s: instance %d: %w", opErgodic, m, err)
			}
			for j, v := range pi {
				if err = out.Set(m, j, v); err != nil {
					return fmt.Errorf("%s: %w", opErgodic, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// stationary solves one instance.
func stationary(t *matrix.Dense, o *Options) ([]float64, error) {
	if o.checkStochastic {
		if err := matrix.ValidateRowStochastic(t, matrix.WithEpsilon(o.eps)); err != nil {
			return nil, err
		}
	}
	tt, err := matrix.Transpose(t)
	if err != nil {
		return nil, err
	}
	eig, err := matrix.EigenGeneral(tt)
	if err != nil {
		return nil, err
	}

	pick, units := -1, 0
	for k, lambda := range eig.Values {
		if cmplx.Abs(lambda-1) <= o.unitTol {
			if pick < 0 {
				pick = k
			}
			units++
		}
	}
	if pick < 0 {
		return nil, ErrNoStationaryDistribution
	}
	if units > 1 {
		if o.strictErgodicity {
			return nil, fmt.Errorf("%d unit eigenvalues: %w", units, ErrReducibleChain)
		}
		o.logger.Warn("multiple unit eigenvalues, keeping the first",
			"multiplicity", units, "index", pick)
	}

	v := make([]float64, len(eig.Vectors[pick]))
	for i, x := range eig.Vectors[pick] {
		v[i] = real(x)
	}
	pi, err := normalizeEigenvector(v, o.signTol)
	if err != nil {
		return nil, err
	}

	if ctx := context.Background(); o.logger.Enabled(ctx, logging.LevelTrace) {
		if r, err := matrix.MatVec(tt, pi); err == nil {
			o.logger.Log(ctx, logging.LevelTrace, "stationary residual",
				"eigen_index", pick, "max_abs", maxAbsDiff(r, pi))
		}
	}

	return pi, nil
}

// normalizeEigenvector maps a uniformly signed eigenvector to a probability
// vector. Entries within tol·max|v| of zero are noise and may carry either sign.
func normalizeEigenvector(v []float64, tol float64) ([]float64, error) {
	var scale float64
	for _, x := range v {
		scale = math.Max(scale, math.Abs(x))
	}
	if scale == 0 || math.IsNaN(scale) {
		return nil, ErrNoStationaryDistribution
	}

	var pos, neg bool
	cut := tol * scale
	for _, x := range v {
		switch {
		case x > cut:
			pos = true
		case x < -cut:
			neg = true
		}
	}
	if pos && neg {
		return nil, ErrMixedSignEigenvector
	}

	out := make([]float64, len(v))
	var sum float64
	for i, x := range v {
		out[i] = math.Abs(x)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}

	return out, nil
}

func maxAbsDiff(a, b []float64) float64 {
	var d float64
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}

	return d
}
