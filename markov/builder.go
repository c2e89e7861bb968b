// SPDX-License-Identifier: MIT

package markov

import (
	"context"
	"fmt"

	"github.com/katalvlaran/evodyn/fixation"
	"github.com/katalvlaran/evodyn/learning"
	"github.com/katalvlaran/evodyn/matrix"
)

const (
	opBuildFixation  = "BuildFixationMatrix"
	opTransition     = "TransitionFromFixation"
	opBuildTransient = "BuildTransitionMatrix"
)

// BuildTransitionMatrix returns the instances × |S| × |S| row-stochastic
// matrix over monomorphic states. T[m,i,j] (i≠j) is the probability that a
// population monomorphic in strategy i becomes monomorphic in strategy j;
// the diagonal is the residual 1 − Σ off-diagonal.
//
// Implementation:
//   - Stage 1: BuildFixationMatrix (pairwise invasion probabilities).
//   - Stage 2: TransitionFromFixation (transpose, normalize, residual diagonal).
//
// Errors:
//   - ErrInvalidStrategySet, ErrInvalidPopulationSize, ErrPayoffShape,
//     ErrInvalidBeta, matrix.ErrNaNInf, fixation errors, ctx.Err().
//
// Complexity:
//   - Time O(instances·|S|²·Z), Space O(instances·(|S|²+Z)).
func BuildTransitionMatrix(ctx context.Context, model Model, opts ...Option) (*matrix.Batch, error) {
	fix, err := BuildFixationMatrix(ctx, model, opts...)
	if err != nil {
		return nil, err
	}
	t, err := TransitionFromFixation(fix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuildTransient, err)
	}

	return t, nil
}

// BuildFixationMatrix returns F with F[m,a,b] = probability that a single
// mutant playing strategy a takes over a population playing strategy b, for
// every ordered pair a≠b; the diagonal is 0.
//
// Implementation:
//   - Stage 1: Validate the model.
//   - Stage 2: Shard the instances axis across workers.
//   - Stage 3: Per shard, for every unordered pair {a,b} (ctx checked once per
//     pair) evaluate both invasion directions, batched over the shard's
//     instances, and write the disjoint cells.
//
// Complexity:
//   - Time O(instances·|S|²·Z), Space O(instances·|S|²).
func BuildFixationMatrix(ctx context.Context, model Model, opts ...Option) (*matrix.Batch, error) {
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opBuildFixation, err)
	}
	o := gatherOptions(opts...)
	n, s := model.Instances(), len(model.Strategies)

	fix, err := matrix.NewBatch(n, s, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuildFixation, err)
	}

	err = forEachShard(ctx, n, o.workers, func(ctx context.Context, lo, hi int) error {
		w := newInvasionWorkspace(model, lo, hi, o.ratePolicy)
		var a, b int
		for a = 0; a < s; a++ {
			for b = a + 1; b < s; b++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for _, p := range [2][2]int{{a, b}, {b, a}} {
					rho, err := w.invade(p[0], p[1])
					if err != nil {
						return fmt.Errorf("%s %q invading %q: %w",
							opBuildFixation, model.Strategies[p[0]], model.Strategies[p[1]], err)
					}
					for i, r := range rho {
						if err := fix.Set(lo+i, p[0], p[1], r); err != nil {
							return err
						}
					}
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Debug("fixation matrix built",
		"instances", n, "strategies", s, "population", model.Population, "workers", o.workers)

	return fix, nil
}

// TransitionFromFixation converts a fixation batch into the transition batch:
// T[m,b,a] = F[m,a,b] / max(1, |S|−1) for a≠b, then T[m,i,i] = 1 − Σ_{j≠i} T[m,i,j].
// The diagonal is always the residual, never computed independently.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (non-square instances).
//
// Complexity:
//   - Time O(instances·|S|²).
func TransitionFromFixation(fix *matrix.Batch) (*matrix.Batch, error) {
	if fix == nil {
		return nil, fmt.Errorf("%s: %w", opTransition, matrix.ErrNilMatrix)
	}
	n, s, c := fix.Shape()
	if s != c {
		return nil, fmt.Errorf("%s: %dx%d: %w", opTransition, s, c, matrix.ErrDimensionMismatch)
	}
	div := Model{Strategies: make([]string, s)}.divisor()

	t, err := matrix.NewBatch(n, s, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTransition, err)
	}
	var (
		m, i, j int
		v, off  float64
	)
	for m = 0; m < n; m++ {
		for i = 0; i < s; i++ {
			off = 0
			for j = 0; j < s; j++ {
				if i == j {
					continue
				}
				// entering j from i requires j to invade i
				if v, err = fix.At(m, j, i); err != nil {
					return nil, fmt.Errorf("%s: %w", opTransition, err)
				}
				v /= div
				if err = t.Set(m, i, j, v); err != nil {
					return nil, fmt.Errorf("%s: %w", opTransition, err)
				}
				off += v
			}
			if err = t.Set(m, i, i, 1-off); err != nil {
				return nil, fmt.Errorf("%s: %w", opTransition, err)
			}
		}
	}

	return t, nil
}

// invasionWorkspace holds the per-shard buffers reused across strategy pairs.
type invasionWorkspace struct {
	model      Model
	lo, hi     int
	policy     fixation.Policy
	beta       []float64   // len 1 (broadcast) or hi-lo
	tplus      [][]float64 // [k][instance]
	tneg       [][]float64 // [k][instance]
	fa, fb     []float64   // fitness of mutant / resident at the current k
	aa, ab     []float64   // payoffs of the mutant against mutant / resident
	ba, bb     []float64   // payoffs of the resident against mutant / resident
	pFwd, pBwd []float64   // Fermi probabilities
}

func newInvasionWorkspace(model Model, lo, hi int, policy fixation.Policy) *invasionWorkspace {
	n, z := hi-lo, model.Population
	w := &invasionWorkspace{
		model:  model,
		lo:     lo,
		hi:     hi,
		policy: policy,
		tplus:  make([][]float64, z+1),
		tneg:   make([][]float64, z+1),
		fa:     make([]float64, n),
		fb:     make([]float64, n),
		aa:     make([]float64, n),
		ab:     make([]float64, n),
		ba:     make([]float64, n),
		bb:     make([]float64, n),
		pFwd:   make([]float64, n),
		pBwd:   make([]float64, n),
	}
	for k := 0; k <= z; k++ {
		w.tplus[k] = make([]float64, n)
		w.tneg[k] = make([]float64, n)
	}
	if len(model.Beta) == 1 {
		w.beta = model.Beta
	} else {
		w.beta = model.Beta[lo:hi]
	}

	return w
}

// invade returns, for every instance in the shard, the fixation probability of
// a single a-mutant in a population of b-players.
//
// With k mutants among Z:
//
//	fA_k = πaa·(k−1)/Z + πab·(Z−k)/Z
//	fB_k = πba·k/Z     + πbb·(Z−k−1)/Z
//	T⁺[k] = (Z−k)/Z · k/Z · Fermi(β, fB_k, fA_k)
//	T⁻[k] = (Z−k)/Z · k/Z · Fermi(β, fA_k, fB_k)
func (w *invasionWorkspace) invade(a, b int) ([]float64, error) {
	var (
		i, k       int
		z          = float64(w.model.Population)
		kf, weight float64
		err        error
	)
	for i = 0; i < w.hi-w.lo; i++ {
		// Indices are validated by Model.Validate, so At cannot fail here.
		w.aa[i], _ = w.model.Payoffs.At(w.lo+i, a, a)
		w.ab[i], _ = w.model.Payoffs.At(w.lo+i, a, b)
		w.ba[i], _ = w.model.Payoffs.At(w.lo+i, b, a)
		w.bb[i], _ = w.model.Payoffs.At(w.lo+i, b, b)
	}
	for k = 0; k <= w.model.Population; k++ {
		kf = float64(k)
		weight = (z - kf) / z * kf / z
		for i = range w.fa {
			w.fa[i] = w.aa[i]*(kf-1)/z + w.ab[i]*(z-kf)/z
			w.fb[i] = w.ba[i]*kf/z + w.bb[i]*(z-kf-1)/z
		}
		// resident (focal) imitates mutant: mutant count grows
		if err = learning.FermiInto(w.pFwd, w.beta, w.fb, w.fa); err != nil {
			return nil, err
		}
		// mutant (focal) imitates resident: mutant count shrinks
		if err = learning.FermiInto(w.pBwd, w.beta, w.fa, w.fb); err != nil {
			return nil, err
		}
		for i = range w.fa {
			w.tplus[k][i] = weight * w.pFwd[i]
			w.tneg[k][i] = weight * w.pBwd[i]
		}
	}

	return fixation.Rate(w.tplus, w.tneg,
		fixation.WithPolicy(w.policy), fixation.WithInstanceOffset(w.lo))
}
