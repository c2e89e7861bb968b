// SPDX-License-Identifier: MIT

package markov

import (
	"context"
	"fmt"

	"github.com/katalvlaran/evodyn/matrix"
)

const opAnalyze = "Analyze"

// Analysis is a model together with every quantity derived from it.
// The Model is carried by value and its payoff batch is never written to.
type Analysis struct {
	Model Model

	// Fixation[m,a,b] is the probability that one a-mutant takes over a
	// b-population (diagonal 0).
	Fixation *matrix.Batch

	// Transitions is the row-stochastic monomorphic-state transition batch.
	Transitions *matrix.Batch

	// Ergodic is instances × |S|; row m is the stationary distribution.
	Ergodic *matrix.Dense

	// Irreducible[m] reports whether instance m has a unique ergodic
	// distribution (every state reaches every other).
	Irreducible []bool
}

// stage is one step of the analysis; stages run in order over one Analysis.
type stage func(ctx context.Context, a *Analysis, o []Option) error

var stages = []stage{
	fixationStage,
	transitionStage,
	reachabilityStage,
	ergodicStage,
}

// Analyze runs the full chain: fixation matrix → transition matrix →
// reachability → ergodic distribution. It performs no numerics of its own and
// is idempotent: the same model and options give the same Analysis.
//
// Errors: anything returned by BuildFixationMatrix, TransitionFromFixation or
// ErgodicDistribution.
func Analyze(ctx context.Context, model Model, opts ...Option) (*Analysis, error) {
	a := &Analysis{Model: model}
	for _, run := range stages {
		if err := run(ctx, a, opts); err != nil {
			return nil, fmt.Errorf("%s: %w", opAnalyze, err)
		}
	}
	gatherOptions(opts...).logger.Info("analysis complete",
		"instances", model.Instances(), "strategies", len(model.Strategies), "population", model.Population)

	return a, nil
}

func fixationStage(ctx context.Context, a *Analysis, o []Option) (err error) {
	a.Fixation, err = BuildFixationMatrix(ctx, a.Model, o...)
	return err
}

func transitionStage(_ context.Context, a *Analysis, _ []Option) (err error) {
	a.Transitions, err = TransitionFromFixation(a.Fixation)
	return err
}

func reachabilityStage(_ context.Context, a *Analysis, o []Option) error {
	eps := gatherOptions(o...).eps
	a.Irreducible = make([]bool, a.Transitions.Len())
	for m := range a.Irreducible {
		t, err := a.Transitions.Matrix(m)
		if err != nil {
			return err
		}
		a.Irreducible[m] = Irreducible(t, eps)
	}

	return nil
}

func ergodicStage(ctx context.Context, a *Analysis, o []Option) (err error) {
	a.Ergodic, err = ErgodicDistribution(ctx, a.Transitions, o...)
	return err
}

// Dominant returns, per instance, the index of the strategy with the largest
// ergodic weight (lowest index on ties).
func (a *Analysis) Dominant() []int {
	if a == nil || a.Ergodic == nil {
		return nil
	}
	rows := a.Ergodic.RawRows()
	out := make([]int, len(rows))
	for m, row := range rows {
		best := 0
		for j, v := range row {
			if v > row[best] {
				best = j
			}
		}
		out[m] = best
	}

	return out
}
