// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/evodyn/matrix"
)

// Model is a batch of independent games sharing one population size and one
// strategy set; only payoffs (and optionally β) differ between instances.
// A Model is treated as immutable input: nothing in this package writes to it.
type Model struct {
	// Population is the population size Z (>= 2).
	Population int

	// Strategies lists the strategy identifiers; index i labels row/column i
	// of every payoff and transition matrix.
	Strategies []string

	// Beta is the selection strength: one value broadcast to all instances, or
	// one value per instance.
	Beta []float64

	// Payoffs is instances × |S| × |S|; Payoffs[m,i,j] is the payoff to a player
	// using strategy i against an opponent using strategy j in instance m.
	Payoffs *matrix.Batch
}

// Instances returns the number of model instances (0 when Payoffs is nil).
func (m Model) Instances() int {
	if m.Payoffs == nil {
		return 0
	}

	return m.Payoffs.Len()
}

// BetaAt returns the selection strength of instance i, broadcasting a scalar β.
func (m Model) BetaAt(i int) float64 {
	if len(m.Beta) == 1 {
		return m.Beta[0]
	}

	return m.Beta[i]
}

// Validate checks the structural contract in a fixed order:
// strategies → population → payoff shape → payoff values → β.
//
// Errors:
//   - ErrInvalidStrategySet, ErrInvalidPopulationSize, ErrPayoffShape,
//     matrix.ErrNaNInf, ErrInvalidBeta.
//
// Complexity: O(instances·|S|²).
func (m Model) Validate() error {
	if len(m.Strategies) < 1 {
		return fmt.Errorf("Validate: %d strategies: %w", len(m.Strategies), ErrInvalidStrategySet)
	}
	seen := make(map[string]struct{}, len(m.Strategies))
	for _, s := range m.Strategies {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("Validate: duplicate strategy %q: %w", s, ErrInvalidStrategySet)
		}
		seen[s] = struct{}{}
	}
	if m.Population < 2 {
		return fmt.Errorf("Validate: Z=%d: %w", m.Population, ErrInvalidPopulationSize)
	}
	if m.Payoffs == nil {
		return fmt.Errorf("Validate: nil payoffs: %w", ErrPayoffShape)
	}
	k, r, c := m.Payoffs.Shape()
	if r != len(m.Strategies) || c != len(m.Strategies) {
		return fmt.Errorf("Validate: payoffs %dx%dx%d for %d strategies: %w", k, r, c, len(m.Strategies), ErrPayoffShape)
	}
	if err := matrix.ValidateBatchFinite(m.Payoffs); err != nil {
		return fmt.Errorf("Validate: payoffs: %w", err)
	}
	if len(m.Beta) != 1 && len(m.Beta) != k {
		return fmt.Errorf("Validate: %d beta values for %d instances: %w", len(m.Beta), k, ErrInvalidBeta)
	}
	for i, b := range m.Beta {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("Validate: beta[%d]=%g: %w", i, b, ErrInvalidBeta)
		}
	}

	return nil
}

// divisor is the number of competing mutant strategies, floored at 1 so a
// singleton strategy set never divides by zero.
func (m Model) divisor() float64 {
	return math.Max(1, float64(len(m.Strategies)-1))
}
