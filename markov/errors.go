// SPDX-License-Identifier: MIT

package markov

import "errors"

// Sentinel errors for model validation and chain analysis.
// Structural errors are fatal input defects; numeric errors indicate that the
// transition matrix does not describe a chain with a usable stationary law.
var (
	// ErrInvalidStrategySet is returned for an empty or duplicated strategy set.
	ErrInvalidStrategySet = errors.New("markov: strategy set must hold at least one distinct strategy")

	// ErrInvalidPopulationSize is returned when the population size is below 2.
	ErrInvalidPopulationSize = errors.New("markov: population size must be at least 2")

	// ErrPayoffShape is returned when the payoff batch is missing or is not
	// instances × |S| × |S|.
	ErrPayoffShape = errors.New("markov: payoff tensor shape does not match the strategy set")

	// ErrInvalidBeta is returned when β has the wrong length or a non-finite entry.
	ErrInvalidBeta = errors.New("markov: selection strength must be finite, scalar or one per instance")

	// ErrNoStationaryDistribution is returned when no eigenvalue lies within
	// tolerance of 1.
	ErrNoStationaryDistribution = errors.New("markov: no unit eigenvalue found")

	// ErrReducibleChain is returned under WithStrictErgodicity when the unit
	// eigenvalue is not simple.
	ErrReducibleChain = errors.New("markov: unit eigenvalue is not simple (reducible chain)")

	// ErrMixedSignEigenvector is returned when the selected unit eigenvector has
	// entries of both signs beyond tolerance, so no probability vector can be
	// derived from it.
	ErrMixedSignEigenvector = errors.New("markov: unit eigenvector has mixed signs")
)
