// SPDX-License-Identifier: MIT
package fixation_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/evodyn/fixation"
)

// constant builds a rate sequence of length z+1 filled with v.
func constant(z int, v float64) []float64 {
	out := make([]float64, z+1)
	for k := range out {
		out[k] = v
	}
	return out
}

// RateSuite groups closed-form checks for the fixation solver.
type RateSuite struct {
	suite.Suite
}

// TestNeutralDriftTwoState: equal gain/loss over counts 0..2 gives 1/2.
func (s *RateSuite) TestNeutralDriftTwoState() {
	rho, err := fixation.Single(constant(2, 0.1), constant(2, 0.1))
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 0.5, rho, 1e-15)
}

// TestNeutralDriftIsOneOverZ: neutral drift fixes with probability 1/Z.
func (s *RateSuite) TestNeutralDriftIsOneOverZ() {
	for _, z := range []int{2, 3, 5, 10, 100} {
		rho, err := fixation.Single(constant(z, 0.2), constant(z, 0.2))
		require.NoError(s.T(), err)
		require.InDelta(s.T(), 1/float64(z), rho, 1e-12, "Z=%d", z)
	}
}

// TestLossTwiceGainThreeCounts: ratio 2 over counts 0..2 → 1/(1+2) = 1/3.
func (s *RateSuite) TestLossTwiceGainThreeCounts() {
	rho, err := fixation.Single(constant(2, 0.1), constant(2, 0.2))
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 1.0/3.0, rho, 1e-15)
}

// TestLossTwiceGainPopulationThree: ratio 2 with Z=3 → 1/(1+2+4) = 1/7.
func (s *RateSuite) TestLossTwiceGainPopulationThree() {
	rho, err := fixation.Single(constant(3, 0.1), constant(3, 0.2))
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 1.0/7.0, rho, 1e-15)
}

// TestDegeneratePopulationIsCertain: Z=1 and Z=0 have an empty sum.
func (s *RateSuite) TestDegeneratePopulationIsCertain() {
	rho, err := fixation.Single(constant(1, 0), constant(1, 0))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1.0, rho)

	rho, err = fixation.Single([]float64{0}, []float64{0})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1.0, rho)
}

// TestBatched: instances are independent columns.
func (s *RateSuite) TestBatched() {
	tplus := [][]float64{{0, 0}, {0.1, 0.1}, {0, 0}}
	tneg := [][]float64{{0, 0}, {0.1, 0.2}, {0, 0}}
	rho, err := fixation.Rate(tplus, tneg)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 0.5, rho[0], 1e-15)
	require.InDelta(s.T(), 1.0/3.0, rho[1], 1e-15)
}

// TestZeroProductSkipsRemainingCounts: once T⁻ vanishes, a later T⁺=0 is harmless.
func (s *RateSuite) TestZeroProductSkipsRemainingCounts() {
	tplus := []float64{0, 0.2, 0, 0}
	tneg := []float64{0, 0, 0.3, 0}
	rho, err := fixation.Single(tplus, tneg, fixation.WithStrict())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1.0, rho)
}

// TestSaturatePolicy: x/0 propagates to +Inf and ρ = 0 exactly.
func (s *RateSuite) TestSaturatePolicy() {
	tplus := []float64{0, 0.1, 0, 0}
	tneg := []float64{0, 0.1, 0.1, 0}
	rho, err := fixation.Single(tplus, tneg)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0.0, rho)
}

// TestStrictPolicy: the same input is reported with its location.
func (s *RateSuite) TestStrictPolicy() {
	tplus := [][]float64{{0, 0}, {0.1, 0.1}, {0.1, 0}, {0, 0}}
	tneg := [][]float64{{0, 0}, {0.1, 0.1}, {0.1, 0.1}, {0, 0}}
	_, err := fixation.Rate(tplus, tneg, fixation.WithStrict())
	require.ErrorIs(s.T(), err, fixation.ErrDegenerateRate)

	var de *fixation.DegenerateRateError
	require.True(s.T(), errors.As(err, &de))
	require.Equal(s.T(), 1, de.Instance)
	require.Equal(s.T(), 2, de.Count)
}

// TestZeroOverZeroAlwaysFails: 0/0 has no limit under either policy.
func (s *RateSuite) TestZeroOverZeroAlwaysFails() {
	tplus := []float64{0, 0.1, 0, 0}
	tneg := []float64{0, 0.1, 0, 0}
	_, err := fixation.Single(tplus, tneg)
	require.ErrorIs(s.T(), err, fixation.ErrDegenerateRate)
}

// TestOverflowingSumSaturates: a huge ratio overflows the sum to +Inf.
func (s *RateSuite) TestOverflowingSumSaturates() {
	z := 400
	tplus := constant(z, 1e-300)
	tneg := constant(z, 1)
	rho, err := fixation.Single(tplus, tneg)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0.0, rho)
}

// TestShapeErrors covers empty, mismatched and ragged inputs.
func (s *RateSuite) TestShapeErrors() {
	_, err := fixation.Rate(nil, nil)
	require.ErrorIs(s.T(), err, fixation.ErrShape)

	_, err = fixation.Rate([][]float64{{1}, {1}}, [][]float64{{1}})
	require.ErrorIs(s.T(), err, fixation.ErrShape)

	_, err = fixation.Rate([][]float64{{1, 1}, {1}}, [][]float64{{1, 1}, {1, 1}})
	require.ErrorIs(s.T(), err, fixation.ErrShape)

	_, err = fixation.Rate([][]float64{{}}, [][]float64{{}})
	require.ErrorIs(s.T(), err, fixation.ErrShape)
}

// TestInvalidRates rejects negative and NaN probabilities.
func (s *RateSuite) TestInvalidRates() {
	_, err := fixation.Single([]float64{0, -0.1, 0}, []float64{0, 0.1, 0})
	require.ErrorIs(s.T(), err, fixation.ErrInvalidRate)

	_, err = fixation.Single([]float64{0, 0.1, 0}, []float64{0, math.NaN(), 0})
	require.ErrorIs(s.T(), err, fixation.ErrInvalidRate)
}

// TestInstanceOffset shifts every reported index by the offset.
func (s *RateSuite) TestInstanceOffset() {
	tplus := [][]float64{{0, 0}, {0.1, math.NaN()}, {0, 0}}
	tneg := [][]float64{{0, 0}, {0.1, 0.1}, {0, 0}}
	_, err := fixation.Rate(tplus, tneg, fixation.WithInstanceOffset(4))
	require.ErrorIs(s.T(), err, fixation.ErrInvalidRate)
	require.ErrorContains(s.T(), err, "instance 5 count 1")

	tplus = [][]float64{{0, 0}, {0.1, 0}, {0, 0}}
	_, err = fixation.Rate(tplus, tneg, fixation.WithStrict(), fixation.WithInstanceOffset(4))
	var de *fixation.DegenerateRateError
	require.True(s.T(), errors.As(err, &de))
	require.Equal(s.T(), 5, de.Instance)

	require.Panics(s.T(), func() { fixation.WithInstanceOffset(-1) })
}

func TestRateSuite(t *testing.T) {
	suite.Run(t, new(RateSuite))
}

func TestWithPolicy_PanicsOnUnknown(t *testing.T) {
	require.Panics(t, func() { fixation.WithPolicy(fixation.Policy(7)) })
	require.Equal(t, "saturate", fixation.Saturate.String())
	require.Equal(t, "strict", fixation.Strict.String())
}
