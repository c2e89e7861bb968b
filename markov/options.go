// SPDX-License-Identifier: MIT

package markov

import (
	"log/slog"
	"math"
	"runtime"

	"github.com/katalvlaran/evodyn/fixation"
	"github.com/katalvlaran/evodyn/logging"
	"github.com/katalvlaran/evodyn/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultUnitTolerance bounds |λ − 1| for an eigenvalue to count as the unit eigenvalue.
	DefaultUnitTolerance = 1e-8

	// DefaultSignTolerance is the relative magnitude (w.r.t. max|v|) below which
	// an eigenvector entry is treated as numerical noise by the sign guard.
	DefaultSignTolerance = 1e-8

	// DefaultEpsilon is the row-sum tolerance of the row-stochastic input check.
	DefaultEpsilon = matrix.DefaultEpsilon
)

const (
	panicWorkers   = "markov: WithWorkers: n must be >= 1"
	panicTolerance = "markov: tolerance must be finite and > 0"
)

// Option configures the builder, the solver and Analyze.
type Option func(*Options)

// Options holds the effective configuration. Fields are unexported; use WithX.
type Options struct {
	workers          int             // instance shards processed concurrently
	logger           *slog.Logger    // never nil after gatherOptions
	ratePolicy       fixation.Policy // degenerate T⁺ handling
	unitTol          float64         // |λ-1| threshold
	signTol          float64         // relative sign-noise threshold
	eps              float64         // row-stochastic tolerance
	strictErgodicity bool            // fail on a non-simple unit eigenvalue
	checkStochastic  bool            // validate solver input
}

// WithWorkers sets how many instance shards run concurrently.
// Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger sets the structured logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithRatePolicy selects the fixation solver's degenerate-rate policy.
func WithRatePolicy(p fixation.Policy) Option {
	_ = fixation.WithPolicy(p) // validates p
	return func(o *Options) { o.ratePolicy = p }
}

// WithStrictRates is shorthand for WithRatePolicy(fixation.Strict).
func WithStrictRates() Option { return WithRatePolicy(fixation.Strict) }

// WithUnitTolerance sets the |λ − 1| threshold. Panics unless tol is finite and > 0.
func WithUnitTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.unitTol = tol }
}

// WithSignTolerance sets the relative sign-noise threshold. Panics unless tol is finite and > 0.
func WithSignTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.signTol = tol }
}

// WithEpsilon sets the row-stochastic tolerance. Panics unless eps is finite and > 0.
func WithEpsilon(eps float64) Option {
	mustTolerance(eps)
	return func(o *Options) { o.eps = eps }
}

// WithStrictErgodicity makes a non-simple unit eigenvalue an error
// (ErrReducibleChain) instead of picking the first one.
func WithStrictErgodicity() Option {
	return func(o *Options) { o.strictErgodicity = true }
}

// WithoutStochasticCheck skips the row-stochastic validation of solver input.
func WithoutStochasticCheck() Option {
	return func(o *Options) { o.checkStochastic = false }
}

func mustTolerance(tol float64) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolerance)
	}
}

// gatherOptions applies setters over defaults (last writer wins).
func gatherOptions(opts ...Option) Options {
	o := Options{
		workers:         runtime.GOMAXPROCS(0),
		ratePolicy:      fixation.DefaultPolicy,
		unitTol:         DefaultUnitTolerance,
		signTol:         DefaultSignTolerance,
		eps:             DefaultEpsilon,
		checkStochastic: true,
	}
	for _, set := range opts {
		set(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	return o
}
