// Package evodyn computes the long-run behavior of finite, well-mixed
// populations playing two-player games under pairwise Fermi imitation.
//
// What it computes
//
//	For a batch of games (same population size Z and strategy set S,
//	per-game payoffs and selection strength β):
//		• fixation probabilities of a single mutant for every strategy pair
//		• the |S|×|S| transition matrix between monomorphic states
//		• the ergodic (stationary) distribution over strategies
//
// All quantities are exact: closed-form fixation probabilities and an eigen
// decomposition of the transition matrix. Nothing is simulated.
//
// Packages
//
//	learning/   Fermi comparison rule, scalar and broadcast over instances
//	fixation/   closed-form fixation probability of a birth–death chain
//	markov/     model, transition-matrix builder, ergodic solver, Analyze
//	matrix/     Dense, Batch, validators, Transpose/MatVec, general eigensolver
//	config/     YAML model files and EVODYN_* environment settings
//	logging/    leveled slog loggers (with a TRACE level)
//	store/      SQLite history of analyses keyed by model fingerprint
//	cmd/evodyn  command-line front end
//
// Quick example (prisoner's dilemma, Z = 50, β = 1):
//
//	payoffs, _ := matrix.NewBatchFromSlices([][][]float64{{{3, 0}, {5, 1}}})
//	a, err := markov.Analyze(ctx, markov.Model{
//		Population: 50,
//		Strategies: []string{"C", "D"},
//		Beta:       []float64{1},
//		Payoffs:    payoffs,
//	})
//	// a.Ergodic row 0 puts almost all weight on D.
//
// Concurrency
//
//	Work is sharded over the instances axis (markov.WithWorkers); each shard
//	writes disjoint cells. Every blocking entry point takes a context.Context.
package evodyn
