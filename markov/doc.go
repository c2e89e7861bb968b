// Package markov builds the monomorphic-state Markov chain of a finite,
// well-mixed population under pairwise Fermi imitation and extracts its
// stationary (ergodic) distribution.
//
// Under rare mutation the population is almost always monomorphic. A mutant
// either dies out or takes over before the next mutation arrives, so the
// dynamics reduce to a chain over the |S| monomorphic states:
//
//   - BuildFixationMatrix: ρ(a invades b) for every ordered strategy pair.
//   - BuildTransitionMatrix: T[m,b,a] = ρ(a invades b)/max(1,|S|−1), with the
//     diagonal as the residual so every row sums to 1.
//   - ErgodicDistribution: the left unit eigenvector of T, normalized.
//   - Analyze: all of the above in order, plus an irreducibility flag.
//
// Batching and concurrency:
//
//   - Every function works on a batch of independent instances (same Z and
//     strategy set, different payoffs and β). The instances axis is split into
//     contiguous shards processed by WithWorkers(n) goroutines; each shard
//     writes its own cells, so no locking is needed.
//   - ctx is checked once per strategy pair in the builder and once per
//     instance in the solver.
//
// Eigenvalue selection:
//
//   - A reducible chain can have several unit eigenvalues. By default the
//     first in the eigensolver's native order is used and a warning is logged;
//     WithStrictErgodicity turns this into ErrReducibleChain.
//   - The chosen eigenvector must be uniformly signed up to noise; otherwise
//     ErrMixedSignEigenvector is returned instead of a meaningless vector.
package markov
