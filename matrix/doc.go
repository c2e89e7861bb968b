// Package matrix provides the dense linear-algebra primitives used by the
// evolutionary-dynamics packages.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Batch, a stack of equally shaped matrices (instances × rows × cols)
//     stored in one flat buffer, used for vectorized work over many
//     independent model instances.
//   - Validators (square, finite, row-stochastic) shared by all kernels.
//   - Transpose, MatVec and EigenGeneral (eigen decomposition of a general
//     real square matrix, backed by gonum's LAPACK port).
//
// Errors are package sentinels (errors.go) matched with errors.Is.
package matrix
