// SPDX-License-Identifier: MIT

// Package matrix - Batch storage: a stack of equally shaped matrices.
//
// Purpose:
//   - Hold many independent model instances (payoff tensors, transition
//     matrices) in ONE flat buffer of shape k × r × c, offset = m*r*c + i*c + j.
//   - Give workers disjoint, write-once cells per (instance, row, col) so the
//     instances axis can be sharded without locks.
//
// Complexity quicksheet:
//   - NewBatch: O(k*r*c); At/Set: O(1); Matrix(m): O(r*c); Clone: O(k*r*c).

package matrix

import (
	"fmt"
	"math"
)

const (
	ctxBatchAt     = "At"
	ctxBatchSet    = "Set"
	ctxBatchMatrix = "Matrix"
	ctxBatchSlices = "NewBatchFromSlices"
)

// batchErrorf wraps an error with a uniform Batch context and callsite indices.
func batchErrorf(method string, inst, row, col int, err error) error {
	return fmt.Errorf("Batch.%s(%d,%d,%d): %w", method, inst, row, col, err)
}

// Batch is a row-major stack of k matrices, each r×c.
type Batch struct {
	k, r, c        int       // instances, rows, cols (all > 0)
	data           []float64 // len == k*r*c
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// NewBatch allocates k zero matrices of shape r×c.
// Implementation:
//   - Stage 1: validate k, r, c > 0; else ErrInvalidDimensions.
//   - Stage 2: allocate one flat zero buffer; set numeric policy.
//
// Complexity:
//   - Time O(k*r*c), Space O(k*r*c).
func NewBatch(k, rows, cols int, opts ...Option) (*Batch, error) {
	if k <= 0 || rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Batch{
		k:              k,
		r:              rows,
		c:              cols,
		data:           make([]float64, k*rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewBatchFromSlices copies a [instance][row][col] tensor into a new Batch.
// Every instance must have the same rectangular shape.
//
// Errors:
//   - ErrInvalidDimensions (empty), ErrDimensionMismatch (ragged), ErrNaNInf.
//
// Complexity:
//   - Time O(k*r*c), Space O(k*r*c).
func NewBatchFromSlices(src [][][]float64, opts ...Option) (*Batch, error) {
	if len(src) == 0 || len(src[0]) == 0 || len(src[0][0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxBatchSlices, ErrInvalidDimensions)
	}
	b, err := NewBatch(len(src), len(src[0]), len(src[0][0]), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxBatchSlices, err)
	}
	var m, i, j int
	for m = 0; m < b.k; m++ {
		if len(src[m]) != b.r {
			return nil, fmt.Errorf("%s: instance %d: %w", ctxBatchSlices, m, ErrDimensionMismatch)
		}
		for i = 0; i < b.r; i++ {
			if len(src[m][i]) != b.c {
				return nil, fmt.Errorf("%s: instance %d row %d: %w", ctxBatchSlices, m, i, ErrDimensionMismatch)
			}
			for j = 0; j < b.c; j++ {
				if err = b.Set(m, i, j, src[m][i][j]); err != nil {
					return nil, fmt.Errorf("%s: %w", ctxBatchSlices, err)
				}
			}
		}
	}

	return b, nil
}

// Len returns the number of instances k.
func (b *Batch) Len() int { return b.k }

// Rows returns the per-instance row count.
func (b *Batch) Rows() int { return b.r }

// Cols returns the per-instance column count.
func (b *Batch) Cols() int { return b.c }

// Shape returns (instances, rows, cols).
func (b *Batch) Shape() (k, rows, cols int) { return b.k, b.r, b.c }

// indexOf computes the flat offset or returns ErrOutOfRange.
func (b *Batch) indexOf(inst, row, col int) (int, error) {
	if inst < 0 || inst >= b.k || row < 0 || row >= b.r || col < 0 || col >= b.c {
		return 0, ErrOutOfRange
	}

	return inst*b.r*b.c + row*b.c + col, nil
}

// At returns the value at (inst, row, col) or ErrOutOfRange.
// Complexity: O(1).
func (b *Batch) At(inst, row, col int) (float64, error) {
	off, err := b.indexOf(inst, row, col)
	if err != nil {
		return 0, batchErrorf(ctxBatchAt, inst, row, col, err)
	}

	return b.data[off], nil
}

// Set stores v at (inst, row, col), enforcing bounds and the numeric policy.
// Complexity: O(1).
func (b *Batch) Set(inst, row, col int, v float64) error {
	off, err := b.indexOf(inst, row, col)
	if err != nil {
		return batchErrorf(ctxBatchSet, inst, row, col, err)
	}
	if b.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return batchErrorf(ctxBatchSet, inst, row, col, ErrNaNInf)
	}
	b.data[off] = v

	return nil
}

// Matrix copies instance inst into a new *Dense with the same numeric policy.
// Complexity: Time O(r*c), Space O(r*c).
func (b *Batch) Matrix(inst int) (*Dense, error) {
	if inst < 0 || inst >= b.k {
		return nil, batchErrorf(ctxBatchMatrix, inst, 0, 0, ErrOutOfRange)
	}
	d := &Dense{r: b.r, c: b.c, data: make([]float64, b.r*b.c), validateNaNInf: b.validateNaNInf}
	copy(d.data, b.data[inst*b.r*b.c:(inst+1)*b.r*b.c])

	return d, nil
}

// RawSlices returns a [instance][row][col] copy of the batch.
// Complexity: Time O(k*r*c), Space O(k*r*c).
func (b *Batch) RawSlices() [][][]float64 {
	out := make([][][]float64, b.k)
	var m, i, base int
	for m = 0; m < b.k; m++ {
		out[m] = make([][]float64, b.r)
		for i = 0; i < b.r; i++ {
			base = m*b.r*b.c + i*b.c
			out[m][i] = make([]float64, b.c)
			copy(out[m][i], b.data[base:base+b.c])
		}
	}

	return out
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: Time O(k*r*c), Space O(k*r*c).
func (b *Batch) Clone() *Batch {
	cp := make([]float64, len(b.data))
	copy(cp, b.data)

	return &Batch{k: b.k, r: b.r, c: b.c, data: cp, validateNaNInf: b.validateNaNInf}
}

// Equal reports whether o has the same shape and bitwise-equal cells.
func (b *Batch) Equal(o *Batch) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.k != o.k || b.r != o.r || b.c != o.c {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}

	return true
}
