// SPDX-License-Identifier: MIT

// Package store persists completed analyses in a SQLite database so repeated
// runs over an identical model can reuse the stored result.
package store

import (
	"errors"
	"time"

	"github.com/katalvlaran/evodyn/markov"
	"github.com/katalvlaran/evodyn/matrix"
)

var (
	// ErrNotFound is returned when no analysis matches the lookup.
	ErrNotFound = errors.New("store: analysis not found")

	// ErrSchemaVersion is returned for a database written by a newer schema.
	ErrSchemaVersion = errors.New("store: unsupported schema version")
)

// Solver holds the solver settings that can change the outcome of an
// analysis. Worker count and logging never do and are left out.
type Solver struct {
	StrictRates      bool    `json:"strict_rates"`
	StrictErgodicity bool    `json:"strict_ergodicity"`
	UnitTolerance    float64 `json:"unit_tolerance"`
}

// Record is one stored analysis.
type Record struct {
	ID          string
	CreatedAt   time.Time
	Fingerprint string
	Solver      Solver
	Population  int
	Strategies  []string
	Names       []string // instance names, may be empty
	Beta        []float64
	Payoffs     [][][]float64
	Transitions [][][]float64
	Ergodic     [][]float64
	Irreducible []bool // empty for records written before it was stored
}

// Summary is the listing view of a Record.
type Summary struct {
	ID          string
	CreatedAt   time.Time
	Fingerprint string
	Population  int
	Strategies  []string
	Instances   int
}

// NewRecord flattens an analysis computed under solver into a Record.
// ID and CreatedAt are assigned by Save.
func NewRecord(a *markov.Analysis, names []string, solver Solver) (*Record, error) {
	fp, err := Fingerprint(a.Model, solver)
	if err != nil {
		return nil, err
	}

	return &Record{
		Fingerprint: fp,
		Solver:      solver,
		Population:  a.Model.Population,
		Strategies:  append([]string(nil), a.Model.Strategies...),
		Names:       append([]string{}, names...),
		Beta:        append([]float64(nil), a.Model.Beta...),
		Payoffs:     a.Model.Payoffs.RawSlices(),
		Transitions: a.Transitions.RawSlices(),
		Ergodic:     a.Ergodic.RawRows(),
		Irreducible: append([]bool{}, a.Irreducible...),
	}, nil
}

// Analysis rebuilds the model, transitions, ergodic distribution and
// irreducibility flags of a stored record. Fixation is not stored.
func (r *Record) Analysis() (*markov.Analysis, error) {
	payoffs, err := matrix.NewBatchFromSlices(r.Payoffs)
	if err != nil {
		return nil, err
	}
	transitions, err := matrix.NewBatchFromSlices(r.Transitions)
	if err != nil {
		return nil, err
	}
	ergodic, err := matrix.NewDenseFromRows(r.Ergodic)
	if err != nil {
		return nil, err
	}
	var irreducible []bool
	if len(r.Irreducible) > 0 {
		irreducible = append(irreducible, r.Irreducible...)
	}

	return &markov.Analysis{
		Model: markov.Model{
			Population: r.Population,
			Strategies: append([]string(nil), r.Strategies...),
			Beta:       append([]float64(nil), r.Beta...),
			Payoffs:    payoffs,
		},
		Transitions: transitions,
		Ergodic:     ergodic,
		Irreducible: irreducible,
	}, nil
}
