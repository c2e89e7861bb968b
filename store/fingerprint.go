// SPDX-License-Identifier: MIT

package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/evodyn/markov"
)

// canonicalModel fixes the field order of the hashed document.
type canonicalModel struct {
	Population int           `json:"population"`
	Strategies []string      `json:"strategies"`
	Beta       []float64     `json:"beta"`
	Payoffs    [][][]float64 `json:"payoffs"`
	Solver     Solver        `json:"solver"`
}

// Fingerprint returns the hex SHA-256 of the canonical JSON encoding of the
// model and the solver settings. Two runs share a fingerprint only when the
// population, strategies, β, payoffs and solver settings all agree; instance
// names do not take part.
func Fingerprint(m markov.Model, solver Solver) (string, error) {
	if m.Payoffs == nil {
		return "", fmt.Errorf("fingerprint: %w", markov.ErrPayoffShape)
	}
	data, err := json.Marshal(canonicalModel{
		Population: m.Population,
		Strategies: m.Strategies,
		Beta:       m.Beta,
		Payoffs:    m.Payoffs.RawSlices(),
		Solver:     solver,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:]), nil
}
