// SPDX-License-Identifier: MIT

// Package config loads evodyn inputs: model files (YAML) describing a batch of
// games, and runtime settings read from EVODYN_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/evodyn/markov"
	"github.com/katalvlaran/evodyn/matrix"
)

// ErrModelFile is returned for a model file that parses but cannot describe a
// batch of games (no instances, ragged payoff rows).
var ErrModelFile = errors.New("config: invalid model file")

// ModelFile is the on-disk description of a batch of games.
//
//	population: 50
//	strategies: [C, D]
//	beta: 1.0            # scalar, or one value per instance
//	instances:
//	  - name: pd
//	    payoffs: [[3, 0], [5, 1]]
type ModelFile struct {
	Population int        `json:"population" yaml:"population"`
	Strategies []string   `json:"strategies" yaml:"strategies"`
	Beta       Betas      `json:"beta" yaml:"beta"`
	Instances  []Instance `json:"instances" yaml:"instances"`
}

// Instance is one game of the batch.
type Instance struct {
	Name    string      `json:"name,omitempty" yaml:"name,omitempty"`
	Payoffs [][]float64 `json:"payoffs" yaml:"payoffs"`
}

// Betas accepts either a scalar or a list of selection strengths.
type Betas []float64

// UnmarshalYAML decodes `beta: 1.5` as [1.5] and `beta: [1, 2]` as [1, 2].
func (b *Betas) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("beta: %w", err)
		}
		*b = Betas{v}
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return fmt.Errorf("beta: %w", err)
		}
		*b = vs
	default:
		return fmt.Errorf("beta: line %d: expected a number or a list of numbers", node.Line)
	}

	return nil
}

// LoadModel reads and parses a YAML model file.
func LoadModel(path string) (*ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	mf, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf, nil
}

// ParseModel parses a YAML model document. Unknown keys are rejected.
func ParseModel(data []byte) (*ModelFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	mf := &ModelFile{}
	if err := dec.Decode(mf); err != nil {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}

	return mf, nil
}

// Names returns the instance names, defaulting unnamed instances to "#i".
func (mf *ModelFile) Names() []string {
	out := make([]string, len(mf.Instances))
	for i, inst := range mf.Instances {
		out[i] = inst.Name
		if out[i] == "" {
			out[i] = fmt.Sprintf("#%d", i)
		}
	}

	return out
}

// Model converts the file into a markov.Model. Shape and value checks beyond
// rectangularity are left to markov.Model.Validate.
func (mf *ModelFile) Model() (markov.Model, error) {
	if len(mf.Instances) == 0 {
		return markov.Model{}, fmt.Errorf("no instances: %w", ErrModelFile)
	}
	src := make([][][]float64, len(mf.Instances))
	for i, inst := range mf.Instances {
		src[i] = inst.Payoffs
	}
	payoffs, err := matrix.NewBatchFromSlices(src)
	if err != nil {
		return markov.Model{}, fmt.Errorf("payoffs: %w: %w", ErrModelFile, err)
	}

	return markov.Model{
		Population: mf.Population,
		Strategies: append([]string(nil), mf.Strategies...),
		Beta:       append([]float64(nil), mf.Beta...),
		Payoffs:    payoffs,
	}, nil
}
