// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/evodyn/markov"
	"github.com/katalvlaran/evodyn/store"
)

// Settings are the runtime knobs read from the environment. Command-line flags
// override them.
type Settings struct {
	// LogLevel is "error", "warn", "info", "debug" or "trace".
	LogLevel string `env:"EVODYN_LOG_LEVEL" envDefault:"info"`

	// LogFormat is "text" or "json".
	LogFormat string `env:"EVODYN_LOG_FORMAT" envDefault:"text"`

	// Workers is the number of instance shards solved concurrently; 0 means GOMAXPROCS.
	Workers int `env:"EVODYN_WORKERS" envDefault:"0"`

	// DB is the SQLite file analyses are stored in; empty disables persistence.
	DB string `env:"EVODYN_DB"`

	// UnitTolerance bounds |λ − 1| for the stationary eigenvalue.
	UnitTolerance float64 `env:"EVODYN_UNIT_TOLERANCE" envDefault:"1e-8"`

	// StrictRates turns a vanishing T⁺ into an error instead of ρ = 0.
	StrictRates bool `env:"EVODYN_STRICT_RATES" envDefault:"false"`

	// StrictErgodicity turns a repeated unit eigenvalue into an error.
	StrictErgodicity bool `env:"EVODYN_STRICT_ERGODICITY" envDefault:"false"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate rejects values the analysis options would panic on.
func (s Settings) Validate() error {
	if s.Workers < 0 {
		return fmt.Errorf("EVODYN_WORKERS must be >= 0, got %d", s.Workers)
	}
	if !(s.UnitTolerance > 0) || math.IsInf(s.UnitTolerance, 1) {
		return fmt.Errorf("EVODYN_UNIT_TOLERANCE must be finite and > 0, got %g", s.UnitTolerance)
	}

	return nil
}

// Options translates the settings into markov options.
func (s Settings) Options(logger *slog.Logger) []markov.Option {
	workers := s.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	opts := []markov.Option{
		markov.WithWorkers(workers),
		markov.WithUnitTolerance(s.UnitTolerance),
		markov.WithLogger(logger),
	}
	if s.StrictRates {
		opts = append(opts, markov.WithStrictRates())
	}
	if s.StrictErgodicity {
		opts = append(opts, markov.WithStrictErgodicity())
	}

	return opts
}

// Solver returns the settings that decide whether a stored analysis can be
// reused for this run.
func (s Settings) Solver() store.Solver {
	return store.Solver{
		StrictRates:      s.StrictRates,
		StrictErgodicity: s.StrictErgodicity,
		UnitTolerance:    s.UnitTolerance,
	}
}
