// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const recordColumns = `id, created_at, fingerprint, solver, population, strategies, names,
	beta, payoffs, transitions, ergodic, irreducible`

// Store is a SQLite-backed analysis history. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens (creating if needed) the database at path. The special path
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer; also keeps :memory: on one connection

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save assigns rec a fresh ID and creation time and inserts it.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.Format(timeLayout), rec.Fingerprint, enc["solver"], rec.Population,
		enc["strategies"], enc["names"], enc["beta"], enc["payoffs"], enc["transitions"],
		enc["ergodic"], enc["irreducible"])
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// Get returns the analysis with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM analyses WHERE id = ?`, id)

	return scanRecord(row, id)
}

// FindByFingerprint returns the most recent analysis of an identical model.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM analyses WHERE fingerprint = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, fingerprint)

	return scanRecord(row, fingerprint)
}

// List returns up to limit summaries, newest first. limit <= 0 lists everything.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, fingerprint, population, strategies, ergodic
		FROM analyses ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum                           Summary
			created, strategies, ergodic string
			erg                           [][]float64
		)
		if err := rows.Scan(&sum.ID, &created, &sum.Fingerprint, &sum.Population, &strategies, &ergodic); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if err := json.Unmarshal([]byte(strategies), &sum.Strategies); err != nil {
			return nil, fmt.Errorf("failed to decode strategies: %w", err)
		}
		if err := json.Unmarshal([]byte(ergodic), &erg); err != nil {
			return nil, fmt.Errorf("failed to decode ergodic: %w", err)
		}
		sum.Instances = len(erg)
		out = append(out, sum)
	}

	return out, rows.Err()
}

func encodeRecord(rec *Record) (map[string]string, error) {
	enc := make(map[string]string, 8)
	for name, v := range map[string]any{
		"solver":      rec.Solver,
		"strategies":  rec.Strategies,
		"names":       nonNil(rec.Names),
		"beta":        rec.Beta,
		"payoffs":     rec.Payoffs,
		"transitions": rec.Transitions,
		"ergodic":     rec.Ergodic,
		"irreducible": nonNil(rec.Irreducible),
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode analysis %s: %w", name, err)
		}
		enc[name] = string(b)
	}

	return enc, nil
}

// nonNil keeps empty columns as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanRecord(row *sql.Row, key string) (*Record, error) {
	var (
		rec                                     Record
		created, solver, strategies, names      string
		beta, payoffs, transitions, ergodic, ir string
	)
	err := row.Scan(&rec.ID, &created, &rec.Fingerprint, &solver, &rec.Population,
		&strategies, &names, &beta, &payoffs, &transitions, &ergodic, &ir)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}
	if rec.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	for _, f := range []struct {
		src string
		dst any
	}{
		{solver, &rec.Solver},
		{strategies, &rec.Strategies},
		{names, &rec.Names},
		{beta, &rec.Beta},
		{payoffs, &rec.Payoffs},
		{transitions, &rec.Transitions},
		{ergodic, &rec.Ergodic},
		{ir, &rec.Irreducible},
	} {
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return nil, fmt.Errorf("failed to decode analysis %s: %w", rec.ID, err)
		}
	}

	return &rec, nil
}
