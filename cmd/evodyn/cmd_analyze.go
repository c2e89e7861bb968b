// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/evodyn/config"
	"github.com/katalvlaran/evodyn/markov"
	"github.com/katalvlaran/evodyn/store"
)

func newAnalyzeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <model.yaml>",
		Short: "Compute transition matrices and ergodic distributions",
		Long: `Analyze builds the monomorphic-state transition matrix of every game in the
model file and prints its ergodic distribution over strategies.

With a database configured (--db or EVODYN_DB) the result is stored, and an
earlier result for an identical model solved under the same strictness and
unit tolerance is reused unless --no-cache is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			ctx := cmd.Context()

			mf, err := config.LoadModel(args[0])
			if err != nil {
				return err
			}
			model, err := mf.Model()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := model.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			var db *store.Store
			if e.settings.DB != "" {
				if db, err = store.Open(ctx, e.settings.DB); err != nil {
					return err
				}
				defer db.Close()
			}

			solver := e.settings.Solver()
			fp, err := store.Fingerprint(model, solver)
			if err != nil {
				return err
			}
			if db != nil && !noCache {
				rec, err := db.FindByFingerprint(ctx, fp)
				switch {
				case err == nil:
					e.logger.Info("reusing stored analysis", "id", rec.ID, "fingerprint", fp)
					a, err := rec.Analysis()
					if err != nil {
						return err
					}
					r := newReport(a, mf.Names())
					r.ID, r.Fingerprint, r.Cached = rec.ID, fp, true
					return e.print(cmd, r)
				case !errors.Is(err, store.ErrNotFound):
					return err
				}
			}

			a, err := markov.Analyze(ctx, model, e.settings.Options(e.logger)...)
			if err != nil {
				return err
			}
			r := newReport(a, mf.Names())
			r.Fingerprint = fp

			if db != nil {
				rec, err := store.NewRecord(a, mf.Names(), solver)
				if err != nil {
					return err
				}
				if err := db.Save(ctx, rec); err != nil {
					return err
				}
				r.ID = rec.ID
				e.logger.Info("analysis stored", "id", rec.ID)
			}

			return e.print(cmd, r)
		},
	}

	cmd.Flags().Int("workers", 0, "Instance shards solved concurrently (default $EVODYN_WORKERS or GOMAXPROCS)")
	cmd.Flags().Bool("strict-rates", false, "Fail when a fixation rate denominator vanishes instead of saturating")
	cmd.Flags().Bool("strict-ergodicity", false, "Fail when the ergodic distribution is not unique")
	cmd.Flags().Bool("no-cache", false, "Recompute even if the database holds an identical model")

	return cmd
}

func (e *env) print(cmd *cobra.Command, r report) error {
	if e.json {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	return r.writeText(cmd.OutOrStdout())
}
