// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/evodyn/config"
	"github.com/katalvlaran/evodyn/markov"
)

func newFixationCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixation <model.yaml>",
		Short: "Print pairwise fixation probabilities",
		Long: `Fixation prints, for every game, the matrix F where F[a][b] is the
probability that a single a-mutant takes over a population of b-players.
Neutral drift corresponds to 1/Z.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := config.LoadModel(args[0])
			if err != nil {
				return err
			}
			model, err := mf.Model()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			fix, err := markov.BuildFixationMatrix(cmd.Context(), model, e.settings.Options(e.logger)...)
			if err != nil {
				return err
			}

			if e.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"population": model.Population,
					"strategies": model.Strategies,
					"instances":  mf.Names(),
					"fixation":   fix.RawSlices(),
				})
			}
			return writeMatrices(cmd.OutOrStdout(), "fixation", model.Strategies, mf.Names(), fix.RawSlices())
		},
	}

	cmd.Flags().Int("workers", 0, "Instance shards solved concurrently (default $EVODYN_WORKERS or GOMAXPROCS)")
	cmd.Flags().Bool("strict-rates", false, "Fail when a fixation rate denominator vanishes instead of saturating")

	return cmd
}
