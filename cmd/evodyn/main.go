// SPDX-License-Identifier: MIT

// Command evodyn analyzes finite-population evolutionary games: it builds the
// monomorphic-state transition matrix of a batch of games and reports the
// ergodic distribution over strategies.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/evodyn/config"
	"github.com/katalvlaran/evodyn/logging"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is the resolved runtime configuration shared by subcommands.
type env struct {
	settings config.Settings
	logger   *slog.Logger
	json     bool
}

func newRootCmd() *cobra.Command {
	e := &env{}
	rootCmd := &cobra.Command{
		Use:   "evodyn",
		Short: "Evolutionary dynamics of finite populations",
		Long: `evodyn computes fixation probabilities, monomorphic-state transition
matrices and ergodic strategy distributions for batches of two-player games
played in a well-mixed finite population under Fermi imitation.

Runtime defaults come from EVODYN_* environment variables; flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.resolve(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: error, warn, info, debug, trace (default $EVODYN_LOG_LEVEL or info)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database for analysis history (default $EVODYN_DB)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAnalyzeCmd(e),
		newFixationCmd(e),
		newHistoryCmd(e),
		newShowCmd(e),
	)

	return rootCmd
}

// resolve loads env settings and applies flag overrides.
func (e *env) resolve(cmd *cobra.Command) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("db") {
		s.DB, _ = flags.GetString("db")
	}
	if f := flags.Lookup("workers"); f != nil && f.Changed {
		s.Workers, _ = flags.GetInt("workers")
	}
	if f := flags.Lookup("strict-rates"); f != nil && f.Changed {
		s.StrictRates, _ = flags.GetBool("strict-rates")
	}
	if f := flags.Lookup("strict-ergodicity"); f != nil && f.Changed {
		s.StrictErgodicity, _ = flags.GetBool("strict-ergodicity")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	e.settings = s
	e.json, _ = flags.GetBool("json")
	e.logger = logging.New(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "evodyn version %s\n", version)
			return nil
		},
	}
}
