// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/evodyn/store"
)

func (e *env) openStore(cmd *cobra.Command) (*store.Store, error) {
	if e.settings.DB == "" {
		return nil, fmt.Errorf("no database configured: pass --db or set EVODYN_DB")
	}
	return store.Open(cmd.Context(), e.settings.DB)
}

func newHistoryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			db, err := e.openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			list, err := db.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if e.json {
				if list == nil {
					list = []store.Summary{}
				}
				return writeJSON(cmd.OutOrStdout(), list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses stored.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "id\tcreated\tpopulation\tinstances\tstrategies\tfingerprint")
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%.12s\n",
					s.ID, s.CreatedAt.Local().Format(time.DateTime), s.Population, s.Instances,
					strings.Join(s.Strategies, ","), s.Fingerprint)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of analyses to list (0 for all)")

	return cmd
}

func newShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			rec, err := db.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a, err := rec.Analysis()
			if err != nil {
				return err
			}
			r := newReport(a, rec.Names)
			r.ID, r.Fingerprint = rec.ID, rec.Fingerprint
			if err := e.print(cmd, r); err != nil {
				return err
			}
			if e.json {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return writeMatrices(cmd.OutOrStdout(), "transitions", a.Model.Strategies, rec.Names, a.Transitions.RawSlices())
		},
	}
}
