// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/evodyn/markov"
)

// instanceReport is the per-game part of an analysis report.
type instanceReport struct {
	Name        string      `json:"name"`
	Beta        float64     `json:"beta"`
	Ergodic     []float64   `json:"ergodic"`
	Dominant    string      `json:"dominant"`
	Irreducible *bool       `json:"irreducible,omitempty"`
	Transitions [][]float64 `json:"transitions"`
}

// report is the CLI view of an analysis.
type report struct {
	ID          string           `json:"id,omitempty"`
	Fingerprint string           `json:"fingerprint,omitempty"`
	Cached      bool             `json:"cached"`
	Population  int              `json:"population"`
	Strategies  []string         `json:"strategies"`
	Instances   []instanceReport `json:"instances"`
}

func newReport(a *markov.Analysis, names []string) report {
	r := report{
		Population: a.Model.Population,
		Strategies: a.Model.Strategies,
	}
	dominant := a.Dominant()
	ergodic := a.Ergodic.RawRows()
	transitions := a.Transitions.RawSlices()
	for m := range ergodic {
		ir := instanceReport{
			Name:        instanceName(names, m),
			Beta:        a.Model.BetaAt(m),
			Ergodic:     ergodic[m],
			Dominant:    a.Model.Strategies[dominant[m]],
			Transitions: transitions[m],
		}
		if m < len(a.Irreducible) {
			irreducible := a.Irreducible[m]
			ir.Irreducible = &irreducible
		}
		r.Instances = append(r.Instances, ir)
	}

	return r
}

func instanceName(names []string, m int) string {
	if m < len(names) && names[m] != "" {
		return names[m]
	}
	return fmt.Sprintf("#%d", m)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if r.ID != "" {
		fmt.Fprintf(tw, "analysis %s", r.ID)
		if r.Cached {
			fmt.Fprint(tw, " (cached)")
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "population %d, %d strategies, %d instances\n\n", r.Population, len(r.Strategies), len(r.Instances))

	fmt.Fprintf(tw, "instance\tbeta\t%s\tdominant\n", strings.Join(r.Strategies, "\t"))
	for _, inst := range r.Instances {
		cells := make([]string, len(inst.Ergodic))
		for j, v := range inst.Ergodic {
			cells[j] = fmt.Sprintf("%.4f", v)
		}
		dominant := inst.Dominant
		if inst.Irreducible != nil && !*inst.Irreducible {
			dominant += " (reducible)"
		}
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\n", inst.Name, inst.Beta, strings.Join(cells, "\t"), dominant)
	}

	return tw.Flush()
}

// writeMatrices prints one labelled |S|×|S| block per instance.
func writeMatrices(w io.Writer, title string, strategies, names []string, data [][][]float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for m, inst := range data {
		fmt.Fprintf(tw, "%s %s\n", title, instanceName(names, m))
		fmt.Fprintf(tw, "\t%s\n", strings.Join(strategies, "\t"))
		for i, row := range inst {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = fmt.Sprintf("%.6g", v)
			}
			fmt.Fprintf(tw, "%s\t%s\n", strategies[i], strings.Join(cells, "\t"))
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
