// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report renders search results for a harness to print or persist.
//
// The column layout is {params..., max_conflict, unique_banks} for conflict
// searches and {params..., covered, total} for coverage searches, followed by
// the formula. Consumers should select columns by header name.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-ldsbank/lds/contrib/conflict"
	"github.com/ajroetker/go-ldsbank/lds/contrib/solver"
)

// Header returns the column names for res.
func Header(res solver.Result) []string {
	h := append([]string{"rank"}, res.Params...)
	if res.Objective == solver.MaximizeCoverage {
		h = append(h, "covered", "total")
	} else {
		h = append(h, "max_conflict", "unique_banks")
	}
	return append(h, "formula")
}

// Rows returns one row per candidate, best first, matching Header.
func Rows(res solver.Result) [][]string {
	return lo.Map(res.Candidates, func(c solver.Candidate, i int) []string {
		row := []string{strconv.Itoa(i + 1)}
		for _, name := range res.Params {
			row = append(row, strconv.Itoa(c.Params.Get(name, 0)))
		}
		if res.Objective == solver.MaximizeCoverage {
			row = append(row, strconv.Itoa(c.Coverage.Covered), strconv.Itoa(c.Coverage.Total))
		} else {
			row = append(row, strconv.Itoa(c.Conflict.MaxConflict), strconv.Itoa(c.Conflict.UniqueBanks))
		}
		return append(row, c.Formula.String())
	})
}

// WriteCSV writes res as CSV with a header row.
func WriteCSV(w io.Writer, res solver.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(res)); err != nil {
		return err
	}
	if err := cw.WriteAll(Rows(res)); err != nil {
		return fmt.Errorf("report: writing csv: %w", err)
	}
	return nil
}

// WriteTable writes res as a space-aligned table.
func WriteTable(w io.Writer, res solver.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(Header(res), "\t"))
	for _, row := range Rows(res) {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// WriteHistogram writes the lanes of every touched bank, ascending by bank,
// followed by the conflict summary.
func WriteHistogram(w io.Writer, r conflict.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "bank\tlanes\tcount")
	for _, bank := range r.SortedBanks() {
		lanes := r.Banks[bank]
		fmt.Fprintf(tw, "%d\t%s\t%d\n", bank, joinInts(lanes), len(lanes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	mean, sd := r.Occupancy()
	_, err := fmt.Fprintf(w, "max_conflict=%d unique_banks=%d/%d lanes=%d occupancy=%.2f±%.2f\n",
		r.MaxConflict, r.UniqueBanks, r.BankCount, r.Lanes, mean, sd)
	return err
}

// Summary is a one-line, human-readable account of a search.
func Summary(res solver.Result) string {
	p := message.NewPrinter(language.English)
	s := p.Sprintf("evaluated %d candidates, %d valid, kept %d", res.Evaluated, res.Valid(), len(res.Candidates))
	if len(res.Dropped) == 0 {
		return s
	}
	reasons := lo.Keys(res.Dropped)
	slices.Sort(reasons)
	parts := lo.Map(reasons, func(r string, _ int) string {
		return p.Sprintf("%s=%d", r, res.Dropped[r])
	})
	return s + " (dropped " + strings.Join(parts, " ") + ")"
}

func joinInts(xs []int) string {
	return strings.Join(lo.Map(xs, func(x int, _ int) string { return strconv.Itoa(x) }), ",")
}
