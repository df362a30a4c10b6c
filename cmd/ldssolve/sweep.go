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

package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-ldsbank/lds/contrib/report"
	"github.com/ajroetker/go-ldsbank/lds/contrib/solver"
	"github.com/ajroetker/go-ldsbank/lds/contrib/workerpool"
)

func newSweepCmd(o *options) *cobra.Command {
	var (
		sf         searchFlags
		bankCounts []int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the same search for several bank counts and compare the winners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := sf.request(cmd, o)
			if err != nil {
				return err
			}
			pool := workerpool.New(o.workers)
			defer pool.Close()

			results := make([]solver.Result, len(bankCounts))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, banks := range bankCounts {
				req := base
				req.Config.BankCount = banks
				req.Pool = pool
				req = sf.limitConflicts(req)
				g.Go(func() error {
					res, err := solver.Search(ctx, req)
					if err != nil {
						return fmt.Errorf("%d banks: %w", banks, err)
					}
					results[i] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return writeSweep(cmd, o, bankCounts, results)
		},
	}
	sf.register(cmd, searchDefaults{family: "linear", objective: "conflict", top: 1})
	cmd.Flags().IntSliceVar(&bankCounts, "bank-counts", []int{32, 64}, "Bank counts to sweep")
	return cmd
}

// writeSweep prints the best candidate per bank count.
func writeSweep(cmd *cobra.Command, o *options, bankCounts []int, results []solver.Result) error {
	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(sweepHeader(results), "\t"))
	for i, res := range results {
		rows := report.Rows(res)
		if len(rows) == 0 {
			fmt.Fprintf(tw, "%d\t(no valid candidate)\n", bankCounts[i])
			continue
		}
		for _, row := range rows {
			fmt.Fprintln(tw, strconv.Itoa(bankCounts[i])+"\t"+strings.Join(row, "\t"))
		}
		o.logger.Debug("sweep", "banks", bankCounts[i], "summary", report.Summary(res))
	}
	return tw.Flush()
}

func sweepHeader(results []solver.Result) []string {
	var h []string
	if len(results) > 0 {
		h = report.Header(results[0])
	}
	return append([]string{"banks"}, h...)
}
