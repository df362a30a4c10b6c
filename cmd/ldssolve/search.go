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

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-ldsbank/lds"
	"github.com/ajroetker/go-ldsbank/lds/contrib/report"
	"github.com/ajroetker/go-ldsbank/lds/contrib/solver"
	"github.com/ajroetker/go-ldsbank/lds/contrib/validate"
)

// searchDefaults are the flag defaults that tell "search" and "coverage" apart.
type searchDefaults struct {
	family    string
	objective string
	distinct  bool
	top       int
}

type searchFlags struct {
	formulaFlags
	objective   string
	top         int
	format      string
	distinct    bool
	maxConflict int
	reads       intList
	readsFile   string
}

func (sf *searchFlags) register(cmd *cobra.Command, d searchDefaults) {
	fs := cmd.Flags()
	sf.formulaFlags.register(fs, d.family, "family", true)
	fs.StringVar(&sf.objective, "objective", d.objective, "Ranking objective (conflict, coverage)")
	fs.IntVar(&sf.top, "top", d.top, "Number of candidates to keep")
	fs.StringVar(&sf.format, "format", "table", "Output format (table, csv)")
	fs.BoolVar(&sf.distinct, "distinct", d.distinct, "Require every lane to touch a distinct address")
	fs.IntVar(&sf.maxConflict, "max-conflict", 0, "Discard candidates above this conflict degree (0 = off)")
	fs.Var(&sf.reads, "reads", "Read addresses to cover (coverage objective)")
	fs.StringVar(&sf.readsFile, "reads-file", "", "File of read addresses to cover (coverage objective)")
}

// request assembles a solver.Request from the shared and search flags.
func (sf *searchFlags) request(cmd *cobra.Command, o *options) (solver.Request, error) {
	cfg, layout, err := o.resolve(cmd)
	if err != nil {
		return solver.Request{}, err
	}
	family, space, err := sf.build()
	if err != nil {
		return solver.Request{}, err
	}
	objective, err := solver.ParseObjective(sf.objective)
	if err != nil {
		return solver.Request{}, err
	}

	req := solver.Request{
		Config:     cfg,
		Layout:     layout,
		Iter:       o.iter,
		Family:     family,
		Space:      space,
		Objective:  objective,
		TopK:       sf.top,
		Distinct:   sf.distinct,
		Validators: sf.validators(),
		Workers:    o.workers,
		Logger:     o.logger,
	}
	if objective == solver.MaximizeCoverage {
		req.ReadSet, err = readAddrs(sf.reads, sf.readsFile)
		if err != nil {
			return solver.Request{}, err
		}
	}
	return req, nil
}

// limitConflicts appends the --max-conflict check for req's bank model. It is
// applied last so a sweep can change the bank count first.
func (sf *searchFlags) limitConflicts(req solver.Request) solver.Request {
	if sf.maxConflict <= 0 {
		return req
	}
	vs := append([]validate.Validator(nil), req.Validators...)
	req.Validators = append(vs, validate.MaxConflict(req.Config.BankModel(), sf.maxConflict))
	return req
}

func newSearchCmd(o *options, name string, d searchDefaults) *cobra.Command {
	var sf searchFlags
	short := "Search formula parameters for the fewest bank conflicts"
	if d.objective == "coverage" {
		short = "Search write-base parameters that cover a read set"
	}
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := sf.request(cmd, o)
			if err != nil {
				return err
			}
			req = sf.limitConflicts(req)
			o.logger.Debug("searching",
				"family", req.Family.Kind,
				"objective", req.Objective,
				"points", req.Space.Size())
			res, err := solver.Search(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeResult(cmd, o, sf.format, res)
		},
	}
	sf.register(cmd, d)
	return cmd
}

// writeResult prints res in the requested format. The summary goes under
// the table, or to the log when the output is CSV meant for another program.
func writeResult(cmd *cobra.Command, o *options, format string, res solver.Result) error {
	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		if err := report.WriteCSV(out, res); err != nil {
			return err
		}
		o.logger.Info(report.Summary(res))
	case "table":
		if err := report.WriteTable(out, res); err != nil {
			return err
		}
		fmt.Fprintln(out, report.Summary(res))
	default:
		return lds.Preconditionf("output", "unknown format %q (want table or csv)", format)
	}
	return nil
}
