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
	"github.com/ajroetker/go-ldsbank/lds/contrib/conflict"
	"github.com/ajroetker/go-ldsbank/lds/contrib/report"
	"github.com/ajroetker/go-ldsbank/lds/contrib/validate"
)

func newAnalyzeCmd(o *options) *cobra.Command {
	var ff formulaFlags
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Materialize one formula and print its bank histogram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, layout, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			f, err := ff.formula()
			if err != nil {
				return err
			}
			ev := lds.NewEvaluator(cfg, layout)
			set, err := ev.Materialize(f, o.iter)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "formula: %s\n", f)
			r, err := conflict.Analyze(set, cfg.BankModel())
			if err != nil {
				return err
			}
			if err := report.WriteHistogram(out, r); err != nil {
				return err
			}

			subject := validate.Subject{Formula: f, Set: set, Evaluator: ev, Iter: o.iter}
			for _, v := range ff.validators() {
				status := "ok"
				if err := v.Check(subject); err != nil {
					status = err.Error()
				}
				fmt.Fprintf(out, "%s: %s\n", v.Name(), status)
			}
			return nil
		},
	}
	ff.register(cmd.Flags(), "linear", "formula", false)
	return cmd
}
