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

// Command ldssolve scores shared memory address patterns for bank conflicts
// and searches swizzle parameters.
//
// Usage:
//
//	ldssolve analyze --formula linear --pitch 132
//	ldssolve analyze --formula xor --pitch 144 --xor 4 --preserve 144
//	ldssolve search --family linear --pitch 128:260:4 --top 5
//	ldssolve search --family xor --pitch 144 --xor 0:32 --preserve 144
//	ldssolve coverage --reads-file reads.txt --table 0:256 --c 0:0x400:0x40
//	ldssolve sweep --bank-counts 32,64 --pitch 128:260:4
//	ldssolve env
//
// The hardware profile comes from --target (cdna3 by default) and can be
// overridden field by field with --banks, --lanes, --rows-per-phase, ...
// LDS_BANKS and LDS_WORKERS set the default bank count and worker count.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-ldsbank/lds"
)

// options holds the flags shared by every subcommand.
type options struct {
	target       string
	banks        int
	word         int
	capacity     int
	align        int
	lanes        int
	rowsPerPhase int
	kOffsets     intList
	elemBytes    int
	iterStride   int
	iter         int
	workers      int
	verbose      bool

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "ldssolve",
		Short:         "Analyze LDS bank conflicts and search swizzle parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if o.verbose {
				level = slog.LevelDebug
			}
			o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.target, "target", "cdna3", "Hardware profile ("+strings.Join(AvailableTargets(), ", ")+")")
	pf.IntVar(&o.banks, "banks", lds.DefaultBankCount, "Number of LDS banks (default from target or LDS_BANKS)")
	pf.IntVar(&o.word, "word", lds.DefaultWordBytes, "Bank word width in bytes")
	pf.IntVar(&o.capacity, "capacity", lds.DefaultCapacity, "LDS capacity in bytes")
	pf.IntVar(&o.align, "align", lds.DefaultAlign, "Required address alignment in bytes")
	pf.IntVar(&o.lanes, "lanes", lds.DefaultLanes, "Wavefront size")
	pf.IntVar(&o.rowsPerPhase, "rows-per-phase", 32, "Lanes per phase; lane l reads row l % rows-per-phase")
	pf.Var(&o.kOffsets, "koffsets", "Per-phase column offsets in elements, e.g. 0,8")
	pf.IntVar(&o.elemBytes, "elem-bytes", 16, "Bytes per column offset element")
	pf.IntVar(&o.iterStride, "iter-stride", 0, "Bytes the column advances per iteration")
	pf.IntVar(&o.iter, "iter", 0, "Iteration to materialize")
	pf.IntVar(&o.workers, "workers", lds.WorkersEnv(), "Search workers (0 = GOMAXPROCS)")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newAnalyzeCmd(o),
		newSearchCmd(o, "search", searchDefaults{family: "linear", objective: "conflict", top: 10}),
		newSearchCmd(o, "coverage", searchDefaults{family: "ternary", objective: "coverage", distinct: true, top: 10}),
		newSweepCmd(o),
		newEnvCmd(o),
	)
	return root
}

// resolve builds the memory configuration and lane layout: target profile
// first, then LDS_BANKS, then any flag given on the command line.
func (o *options) resolve(cmd *cobra.Command) (lds.Config, lds.LaneLayout, error) {
	t, err := GetTarget(o.target)
	if err != nil {
		return lds.Config{}, lds.LaneLayout{}, err
	}
	cfg, layout := t.Config, t.Layout
	if os.Getenv("LDS_BANKS") != "" {
		cfg.BankCount = lds.BanksEnv()
	}

	f := cmd.Flags()
	set := func(name string, dst *int, v int) {
		if f.Changed(name) {
			*dst = v
		}
	}
	set("banks", &cfg.BankCount, o.banks)
	set("word", &cfg.WordBytes, o.word)
	set("capacity", &cfg.Capacity, o.capacity)
	set("align", &cfg.Align, o.align)
	set("lanes", &cfg.Lanes, o.lanes)
	set("rows-per-phase", &layout.RowsPerPhase, o.rowsPerPhase)
	set("elem-bytes", &layout.ElemBytes, o.elemBytes)
	set("iter-stride", &layout.IterStride, o.iterStride)
	if f.Changed("koffsets") {
		layout.KOffsets = append([]int(nil), o.kOffsets...)
	}

	if err := cfg.Validate(); err != nil {
		return lds.Config{}, lds.LaneLayout{}, err
	}
	o.logger.Debug("memory model",
		"target", t.Name,
		"banks", cfg.BankCount,
		"word", cfg.WordBytes,
		"lanes", cfg.Lanes,
		"align", cfg.Align,
		"layout", fmt.Sprintf("%+v", layout))
	return cfg, layout, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
