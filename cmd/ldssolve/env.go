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
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-ldsbank/lds"
)

func newEnvCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the host, the solver defaults and the selected target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, layout, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			workers := o.workers
			if workers <= 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "os/arch\t%s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(tw, "cpus\t%d\n", runtime.NumCPU())
			fmt.Fprintf(tw, "gomaxprocs\t%d\n", runtime.GOMAXPROCS(0))
			fmt.Fprintf(tw, "cpu features\t%s\n", strings.Join(cpuFeatures(), " "))
			fmt.Fprintf(tw, "workers\t%d\n", workers)
			fmt.Fprintf(tw, "target\t%s\n", o.target)
			fmt.Fprintf(tw, "banks\t%d x %d bytes\n", cfg.BankCount, cfg.WordBytes)
			fmt.Fprintf(tw, "capacity\t%d\n", cfg.Capacity)
			fmt.Fprintf(tw, "lanes\t%d\n", cfg.Lanes)
			fmt.Fprintf(tw, "layout\trows/phase=%d koffsets=%v elem=%d iter-stride=%d\n",
				layout.RowsPerPhase, layout.KOffsets, layout.ElemBytes, layout.IterStride)
			fmt.Fprintf(tw, "targets\t%s\n", strings.Join(AvailableTargets(), " "))
			fmt.Fprintf(tw, "LDS_BANKS default\t%d\n", lds.BanksEnv())
			return tw.Flush()
		},
	}
}

// cpuFeatures lists the host SIMD features, which bound how fast the search
// evaluates candidates.
func cpuFeatures() []string {
	var fs []string
	add := func(name string, ok bool) {
		if ok {
			fs = append(fs, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64":
		add("avx", cpu.X86.HasAVX)
		add("avx2", cpu.X86.HasAVX2)
		add("fma", cpu.X86.HasFMA)
		add("avx512f", cpu.X86.HasAVX512F)
	case "arm64":
		add("asimd", cpu.ARM64.HasASIMD)
		add("sve", cpu.ARM64.HasSVE)
		add("asimdhp", cpu.ARM64.HasASIMDHP)
	}
	if len(fs) == 0 {
		fs = append(fs, "none")
	}
	return fs
}
