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

// Package lds models the shared memory (LDS) of a GPU compute unit as a set of
// interleaved banks, and evaluates the per-lane address formulas that kernels
// use to read and write it.
//
// The package is the leaf of go-ldsbank. It knows how to map a byte address to
// a bank, how to turn a [Formula] into the address each lane of a wavefront
// touches, and how to report addresses that escape the declared region or
// break its alignment. Scoring and searching live in the contrib packages:
//
//   - contrib/conflict: bank histogram and conflict degree of an [AccessSet]
//   - contrib/coverage: how many read addresses a write pattern fills
//   - contrib/validate: composable candidate checks (bijection, data preservation)
//   - contrib/solver: exhaustive, sharded parameter search
//   - contrib/report: CSV and table rendering of search results
//
// # Formulas
//
// A [Formula] is a closed set of variants, dispatched by a type switch in
// [Evaluator.Evaluate]:
//
//	Linear{Pitch, Offset}           row*Pitch + Offset + k
//	XorSwizzle{Pitch, XorShift}     (row*Pitch + k) ^ (row*XorShift)
//	TernarySelect{A, B, C, Table}   TernaryOp(A(lane), B(lane), C, Table)
//
// where k is the per-lane sub-row offset given by the [LaneLayout].
//
// # Example Usage
//
//	ev := lds.NewEvaluator(lds.DefaultConfig(), lds.LaneLayout{
//	    RowsPerPhase: 32,
//	    KOffsets:     []int{0, 8},
//	    ElemBytes:    16,
//	})
//	set, err := ev.Materialize(lds.Linear{Pitch: 132}, 0)
//	if err != nil {
//	    return err
//	}
//	rep, err := conflict.Analyze(set, ev.Config().BankModel())
package lds
