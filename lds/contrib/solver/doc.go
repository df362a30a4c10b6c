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

// Package solver searches formula parameter spaces for bank-conflict-free
// reads or for writes that cover a fixed read pattern.
//
// The search is exhaustive over an explicit, finite grid: the domains are
// small and discrete, and an exhaustive search is easy to audit. Every point
// is built into a formula, materialized, filtered by validity checks and
// scored; only the best TopK are kept.
//
// # Example Usage
//
//	res, err := solver.Search(ctx, solver.Request{
//	    Config:    lds.DefaultConfig(),
//	    Layout:    layout,
//	    Family:    solver.LinearFamily(0),
//	    Space:     solver.Space{solver.Range(solver.ParamPitch, 128, 260, 4)},
//	    Objective: solver.MinimizeConflict,
//	    TopK:      5,
//	})
//
// Minimizing conflicts says nothing about whether a swizzle still fetches the
// right data. Add validate.DataPreserving to Request.Validators when the
// family can move elements.
package solver
