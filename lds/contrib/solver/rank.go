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

package solver

import (
	"slices"

	"github.com/ajroetker/go-ldsbank/lds"
	"github.com/ajroetker/go-ldsbank/lds/contrib/conflict"
	"github.com/ajroetker/go-ldsbank/lds/contrib/coverage"
)

// Objective selects how candidates are scored and ranked.
type Objective int

const (
	// MinimizeConflict ranks by max conflict ascending, then unique banks
	// descending, then parameter magnitude ascending.
	MinimizeConflict Objective = iota

	// MaximizeCoverage ranks by covered reads descending, then parameter
	// magnitude ascending.
	MaximizeCoverage
)

// String returns a human-readable name for the objective.
func (o Objective) String() string {
	switch o {
	case MinimizeConflict:
		return "conflict"
	case MaximizeCoverage:
		return "coverage"
	default:
		return "unknown"
	}
}

// ParseObjective is the inverse of Objective.String.
func ParseObjective(s string) (Objective, error) {
	switch s {
	case "conflict":
		return MinimizeConflict, nil
	case "coverage":
		return MaximizeCoverage, nil
	}
	return 0, lds.Preconditionf("ParseObjective", "unknown objective %q", s)
}

// Candidate is one scored parameter assignment.
//
// Conflict is the bank analysis of the candidate's access set under either
// objective. Coverage is only filled for MaximizeCoverage.
type Candidate struct {
	Params    Assignment
	Formula   lds.Formula
	Objective Objective
	Conflict  conflict.Report
	Coverage  coverage.Report
}

// Less is the total ranking order: objective, then magnitude, then parameter
// values lexicographically. Two candidates of the same space never tie.
func Less(a, b Candidate) bool {
	return compare(a, b) < 0
}

func compare(a, b Candidate) int {
	switch a.Objective {
	case MaximizeCoverage:
		if a.Coverage.Covered != b.Coverage.Covered {
			return b.Coverage.Covered - a.Coverage.Covered
		}
	default:
		if a.Conflict.MaxConflict != b.Conflict.MaxConflict {
			return a.Conflict.MaxConflict - b.Conflict.MaxConflict
		}
		if a.Conflict.UniqueBanks != b.Conflict.UniqueBanks {
			return b.Conflict.UniqueBanks - a.Conflict.UniqueBanks
		}
	}
	if ma, mb := a.Params.magnitude(), b.Params.magnitude(); ma != mb {
		return ma - mb
	}
	return slices.CompareFunc(a.Params, b.Params, func(x, y Param) int {
		return x.Value - y.Value
	})
}

// topK keeps the k best candidates seen so far, sorted best first.
type topK struct {
	k     int
	items []Candidate
}

func newTopK(k int) *topK {
	return &topK{k: k, items: make([]Candidate, 0, k)}
}

func (t *topK) push(c Candidate) {
	if len(t.items) == t.k && compare(c, t.items[len(t.items)-1]) >= 0 {
		return
	}
	i, _ := slices.BinarySearchFunc(t.items, c, compare)
	if len(t.items) == t.k {
		t.items = t.items[:len(t.items)-1]
	}
	t.items = slices.Insert(t.items, i, c)
}

// Merge concatenates per-shard rankings, re-sorts them and keeps the best
// topK. It is the reduction step of a sharded search.
func Merge(topK int, lists ...[]Candidate) []Candidate {
	all := slices.Concat(lists...)
	slices.SortFunc(all, compare)
	if topK > 0 && len(all) > topK {
		all = all[:topK]
	}
	return all
}
