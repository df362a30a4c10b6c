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

// Package coverage measures how much of a fixed read pattern a parameterized
// write pattern fills.
//
// Coverage is a pure address-set intersection. Lane identity is ignored (a
// byte counts as written if any lane stored it) and so is program order: the
// evaluator does not check that the write happens before the read.
package coverage

import (
	"slices"

	"github.com/ajroetker/go-ldsbank/lds"
)

// Report is the overlap of a read set with a write set.
type Report struct {
	Covered int           // Read accesses whose address was written
	Total   int           // Number of read accesses
	Missing []lds.Address // Read addresses never written, ascending, deduplicated
}

// Full reports whether every read is satisfied.
func (r Report) Full() bool {
	return r.Covered == r.Total
}

// Fraction returns Covered/Total, or 1 for an empty read set.
func (r Report) Fraction() float64 {
	if r.Total == 0 {
		return 1
	}
	return float64(r.Covered) / float64(r.Total)
}

// Evaluate counts the reads of read whose address appears in write. The write
// addresses are enumerated literally; nothing is inferred from the formula
// that produced them. A read address occurring twice counts twice.
func Evaluate(read, write lds.AccessSet) Report {
	written := make(map[lds.Address]struct{}, len(write))
	for _, w := range write {
		written[w.Addr] = struct{}{}
	}

	r := Report{Total: len(read)}
	for _, a := range read {
		if _, ok := written[a.Addr]; ok {
			r.Covered++
			continue
		}
		r.Missing = append(r.Missing, a.Addr)
	}
	slices.Sort(r.Missing)
	r.Missing = slices.Compact(r.Missing)
	return r
}
