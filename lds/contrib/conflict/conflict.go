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

// Package conflict scores a wavefront's shared memory access for bank
// conflicts.
//
// A wavefront access whose busiest bank serves k lanes is split by the
// hardware into k sequential sub-transactions, so the target for reads inside
// a hot loop is MaxConflict == 1. Two lanes hitting the same address count as
// a conflict here; broadcast is not modeled.
package conflict

import (
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/ajroetker/go-ldsbank/lds"
)

// Report is the bank histogram of one AccessSet.
type Report struct {
	BankCount   int
	Lanes       int                // Number of accesses analyzed
	Banks       map[int][]lds.Lane // Bank -> lanes mapped to it, ascending
	MaxConflict int                // Size of the largest bank group
	UniqueBanks int                // Number of banks touched
}

// Analyze groups the addresses of set by bank. The result does not depend on
// the order of set.
//
// It fails with lds.ErrPrecondition if model has no banks and with
// lds.ErrOutOfRange if set holds a negative address.
func Analyze(set lds.AccessSet, model lds.BankModel) (Report, error) {
	if err := model.Validate(); err != nil {
		return Report{}, err
	}
	for _, a := range set {
		if a.Addr < 0 {
			return Report{}, &lds.Error{Kind: lds.ErrOutOfRange, Op: "Analyze", Lane: a.Lane, Addr: a.Addr,
				Message: "negative address"}
		}
	}

	groups := lo.GroupBy(set, func(a lds.Access) int {
		return model.Bank(a.Addr)
	})

	r := Report{
		BankCount:   model.Banks,
		Lanes:       len(set),
		Banks:       make(map[int][]lds.Lane, len(groups)),
		UniqueBanks: len(groups),
	}
	for bank, accesses := range groups {
		lanes := lo.Map(accesses, func(a lds.Access, _ int) lds.Lane { return a.Lane })
		slices.Sort(lanes)
		r.Banks[bank] = lanes
		r.MaxConflict = max(r.MaxConflict, len(lanes))
	}
	return r, nil
}

// ZeroConflict reports whether every lane hit a distinct bank.
func (r Report) ZeroConflict() bool {
	return r.MaxConflict <= 1
}

// Cycles is the number of serialized sub-transactions the access takes.
func (r Report) Cycles() int {
	return r.MaxConflict
}

// Histogram returns the number of lanes per bank, indexed by bank.
func (r Report) Histogram() []int {
	h := make([]int, r.BankCount)
	for bank, lanes := range r.Banks {
		h[bank] = len(lanes)
	}
	return h
}

// SortedBanks returns the touched banks in ascending order.
func (r Report) SortedBanks() []int {
	banks := lo.Keys(r.Banks)
	slices.Sort(banks)
	return banks
}

// Occupancy returns the mean and standard deviation of the per-bank load over
// all BankCount banks. A perfectly spread access has a standard deviation of
// zero when Lanes is a multiple of BankCount.
func (r Report) Occupancy() (mean, stddev float64) {
	h := r.Histogram()
	if len(h) == 0 {
		return 0, 0
	}
	x := make([]float64, len(h))
	for i, n := range h {
		x[i] = float64(n)
	}
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}
