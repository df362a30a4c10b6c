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

// Package validate holds independent checks over a candidate formula and the
// access set it produced.
//
// Bank placement and data correctness are separate properties. A swizzle can
// be conflict free and still fetch the wrong element, so the checks here are
// kept apart and composed explicitly with All. Every failure wraps
// lds.ErrInvalidCandidate.
package validate

import (
	"fmt"
	"strings"

	"github.com/ajroetker/go-ldsbank/lds"
	"github.com/ajroetker/go-ldsbank/lds/contrib/conflict"
)

// Subject is what a Validator inspects: the formula, its materialized access
// set and the evaluator that produced it.
type Subject struct {
	Formula   lds.Formula
	Set       lds.AccessSet
	Evaluator *lds.Evaluator
	Iter      int
}

// Validator accepts or rejects a candidate.
type Validator interface {
	Name() string
	Check(s Subject) error
}

type funcValidator struct {
	name string
	fn   func(Subject) error
}

func (v funcValidator) Name() string          { return v.name }
func (v funcValidator) Check(s Subject) error { return v.fn(s) }

// New wraps fn as a named Validator.
func New(name string, fn func(Subject) error) Validator {
	return funcValidator{name: name, fn: fn}
}

// Distinct requires every lane to touch a different address, i.e. the lanes
// form a bijection onto their slots. Used for write bases.
func Distinct() Validator {
	return New("distinct", func(s Subject) error {
		seen := make(map[lds.Address]lds.Lane, len(s.Set))
		for _, a := range s.Set {
			if prev, ok := seen[a.Addr]; ok {
				return lds.InvalidCandidatef("Distinct", a.Lane, a.Addr, "same address as lane %d", prev)
			}
			seen[a.Addr] = a.Lane
		}
		return nil
	})
}

// DataPreserving requires every lane to fetch the element the reference
// formula fetches. Address bits set in ignoreMask are redundant for the access
// (for example byte offsets inside the transfer) and are not compared.
func DataPreserving(reference lds.Formula, ignoreMask int) Validator {
	return New("data_preserving", func(s Subject) error {
		if s.Evaluator == nil {
			return lds.Preconditionf("DataPreserving", "subject has no evaluator")
		}
		layout := s.Evaluator.Layout()
		for _, a := range s.Set {
			want, err := s.Evaluator.Evaluate(reference, a.Lane, layout.Row(a.Lane), s.Iter)
			if err != nil {
				return fmt.Errorf("validate: reference %s: %w", reference, err)
			}
			if a.Addr&^ignoreMask != want&^ignoreMask {
				return lds.InvalidCandidatef("DataPreserving", a.Lane, a.Addr,
					"fetches %#x, reference %s fetches %#x", a.Addr, reference, want)
			}
		}
		return nil
	})
}

// MaxConflict requires the access to serialize into at most k sub-transactions.
func MaxConflict(model lds.BankModel, k int) Validator {
	return New(fmt.Sprintf("max_conflict_%d", k), func(s Subject) error {
		r, err := conflict.Analyze(s.Set, model)
		if err != nil {
			return err
		}
		if r.MaxConflict > k {
			return lds.InvalidCandidatef("MaxConflict", -1, 0,
				"max conflict %d exceeds %d", r.MaxConflict, k)
		}
		return nil
	})
}

// ConflictFree requires every lane to hit a distinct bank.
func ConflictFree(model lds.BankModel) Validator {
	v := MaxConflict(model, 1)
	return New("conflict_free", v.Check)
}

// All runs vs in order and returns the first failure.
func All(vs ...Validator) Validator {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name()
	}
	return New(strings.Join(names, "+"), func(s Subject) error {
		for _, v := range vs {
			if err := v.Check(s); err != nil {
				return err
			}
		}
		return nil
	})
}
