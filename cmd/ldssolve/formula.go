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

	"github.com/spf13/pflag"

	"github.com/ajroetker/go-ldsbank/lds"
	"github.com/ajroetker/go-ldsbank/lds/contrib/solver"
	"github.com/ajroetker/go-ldsbank/lds/contrib/validate"
)

// formulaFlags selects a formula family and the values of its parameters.
// Each parameter flag takes an intList, so the same flags describe a single
// formula (analyze) or a search grid (search, coverage, sweep).
type formulaFlags struct {
	family string
	pitch  intList
	offset intList
	xor    intList
	table  intList
	c      intList

	aShift, bShift int
	aMask, bMask   uint32

	preserve   int
	ignoreMask int
}

// register adds the flags to fs. With grid set, pitch and table default to
// their full search ranges instead of a single value.
func (ff *formulaFlags) register(fs *pflag.FlagSet, family, flagName string, grid bool) {
	ff.family = family
	ff.pitch = intList{132}
	ff.offset = intList{0}
	ff.xor = intList{0}
	ff.table = intList{0x96}
	ff.c = intList{0}
	if grid {
		ff.pitch = solver.Range("", 128, 260, 4).Values
		ff.table = solver.Range("", 0, 256, 1).Values
	}

	fs.StringVar(&ff.family, flagName, family, "Formula family (linear, xor, ternary)")
	fs.Var(&ff.pitch, "pitch", "Row pitch in bytes (linear, xor)")
	fs.Var(&ff.offset, "offset", "Base offset in bytes (linear)")
	fs.Var(&ff.xor, "xor", "XOR shift: row*xor is XORed into the address (xor)")
	fs.Var(&ff.table, "table", "8-bit truth table (ternary)")
	fs.Var(&ff.c, "c", "Constant operand c (ternary)")
	fs.IntVar(&ff.aShift, "a-shift", 4, "Operand a = (lane << a-shift) & a-mask (ternary)")
	fs.Uint32Var(&ff.aMask, "a-mask", 0, "Operand a mask, 0 for none (ternary)")
	fs.IntVar(&ff.bShift, "b-shift", 0, "Operand b = (lane << b-shift) & b-mask (ternary)")
	fs.Uint32Var(&ff.bMask, "b-mask", 0, "Operand b mask, 0 for none (ternary)")
	fs.IntVar(&ff.preserve, "preserve", 0, "Require each lane to read the same element as a linear layout with this pitch (0 = off)")
	fs.IntVar(&ff.ignoreMask, "ignore-mask", 0, "Address bits not compared by --preserve")
}

// build returns the family and the parameter space the flags describe.
func (ff *formulaFlags) build() (solver.Family, solver.Space, error) {
	kind, err := lds.ParseKind(ff.family)
	if err != nil {
		return solver.Family{}, nil, err
	}
	switch kind {
	case lds.KindLinear:
		return solver.LinearFamily(0), solver.Space{
			solver.Values(solver.ParamPitch, ff.pitch...),
			solver.Values(solver.ParamOffset, ff.offset...),
		}, nil
	case lds.KindXorSwizzle:
		return solver.XorSwizzleFamily(0), solver.Space{
			solver.Values(solver.ParamPitch, ff.pitch...),
			solver.Values(solver.ParamXor, ff.xor...),
		}, nil
	default:
		a := lds.LaneShift{Shift: ff.aShift, Mask: ff.aMask}
		b := lds.LaneShift{Shift: ff.bShift, Mask: ff.bMask}
		if err := a.Validate(); err != nil {
			return solver.Family{}, nil, fmt.Errorf("--a-shift: %w", err)
		}
		if err := b.Validate(); err != nil {
			return solver.Family{}, nil, fmt.Errorf("--b-shift: %w", err)
		}
		return solver.TernaryFamily(a, b), solver.Space{
			solver.Values(solver.ParamTable, ff.table...),
			solver.Values(solver.ParamC, ff.c...),
		}, nil
	}
}

// formula returns the single formula the flags describe. Every parameter
// must hold exactly one value.
func (ff *formulaFlags) formula() (lds.Formula, error) {
	family, space, err := ff.build()
	if err != nil {
		return nil, err
	}
	for _, d := range space {
		if len(d.Values) != 1 {
			return nil, fmt.Errorf("--%s: want a single value, got %d", d.Name, len(d.Values))
		}
	}
	return family.Build(space.At(0))
}

// validators returns the data-correctness check requested by --preserve.
func (ff *formulaFlags) validators() []validate.Validator {
	if ff.preserve <= 0 {
		return nil
	}
	return []validate.Validator{validate.DataPreserving(lds.Linear{Pitch: ff.preserve}, ff.ignoreMask)}
}
