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
	"math"

	"github.com/ajroetker/go-ldsbank/lds"
)

// Parameter names understood by the built-in families.
const (
	ParamPitch  = "pitch"
	ParamOffset = "offset"
	ParamXor    = "xor"
	ParamTable  = "table"
	ParamC      = "c"
)

// Family instantiates one Formula variant from an Assignment. Parameters the
// assignment does not set keep the values fixed when the family was built.
//
// Validate, if set, checks the fixed parts of the family; Search calls it
// once before enumerating.
type Family struct {
	Kind     lds.Kind
	Build    func(Assignment) (lds.Formula, error)
	Validate func() error
}

// LinearFamily searches lds.Linear over "pitch" and optionally "offset".
func LinearFamily(offset int) Family {
	return Family{
		Kind: lds.KindLinear,
		Build: func(a Assignment) (lds.Formula, error) {
			pitch := a.Get(ParamPitch, 0)
			if pitch <= 0 {
				return nil, lds.InvalidCandidatef("LinearFamily", -1, 0, "pitch %d not positive", pitch)
			}
			return lds.Linear{Pitch: pitch, Offset: a.Get(ParamOffset, offset)}, nil
		},
	}
}

// XorSwizzleFamily searches lds.XorSwizzle over "xor" and optionally "pitch".
func XorSwizzleFamily(pitch int) Family {
	return Family{
		Kind: lds.KindXorSwizzle,
		Build: func(a Assignment) (lds.Formula, error) {
			p := a.Get(ParamPitch, pitch)
			if p <= 0 {
				return nil, lds.InvalidCandidatef("XorSwizzleFamily", -1, 0, "pitch %d not positive", p)
			}
			x := a.Get(ParamXor, 0)
			if x < 0 {
				return nil, lds.InvalidCandidatef("XorSwizzleFamily", -1, 0, "xor shift %d negative", x)
			}
			return lds.XorSwizzle{Pitch: p, XorShift: x}, nil
		},
	}
}

// TernaryFamily searches lds.TernarySelect over "table" and "c" with fixed
// operand functions a and b. Operands with a shift outside [0, 32) fail
// Validate and Build with lds.ErrPrecondition.
func TernaryFamily(a, b lds.LaneShift) Family {
	check := func() error {
		if err := a.Validate(); err != nil {
			return err
		}
		return b.Validate()
	}
	return Family{
		Kind:     lds.KindTernarySelect,
		Validate: check,
		Build: func(asg Assignment) (lds.Formula, error) {
			if err := check(); err != nil {
				return nil, err
			}
			table := asg.Get(ParamTable, 0)
			if table < 0 || table > 0xFF {
				return nil, lds.InvalidCandidatef("TernaryFamily", -1, 0, "truth table %d outside [0, 256)", table)
			}
			c := asg.Get(ParamC, 0)
			if c < 0 || uint64(c) > math.MaxUint32 {
				return nil, lds.InvalidCandidatef("TernaryFamily", -1, 0, "operand c %d outside 32 bits", c)
			}
			return lds.TernarySelect{A: a, B: b, C: uint32(c), Table: uint8(table)}, nil
		},
	}
}
