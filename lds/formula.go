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

package lds

import "fmt"

// Kind is the tag of a Formula variant.
type Kind int

const (
	// KindLinear is a padded row-major layout.
	KindLinear Kind = iota

	// KindXorSwizzle is a row-major layout with a row-dependent XOR.
	KindXorSwizzle

	// KindTernarySelect folds a lane permutation into the address with one
	// ternary bitwise select.
	KindTernarySelect
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindXorSwizzle:
		return "xor"
	case KindTernarySelect:
		return "ternary"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "linear":
		return KindLinear, nil
	case "xor":
		return KindXorSwizzle, nil
	case "ternary":
		return KindTernarySelect, nil
	}
	return 0, Preconditionf("ParseKind", "unknown formula kind %q", s)
}

// Formula is a per-lane address generator. The set of variants is closed:
// Linear, XorSwizzle and TernarySelect.
type Formula interface {
	Kind() Kind
	String() string
	isFormula()
}

// Linear is row*Pitch + Offset + k. Pitch is usually larger than the natural
// row width; the padding perturbs bank alignment between rows.
type Linear struct {
	Pitch  int
	Offset int
}

// XorSwizzle is (row*Pitch + k) ^ (row*XorShift).
//
// The XOR term only preserves which element is fetched if it touches address
// bits that are redundant for the access. The evaluator does not check this;
// see validate.DataPreserving.
type XorSwizzle struct {
	Pitch    int
	XorShift int
}

// TernarySelect is TernaryOp(A(lane), B(lane), C, Table). Row and iteration
// do not take part.
type TernarySelect struct {
	A, B  LaneShift
	C     uint32
	Table uint8
}

// LaneShift is the closed-form operand function (lane << Shift) & Mask.
// A zero Mask keeps all bits.
type LaneShift struct {
	Shift int
	Mask  uint32
}

// Validate fails with ErrPrecondition unless Shift is in [0, 32).
func (s LaneShift) Validate() error {
	if s.Shift < 0 || s.Shift >= 32 {
		return Preconditionf("LaneShift", "shift %d outside [0, 32)", s.Shift)
	}
	return nil
}

// Apply evaluates the operand for lane. s must be valid.
func (s LaneShift) Apply(lane Lane) uint32 {
	v := uint32(lane) << s.Shift
	if s.Mask != 0 {
		v &= s.Mask
	}
	return v
}

func (s LaneShift) String() string {
	if s.Mask != 0 {
		return fmt.Sprintf("(lane<<%d)&%#x", s.Shift, s.Mask)
	}
	return fmt.Sprintf("lane<<%d", s.Shift)
}

func (Linear) Kind() Kind        { return KindLinear }
func (XorSwizzle) Kind() Kind    { return KindXorSwizzle }
func (TernarySelect) Kind() Kind { return KindTernarySelect }

func (Linear) isFormula()        {}
func (XorSwizzle) isFormula()    {}
func (TernarySelect) isFormula() {}

func (f Linear) String() string {
	return fmt.Sprintf("row*%d + %d + k", f.Pitch, f.Offset)
}

func (f XorSwizzle) String() string {
	return fmt.Sprintf("(row*%d + k) ^ (row*%d)", f.Pitch, f.XorShift)
}

func (f TernarySelect) String() string {
	return fmt.Sprintf("bitop3(%s, %s, %#x, %#02x)", f.A, f.B, f.C, f.Table)
}
