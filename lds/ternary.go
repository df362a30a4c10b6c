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

import "math/bits"

// Truth tables of the three operands. Any boolean function of the operands is
// expressed by combining these with Go's bitwise operators, e.g.
// TableA ^ TableB ^ TableC for a three-way XOR, or (TableA & TableC) | (TableB &^ TableC)
// for a bit-field insert.
const (
	TableA uint8 = 0xF0
	TableB uint8 = 0xCC
	TableC uint8 = 0xAA
)

// TernaryOp computes a 32-bit bitwise ternary select: bit i of the result is
// bit (a_i<<2 | b_i<<1 | c_i) of table.
//
// This is the semantics of the hardware three-input logic primitive
// (v_bitop3 / lop3). It is evaluated as a sum of minterms, one full-width
// mask per set truth-table bit.
func TernaryOp(a, b, c uint32, table uint8) uint32 {
	var out uint32
	for t := table; t != 0; t &= t - 1 {
		idx := bits.TrailingZeros8(t)
		m := ^uint32(0)
		m &= selectBit(a, idx&4 != 0)
		m &= selectBit(b, idx&2 != 0)
		m &= selectBit(c, idx&1 != 0)
		out |= m
	}
	return out
}

func selectBit(x uint32, set bool) uint32 {
	if set {
		return x
	}
	return ^x
}
