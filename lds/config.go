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

// Address is a byte offset into shared memory.
type Address = int

// Lane identifies one execution unit of a wavefront.
type Lane = int

// Hardware defaults for a CDNA-class compute unit.
const (
	// DefaultBankCount is the number of LDS banks.
	DefaultBankCount = 64

	// DefaultWordBytes is the width of one bank word.
	DefaultWordBytes = 4

	// DefaultCapacity is the LDS size visible to one workgroup (64KB).
	DefaultCapacity = 64 * 1024

	// DefaultAlign is the alignment of a dword transfer.
	DefaultAlign = 4

	// DefaultLanes is the wavefront size.
	DefaultLanes = 64
)

// Config describes the memory being modeled and the transfer alignment of the
// accesses being scored.
type Config struct {
	BankCount int // Number of banks
	WordBytes int // Bytes per bank word
	Capacity  int // LDS size in bytes
	Align     int // Required address alignment in bytes (1 = none)
	Lanes     int // Wavefront size
}

// DefaultConfig returns a 64-bank, 4-byte word, 64KB, 64-lane configuration
// with dword alignment.
func DefaultConfig() Config {
	return Config{
		BankCount: DefaultBankCount,
		WordBytes: DefaultWordBytes,
		Capacity:  DefaultCapacity,
		Align:     DefaultAlign,
		Lanes:     DefaultLanes,
	}
}

// Validate fails with ErrPrecondition if any field is not positive.
func (c Config) Validate() error {
	switch {
	case c.BankCount <= 0:
		return Preconditionf("Config.Validate", "bank count must be positive, got %d", c.BankCount)
	case c.WordBytes <= 0:
		return Preconditionf("Config.Validate", "word bytes must be positive, got %d", c.WordBytes)
	case c.Capacity <= 0:
		return Preconditionf("Config.Validate", "capacity must be positive, got %d", c.Capacity)
	case c.Align <= 0:
		return Preconditionf("Config.Validate", "alignment must be positive, got %d", c.Align)
	case c.Lanes <= 0:
		return Preconditionf("Config.Validate", "lane count must be positive, got %d", c.Lanes)
	}
	return nil
}

// BankModel returns the bank geometry of c.
func (c Config) BankModel() BankModel {
	return BankModel{Banks: c.BankCount, WordBytes: c.WordBytes}
}

// LaneLayout is the fixed, hardware-imposed split of a wavefront into rows and
// sub-row column offsets.
//
// Lanes are grouped in phases of RowsPerPhase lanes. Lane l reads row
// l % RowsPerPhase, and phase l / RowsPerPhase selects its column offset
// KOffsets[phase] (in elements of ElemBytes bytes). Each iteration advances the
// column by IterStride bytes.
//
// The zero LaneLayout gives every lane its own row and no column offset.
type LaneLayout struct {
	RowsPerPhase int
	KOffsets     []int
	ElemBytes    int
	IterStride   int
}

// Row returns the row lane reads.
func (l LaneLayout) Row(lane Lane) int {
	if l.RowsPerPhase <= 0 {
		return lane
	}
	return lane % l.RowsPerPhase
}

// Phase returns the phase lane belongs to.
func (l LaneLayout) Phase(lane Lane) int {
	if l.RowsPerPhase <= 0 {
		return 0
	}
	return lane / l.RowsPerPhase
}

// KOffset returns the column offset in bytes of lane at iteration iter.
// Phases past the end of KOffsets reuse the last offset.
func (l LaneLayout) KOffset(lane Lane, iter int) int {
	off := iter * l.IterStride
	if len(l.KOffsets) == 0 {
		return off
	}
	p := min(l.Phase(lane), len(l.KOffsets)-1)
	elem := l.ElemBytes
	if elem <= 0 {
		elem = 1
	}
	return off + l.KOffsets[p]*elem
}
