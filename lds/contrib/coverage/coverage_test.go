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

package coverage

import (
	"testing"

	"github.com/ajroetker/go-ldsbank/lds"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		read, write []lds.Address
		wantCovered int
		wantMissing []lds.Address
	}{
		{
			name:        "identical",
			read:        []lds.Address{0, 16, 32, 48},
			write:       []lds.Address{0, 16, 32, 48},
			wantCovered: 4,
		},
		{
			name:        "permuted_lanes",
			read:        []lds.Address{0, 16, 32, 48},
			write:       []lds.Address{48, 32, 16, 0},
			wantCovered: 4,
		},
		{
			name:        "partial",
			read:        []lds.Address{0, 16, 32, 48},
			write:       []lds.Address{0, 32, 64, 96},
			wantCovered: 2,
			wantMissing: []lds.Address{16, 48},
		},
		{
			// A write pattern that stores the same slot twice does not fill the
			// slots it skipped.
			name:        "non_injective_write",
			read:        []lds.Address{0, 16, 32, 48},
			write:       []lds.Address{0, 0, 32, 32},
			wantCovered: 2,
			wantMissing: []lds.Address{16, 48},
		},
		{
			name:        "duplicate_reads",
			read:        []lds.Address{16, 16, 64, 64},
			write:       []lds.Address{16},
			wantCovered: 2,
			wantMissing: []lds.Address{64},
		},
		{
			name:        "empty_write",
			read:        []lds.Address{4, 8},
			wantCovered: 0,
			wantMissing: []lds.Address{4, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(lds.FromAddrs(tt.read), lds.FromAddrs(tt.write))
			if r.Covered != tt.wantCovered || r.Total != len(tt.read) {
				t.Errorf("Evaluate() = %d/%d, want %d/%d", r.Covered, r.Total, tt.wantCovered, len(tt.read))
			}
			if len(r.Missing) != len(tt.wantMissing) {
				t.Fatalf("Missing = %v, want %v", r.Missing, tt.wantMissing)
			}
			for i := range r.Missing {
				if r.Missing[i] != tt.wantMissing[i] {
					t.Errorf("Missing = %v, want %v", r.Missing, tt.wantMissing)
					break
				}
			}
			if r.Full() != (tt.wantCovered == len(tt.read)) {
				t.Errorf("Full() = %v", r.Full())
			}
		})
	}
}

func TestFraction(t *testing.T) {
	if got := (Report{}).Fraction(); got != 1 {
		t.Errorf("empty Fraction() = %v, want 1", got)
	}
	if got := (Report{Covered: 3, Total: 4}).Fraction(); got != 0.75 {
		t.Errorf("Fraction() = %v, want 0.75", got)
	}
}

func TestEvaluateTernaryWrite(t *testing.T) {
	// Writes are produced by a ternary select; reads by a plain stride.
	cfg := lds.DefaultConfig()
	cfg.Lanes = 16
	cfg.Align = 1
	ev := lds.NewEvaluator(cfg, lds.LaneLayout{})

	read := make([]lds.Address, 16)
	for lane := range read {
		read[lane] = 0x100 + lane*17
	}

	write, err := ev.Materialize(lds.TernarySelect{
		A:     lds.LaneShift{Shift: 4},
		B:     lds.LaneShift{},
		C:     0x100,
		Table: lds.TableA | lds.TableB | lds.TableC,
	}, 0)
	if err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}
	if r := Evaluate(lds.FromAddrs(read), write); !r.Full() {
		t.Errorf("Evaluate() = %d/%d, missing %v", r.Covered, r.Total, r.Missing)
	}
}
