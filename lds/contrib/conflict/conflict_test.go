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

package conflict

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-ldsbank/lds"
)

// mfmaLayout is a 64-lane wavefront split into two 32-row phases, the upper
// phase reading 8 elements of 16 bytes further along the row.
func mfmaLayout() lds.LaneLayout {
	return lds.LaneLayout{RowsPerPhase: 32, KOffsets: []int{0, 8}, ElemBytes: 16}
}

func materialize(t *testing.T, cfg lds.Config, f lds.Formula) lds.AccessSet {
	t.Helper()
	set, err := lds.NewEvaluator(cfg, mfmaLayout()).Materialize(f, 0)
	if err != nil {
		t.Fatalf("Materialize(%s) error: %v", f, err)
	}
	return set
}

func analyze(t *testing.T, set lds.AccessSet, model lds.BankModel) Report {
	t.Helper()
	r, err := Analyze(set, model)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return r
}

func TestAnalyzeLinearPitch(t *testing.T) {
	cfg := lds.DefaultConfig()

	tests := []struct {
		name       string
		pitch      int
		wantMax    int
		wantUnique int
	}{
		// 33 words per row is odd: rows spread over 32 banks, phases split the halves.
		{name: "pitch_132", pitch: 132, wantMax: 1, wantUnique: 64},
		// 32 words per row: every even row collides with bank 0, odd rows with 32.
		{name: "pitch_128", pitch: 128, wantMax: 32, wantUnique: 2},
		// 64 words per row: rows alias completely, only the phase offset differs.
		{name: "pitch_256", pitch: 256, wantMax: 32, wantUnique: 2},
		// 36 words per row: gcd(36, 64) = 4 leaves 16 banks per phase.
		{name: "pitch_144", pitch: 144, wantMax: 4, wantUnique: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := analyze(t, materialize(t, cfg, lds.Linear{Pitch: tt.pitch}), cfg.BankModel())
			if r.MaxConflict != tt.wantMax || r.UniqueBanks != tt.wantUnique {
				t.Errorf("Analyze(pitch=%d) = max %d unique %d, want max %d unique %d",
					tt.pitch, r.MaxConflict, r.UniqueBanks, tt.wantMax, tt.wantUnique)
			}
			if r.ZeroConflict() != (tt.wantMax == 1) {
				t.Errorf("ZeroConflict() = %v", r.ZeroConflict())
			}
		})
	}
}

func TestAnalyzeWorstCase32Banks(t *testing.T) {
	cfg := lds.DefaultConfig()
	cfg.BankCount = 32

	// pitch 128 is exactly one sweep of 32 banks and the phase offset of 128
	// bytes is another: all 64 lanes land in bank 0.
	r := analyze(t, materialize(t, cfg, lds.Linear{Pitch: 128}), cfg.BankModel())
	if r.MaxConflict != 64 || r.UniqueBanks != 1 {
		t.Fatalf("Analyze() = max %d unique %d, want max 64 unique 1", r.MaxConflict, r.UniqueBanks)
	}
	if r.MaxConflict != cfg.Lanes/r.UniqueBanks {
		t.Errorf("MaxConflict %d inconsistent with %d lanes over %d banks", r.MaxConflict, cfg.Lanes, r.UniqueBanks)
	}
	if got := r.Banks[0]; len(got) != 64 || got[0] != 0 || got[63] != 63 {
		t.Errorf("Banks[0] = %v", got)
	}

	// 32 banks can serve at most 32 of 64 lanes per cycle.
	r = analyze(t, materialize(t, cfg, lds.Linear{Pitch: 132}), cfg.BankModel())
	if r.MaxConflict != 2 || r.UniqueBanks != 32 {
		t.Errorf("Analyze(pitch=132, 32 banks) = max %d unique %d, want max 2 unique 32", r.MaxConflict, r.UniqueBanks)
	}
}

func TestAnalyzeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	model := lds.BankModel{Banks: 64, WordBytes: 4}
	const lanes = 64

	for range 500 {
		addrs := make([]lds.Address, lanes)
		spread := 1 + rng.Intn(4096)
		for i := range addrs {
			addrs[i] = rng.Intn(spread) * 4
		}
		r := analyze(t, lds.FromAddrs(addrs), model)

		if r.UniqueBanks > lanes || r.UniqueBanks < 1 {
			t.Fatalf("UniqueBanks = %d out of [1, %d]", r.UniqueBanks, lanes)
		}
		if ceil := (lanes + r.UniqueBanks - 1) / r.UniqueBanks; r.MaxConflict < ceil {
			t.Fatalf("MaxConflict %d < ceil(%d/%d) = %d", r.MaxConflict, lanes, r.UniqueBanks, ceil)
		}
		if r.ZeroConflict() != (r.UniqueBanks == lanes) {
			t.Fatalf("ZeroConflict() = %v with %d unique banks", r.ZeroConflict(), r.UniqueBanks)
		}

		sum := 0
		for _, n := range r.Histogram() {
			sum += n
		}
		if sum != lanes {
			t.Fatalf("histogram sums to %d, want %d", sum, lanes)
		}
	}
}

func TestAnalyzeOrderInsensitive(t *testing.T) {
	cfg := lds.DefaultConfig()
	set := materialize(t, cfg, lds.Linear{Pitch: 144})
	want := analyze(t, set, cfg.BankModel())

	shuffled := make(lds.AccessSet, len(set))
	copy(shuffled, set)
	rand.New(rand.NewSource(3)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	got := analyze(t, shuffled, cfg.BankModel())

	if got.MaxConflict != want.MaxConflict || got.UniqueBanks != want.UniqueBanks {
		t.Fatalf("shuffled analysis differs: %+v vs %+v", got, want)
	}
	for bank, lanes := range want.Banks {
		g := got.Banks[bank]
		if len(g) != len(lanes) {
			t.Fatalf("bank %d: %v vs %v", bank, g, lanes)
		}
		for i := range lanes {
			if g[i] != lanes[i] {
				t.Fatalf("bank %d: %v vs %v", bank, g, lanes)
			}
		}
	}
}

func TestAnalyzeDuplicateAddress(t *testing.T) {
	// Same address from two lanes is a conflict.
	r := analyze(t, lds.FromAddrs([]lds.Address{0, 0, 4}), lds.BankModel{Banks: 32, WordBytes: 4})
	if r.MaxConflict != 2 || r.UniqueBanks != 2 {
		t.Errorf("Analyze() = max %d unique %d, want max 2 unique 2", r.MaxConflict, r.UniqueBanks)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	r := analyze(t, nil, lds.BankModel{Banks: 32, WordBytes: 4})
	if r.MaxConflict != 0 || r.UniqueBanks != 0 || !r.ZeroConflict() {
		t.Errorf("Analyze(nil) = %+v", r)
	}
}

func TestOccupancy(t *testing.T) {
	cfg := lds.DefaultConfig()
	r := analyze(t, materialize(t, cfg, lds.Linear{Pitch: 132}), cfg.BankModel())
	mean, sd := r.Occupancy()
	if mean != 1 || sd != 0 {
		t.Errorf("Occupancy() = %v, %v, want 1, 0", mean, sd)
	}

	r = analyze(t, materialize(t, cfg, lds.Linear{Pitch: 256}), cfg.BankModel())
	mean, sd = r.Occupancy()
	if mean != 1 || sd <= 0 {
		t.Errorf("Occupancy() = %v, %v, want mean 1 and positive spread", mean, sd)
	}
	if banks := r.SortedBanks(); len(banks) != 2 || banks[0] != 0 || banks[1] != 32 {
		t.Errorf("SortedBanks() = %v, want [0 32]", banks)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	set := lds.FromAddrs([]lds.Address{0, 4})
	tests := []struct {
		name  string
		set   lds.AccessSet
		model lds.BankModel
		want  error
	}{
		{name: "zero model", set: set, model: lds.BankModel{}, want: lds.ErrPrecondition},
		{name: "negative banks", set: set, model: lds.BankModel{Banks: -32, WordBytes: 4}, want: lds.ErrPrecondition},
		{name: "negative address", set: lds.FromAddrs([]lds.Address{0, -4}), model: lds.BankModel{Banks: 32, WordBytes: 4}, want: lds.ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.set, tt.model)
			if !errors.Is(err, tt.want) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.want)
			}
		})
	}
}
