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
	"slices"
	"strings"

	"github.com/ajroetker/go-ldsbank/lds"
)

// Target is a named hardware profile: the bank geometry and the lane split of
// the matrix-core fragment loads that the harness measures on it.
type Target struct {
	Name   string
	Config lds.Config
	Layout lds.LaneLayout
}

// CDNA3Target is a 64-bank LDS read by wave64 MFMA fragments: 32 rows per
// phase, the second phase 8 b128 elements further along K.
func CDNA3Target() Target {
	return Target{
		Name:   "cdna3",
		Config: lds.DefaultConfig(),
		Layout: lds.LaneLayout{RowsPerPhase: 32, KOffsets: []int{0, 8}, ElemBytes: 16},
	}
}

// CDNA2Target is the 32-bank variant of the same wave64 access.
func CDNA2Target() Target {
	t := CDNA3Target()
	t.Name = "cdna2"
	t.Config.BankCount = 32
	return t
}

// RDNATarget is a 32-bank LDS accessed by wave32 WMMA fragments: 16 rows per
// phase, the second phase 8 halves (16 bytes) further along K.
func RDNATarget() Target {
	cfg := lds.DefaultConfig()
	cfg.BankCount = 32
	cfg.Lanes = 32
	return Target{
		Name:   "rdna",
		Config: cfg,
		Layout: lds.LaneLayout{RowsPerPhase: 16, KOffsets: []int{0, 8}, ElemBytes: 2},
	}
}

var targets = map[string]func() Target{
	"cdna3": CDNA3Target,
	"cdna2": CDNA2Target,
	"rdna":  RDNATarget,
}

// GetTarget returns the profile registered under name.
func GetTarget(name string) (Target, error) {
	mk, ok := targets[strings.ToLower(name)]
	if !ok {
		return Target{}, fmt.Errorf("unknown target %q (available: %s)", name, strings.Join(AvailableTargets(), ", "))
	}
	return mk(), nil
}

// AvailableTargets returns the registered target names, sorted.
func AvailableTargets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
