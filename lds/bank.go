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

// BankModel is the interleaving of shared memory across banks: consecutive
// words of WordBytes bytes go to consecutive banks, wrapping after Banks.
type BankModel struct {
	Banks     int
	WordBytes int
}

// Validate fails with ErrPrecondition unless Banks is positive. A
// non-positive WordBytes is allowed and means DefaultWordBytes.
func (m BankModel) Validate() error {
	if m.Banks <= 0 {
		return Preconditionf("BankModel.Validate", "bank count must be positive, got %d", m.Banks)
	}
	return nil
}

// Bank returns the bank holding addr. m must be valid.
func (m BankModel) Bank(addr Address) int {
	return BankOf(addr, m.Banks, m.WordBytes)
}

// BankOf returns (addr / wordBytes) mod bankCount.
//
// addr must be non-negative and bankCount positive; callers check both
// (Config.Validate, BankModel.Validate, Evaluator.Evaluate). A non-positive
// wordBytes is treated as DefaultWordBytes.
func BankOf(addr Address, bankCount, wordBytes int) int {
	if wordBytes <= 0 {
		wordBytes = DefaultWordBytes
	}
	return (addr / wordBytes) % bankCount
}
