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

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this module that belongs to one of
// these categories wraps the matching sentinel, so callers test with errors.Is.
var (
	// ErrOutOfRange means an address escaped [0, Capacity).
	ErrOutOfRange = errors.New("address out of range")

	// ErrMisaligned means an address violated the declared alignment.
	ErrMisaligned = errors.New("address misaligned")

	// ErrInvalidCandidate means a formula instantiation failed a validity
	// precondition (bijection, data preservation, ...) and must not be ranked.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrPrecondition means the request itself is malformed.
	ErrPrecondition = errors.New("precondition violated")
)

// Error carries the context of a failed evaluation or check.
type Error struct {
	Kind    error  // One of the sentinel errors above
	Op      string // Operation that failed
	Lane    int    // Offending lane, -1 if not lane specific
	Addr    Address
	Message string
}

func (e *Error) Error() string {
	if e.Lane >= 0 {
		return fmt.Sprintf("lds: %s: %v: lane %d addr %#x: %s", e.Op, e.Kind, e.Lane, e.Addr, e.Message)
	}
	return fmt.Sprintf("lds: %s: %v: %s", e.Op, e.Kind, e.Message)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Preconditionf reports a malformed request.
func Preconditionf(op, format string, args ...any) error {
	return &Error{Kind: ErrPrecondition, Op: op, Lane: -1, Message: fmt.Sprintf(format, args...)}
}

// InvalidCandidatef reports a candidate that failed a validity check at lane.
// Pass lane -1 when the failure is not tied to a lane.
func InvalidCandidatef(op string, lane int, addr Address, format string, args ...any) error {
	return &Error{Kind: ErrInvalidCandidate, Op: op, Lane: lane, Addr: addr, Message: fmt.Sprintf(format, args...)}
}

// Reason returns a short, stable label for err suitable for counting dropped
// candidates: "out_of_range", "misaligned", "invalid", "precondition" or "other".
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, ErrMisaligned):
		return "misaligned"
	case errors.Is(err, ErrInvalidCandidate):
		return "invalid"
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	default:
		return "other"
	}
}
