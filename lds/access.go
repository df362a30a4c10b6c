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

// Access is one lane's shared memory access.
type Access struct {
	Lane Lane
	Addr Address
}

// AccessSet is the accesses of one wavefront instruction, ordered by lane.
// It is not modified after Materialize returns it.
type AccessSet []Access

// Addrs returns the addresses of s in lane order.
func (s AccessSet) Addrs() []Address {
	out := make([]Address, len(s))
	for i, a := range s {
		out[i] = a.Addr
	}
	return out
}

// FromAddrs builds an AccessSet assigning addrs[i] to lane i. It is the entry
// point for externally derived address lists such as captured register dumps.
func FromAddrs(addrs []Address) AccessSet {
	s := make(AccessSet, len(addrs))
	for i, a := range addrs {
		s[i] = Access{Lane: i, Addr: a}
	}
	return s
}

// Evaluator computes the addresses of a Formula under a Config and LaneLayout.
// It is immutable and safe for concurrent use.
type Evaluator struct {
	cfg    Config
	layout LaneLayout
}

// NewEvaluator returns an Evaluator. cfg is not validated here; Materialize
// and Evaluate do not need a valid bank geometry, only Capacity and Align.
func NewEvaluator(cfg Config, layout LaneLayout) *Evaluator {
	return &Evaluator{cfg: cfg, layout: layout}
}

// Config returns the evaluator's configuration.
func (e *Evaluator) Config() Config { return e.cfg }

// Layout returns the evaluator's lane layout.
func (e *Evaluator) Layout() LaneLayout { return e.layout }

// Evaluate returns the byte address lane touches at the given row and
// iteration. It fails with ErrOutOfRange if the address is outside
// [0, Capacity) and with ErrMisaligned if it is not a multiple of Align.
// Nothing is clamped. A TernarySelect operand shift outside [0, 32) fails
// with ErrPrecondition.
func (e *Evaluator) Evaluate(f Formula, lane Lane, row, iter int) (Address, error) {
	var addr Address
	switch f := f.(type) {
	case Linear:
		addr = row*f.Pitch + f.Offset + e.layout.KOffset(lane, iter)
	case XorSwizzle:
		addr = (row*f.Pitch + e.layout.KOffset(lane, iter)) ^ (row * f.XorShift)
	case TernarySelect:
		if err := f.A.Validate(); err != nil {
			return 0, err
		}
		if err := f.B.Validate(); err != nil {
			return 0, err
		}
		addr = Address(TernaryOp(f.A.Apply(lane), f.B.Apply(lane), f.C, f.Table))
	default:
		return 0, Preconditionf("Evaluate", "unsupported formula %T", f)
	}
	return addr, e.check(lane, addr)
}

func (e *Evaluator) check(lane Lane, addr Address) error {
	if addr < 0 || addr >= e.cfg.Capacity {
		return &Error{Kind: ErrOutOfRange, Op: "Evaluate", Lane: lane, Addr: addr,
			Message: "outside [0, capacity)"}
	}
	if e.cfg.Align > 1 && addr%e.cfg.Align != 0 {
		return &Error{Kind: ErrMisaligned, Op: "Evaluate", Lane: lane, Addr: addr,
			Message: "not a multiple of the required alignment"}
	}
	return nil
}

// Materialize evaluates f for every lane of the wavefront at iteration iter,
// with each lane's row given by the layout. The first failing lane aborts.
func (e *Evaluator) Materialize(f Formula, iter int) (AccessSet, error) {
	set := make(AccessSet, e.cfg.Lanes)
	for lane := range e.cfg.Lanes {
		addr, err := e.Evaluate(f, lane, e.layout.Row(lane), iter)
		if err != nil {
			return nil, err
		}
		set[lane] = Access{Lane: lane, Addr: addr}
	}
	return set, nil
}
