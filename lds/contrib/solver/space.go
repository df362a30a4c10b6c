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
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-ldsbank/lds"
)

// Dim is one free parameter and the explicit list of values it takes.
type Dim struct {
	Name   string
	Values []int
}

// Range returns the dim start, start+step, ... below stop.
// A non-positive step yields an empty dim, which Space.Validate rejects.
func Range(name string, start, stop, step int) Dim {
	d := Dim{Name: name}
	if step <= 0 {
		return d
	}
	for v := start; v < stop; v += step {
		d.Values = append(d.Values, v)
	}
	return d
}

// Values returns a dim over the listed values.
func Values(name string, vs ...int) Dim {
	return Dim{Name: name, Values: vs}
}

// Space is the cartesian product of its dims. The last dim varies fastest.
type Space []Dim

// Size returns the number of points in s. It is only meaningful for a space
// that passes Validate.
func (s Space) Size() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, d := range s {
		n *= len(d.Values)
	}
	return n
}

// Validate fails with ErrPrecondition on an empty space, an empty or unnamed
// dim, a repeated name, or more points than an int can count.
func (s Space) Validate() error {
	if len(s) == 0 {
		return lds.Preconditionf("Space.Validate", "empty parameter space")
	}
	if dup := lo.FindDuplicates(lo.Map(s, func(d Dim, _ int) string { return d.Name })); len(dup) > 0 {
		return lds.Preconditionf("Space.Validate", "parameter %q listed twice", dup[0])
	}
	n := 1
	for _, d := range s {
		if d.Name == "" {
			return lds.Preconditionf("Space.Validate", "unnamed parameter")
		}
		if len(d.Values) == 0 {
			return lds.Preconditionf("Space.Validate", "parameter %q has no values", d.Name)
		}
		if n > math.MaxInt/len(d.Values) {
			return lds.Preconditionf("Space.Validate", "space too large: size overflows at parameter %q", d.Name)
		}
		n *= len(d.Values)
	}
	return nil
}

// Names returns the dim names in order.
func (s Space) Names() []string {
	return lo.Map(s, func(d Dim, _ int) string { return d.Name })
}

// At returns the i-th point of s in mixed-radix order.
func (s Space) At(i int) Assignment {
	a := make(Assignment, len(s))
	for j := len(s) - 1; j >= 0; j-- {
		n := len(s[j].Values)
		a[j] = Param{Name: s[j].Name, Value: s[j].Values[i%n]}
		i /= n
	}
	return a
}

// Param is one parameter value.
type Param struct {
	Name  string
	Value int
}

// Assignment is a point of a Space, in dim order.
type Assignment []Param

// Get returns the value of name, or def if the assignment does not set it.
func (a Assignment) Get(name string, def int) int {
	for _, p := range a {
		if p.Name == name {
			return p.Value
		}
	}
	return def
}

func (a Assignment) String() string {
	parts := lo.Map(a, func(p Param, _ int) string {
		return fmt.Sprintf("%s=%d", p.Name, p.Value)
	})
	return strings.Join(parts, " ")
}

// magnitude is the parameter overhead used to break ties: smaller padding,
// smaller shifts and smaller constants win.
func (a Assignment) magnitude() int {
	return lo.SumBy(a, func(p Param) int {
		if p.Value < 0 {
			return -p.Value
		}
		return p.Value
	})
}
