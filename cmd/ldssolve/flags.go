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
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ajroetker/go-ldsbank/lds"
	"github.com/ajroetker/go-ldsbank/lds/contrib/solver"
)

// intList is a pflag.Value holding an explicit enumeration of integers. It
// accepts "start:stop:step" (stop exclusive), "start:stop" (step 1), a comma
// separated list, or a single value. Integers may be written in any base
// strconv understands (0x100, 0b1010, ...).
type intList []int

var _ pflag.Value = (*intList)(nil)

func (l *intList) String() string {
	if r, ok := l.asRange(); ok {
		return r
	}
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// asRange formats l as start:stop:step when it is an increasing arithmetic
// progression of more than two values.
func (l *intList) asRange() (string, bool) {
	xs := *l
	if len(xs) < 3 {
		return "", false
	}
	step := xs[1] - xs[0]
	if step <= 0 {
		return "", false
	}
	for i := 2; i < len(xs); i++ {
		if xs[i]-xs[i-1] != step {
			return "", false
		}
	}
	return fmt.Sprintf("%d:%d:%d", xs[0], xs[len(xs)-1]+step, step), true
}

func (l *intList) Type() string { return "ints" }

func (l *intList) Set(s string) error {
	vals, err := parseIntList(s)
	if err != nil {
		return err
	}
	*l = vals
	return nil
}

func parseIntList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return nil, fmt.Errorf("range %q: want start:stop[:step]", s)
		}
		nums := make([]int, len(parts))
		for i, p := range parts {
			n, err := parseInt(p)
			if err != nil {
				return nil, fmt.Errorf("range %q: %w", s, err)
			}
			nums[i] = n
		}
		step := 1
		if len(nums) == 3 {
			step = nums[2]
		}
		if step <= 0 {
			return nil, fmt.Errorf("range %q: step must be positive", s)
		}
		return solver.Range("", nums[0], nums[1], step).Values, nil
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := parseInt(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(n), nil
}

// readAddrs loads the read set for a coverage search from an inline list or a
// file of whitespace or comma separated addresses.
func readAddrs(inline intList, path string) (lds.AccessSet, error) {
	if path == "" {
		return lds.FromAddrs(inline), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading read set: %w", err)
	}
	addrs, err := parseIntList(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return lds.FromAddrs(addrs), nil
}
