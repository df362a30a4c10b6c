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
	"os"
	"strconv"
)

// WorkersEnv returns the worker count requested through LDS_WORKERS, or 0 if
// unset or unparsable. 0 lets the caller pick GOMAXPROCS.
func WorkersEnv() int {
	return intEnv("LDS_WORKERS")
}

// BanksEnv returns the bank count requested through LDS_BANKS, or
// DefaultBankCount if unset or unparsable.
func BanksEnv() int {
	if n := intEnv("LDS_BANKS"); n > 0 {
		return n
	}
	return DefaultBankCount
}

func intEnv(name string) int {
	val := os.Getenv(name)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
