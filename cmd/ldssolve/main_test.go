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
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/ajroetker/go-ldsbank/lds"
)

// run executes the CLI with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LDS_BANKS", "")
	t.Setenv("LDS_WORKERS", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// TestGolden runs every testdata/*.txtar archive. Each archive holds an
// "args" file (one argument per line) and the expected "stdout".
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			sections := make(map[string]string)
			for _, f := range ar.Files {
				sections[f.Name] = string(f.Data)
			}
			require.Contains(t, sections, "args")
			require.Contains(t, sections, "stdout")

			args := strings.Fields(sections["args"])
			got, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, sections["stdout"], got)
		})
	}
}

func TestSearchWorkersAgree(t *testing.T) {
	args := []string{"search", "--family", "xor", "--pitch", "144", "--xor", "0:32", "--top", "5", "--format", "csv"}
	one, err := run(t, append(args, "--workers", "1")...)
	require.NoError(t, err)
	many, err := run(t, append(args, "--workers", "7")...)
	require.NoError(t, err)
	assert.Equal(t, one, many)

	lines := strings.Split(strings.TrimSpace(one), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "rank,pitch,xor,max_conflict,unique_banks,formula", lines[0])
	assert.Equal(t, "1,144,4,1,64,(row*144 + k) ^ (row*4)", lines[1])
	assert.Equal(t, "5,144,8,2,32,(row*144 + k) ^ (row*8)", lines[5])
}

func TestSearchPreserveDropsSwizzles(t *testing.T) {
	// Every nonzero XOR shift moves some lane off its element, so only the
	// identity swizzle survives the data check.
	out, err := run(t, "search", "--family", "xor", "--pitch", "144", "--xor", "0:32:4",
		"--preserve", "144", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t,
		"rank,pitch,xor,max_conflict,unique_banks,formula\n"+
			"1,144,0,4,16,(row*144 + k) ^ (row*0)\n",
		out)
}

func TestTargetOverrides(t *testing.T) {
	out, err := run(t, "search", "--target", "cdna2", "--pitch", "128,132", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t,
		"rank,pitch,offset,max_conflict,unique_banks,formula\n"+
			"1,132,0,2,32,row*132 + 0 + k\n"+
			"2,128,0,64,1,row*128 + 0 + k\n",
		out)

	// An explicit --banks wins over the profile.
	out, err = run(t, "search", "--target", "cdna2", "--banks", "64", "--pitch", "132", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "1,132,0,1,64,")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		is   error
	}{
		{
			name: "unknown target",
			args: []string{"search", "--target", "gfx0"},
			want: `unknown target "gfx0"`,
		},
		{
			name: "analyze needs single values",
			args: []string{"analyze", "--pitch", "128:136:4"},
			want: "--pitch: want a single value, got 2",
		},
		{
			name: "bad range",
			args: []string{"search", "--pitch", "128:136:0"},
			want: "step must be positive",
		},
		{
			name: "bad format",
			args: []string{"search", "--pitch", "132", "--format", "json"},
			want: `unknown format "json"`,
			is:   lds.ErrPrecondition,
		},
		{
			name: "coverage without reads",
			args: []string{"coverage", "--table", "0x96"},
			want: "coverage objective needs a read set",
			is:   lds.ErrPrecondition,
		},
		{
			name: "zero banks",
			args: []string{"search", "--banks", "0"},
			is:   lds.ErrPrecondition,
		},
		{
			name: "negative operand shift",
			args: []string{"analyze", "--formula", "ternary", "--a-shift", "-1", "--table", "0xF0"},
			want: "--a-shift",
			is:   lds.ErrPrecondition,
		},
		{
			name: "wide operand shift in search",
			args: []string{"coverage", "--b-shift", "32", "--reads", "0,17"},
			want: "--b-shift",
			is:   lds.ErrPrecondition,
		},
		{
			name: "analyze out of range",
			args: []string{"analyze", "--pitch", "4096"},
			is:   lds.ErrOutOfRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.want != "" {
				assert.ErrorContains(t, err, tt.want)
			}
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v, want %v", err, tt.is)
			}
		})
	}
}

func TestReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.txt")
	require.NoError(t, os.WriteFile(path, []byte("0x100, 0x111\n0x122 0x133\n"), 0o644))

	set, err := readAddrs(nil, path)
	require.NoError(t, err)
	assert.Equal(t, []lds.Address{0x100, 0x111, 0x122, 0x133}, set.Addrs())

	set, err = readAddrs(intList{1, 2}, "")
	require.NoError(t, err)
	assert.Equal(t, []lds.Address{1, 2}, set.Addrs())

	_, err = readAddrs(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestIntList(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "132", want: []int{132}},
		{in: "0x100", want: []int{256}},
		{in: "1,2,3", want: []int{1, 2, 3}},
		{in: "128:140:4", want: []int{128, 132, 136}},
		{in: "0:3", want: []int{0, 1, 2}},
		{in: "0:0x40:0x20", want: []int{0, 32}},
		{in: "5:5", want: nil},
		{in: "1:2:3:4", wantErr: true},
		{in: "0:4:-1", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var l intList
			err := l.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, []int(l))
		})
	}

	l := intList{128, 132, 136}
	assert.Equal(t, "128:140:4", l.String())
	l = intList{1, 5}
	assert.Equal(t, "1,5", l.String())
}

func TestGetTarget(t *testing.T) {
	assert.Equal(t, []string{"cdna2", "cdna3", "rdna"}, AvailableTargets())
	for _, name := range AvailableTargets() {
		tgt, err := GetTarget(strings.ToUpper(name))
		require.NoError(t, err)
		assert.Equal(t, name, tgt.Name)
		assert.NoError(t, tgt.Config.Validate())
		assert.Len(t, tgt.Layout.KOffsets, tgt.Config.Lanes/tgt.Layout.RowsPerPhase)
	}
	_, err := GetTarget("sm90")
	assert.Error(t, err)
}

func TestEnv(t *testing.T) {
	out, err := run(t, "env", "--target", "rdna")
	require.NoError(t, err)
	assert.Contains(t, out, "target")
	assert.Contains(t, out, "banks")
	assert.Contains(t, out, "32 x 4 bytes")
	assert.Contains(t, out, "rows/phase=16 koffsets=[0 8]")
}
