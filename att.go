// Copyright 2023-2025 The kfst-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kfst

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"kfst.dev/go/kfst/internal/debug"
)

// FromATT parses the tab-delimited AT&T text representation of a
// transducer.
//
// Lines with 1 or 2 columns declare final states (node, optional weight);
// lines with 4 or 5 columns declare transitions (src, dst, input symbol,
// output symbol, optional weight). Lines with any other column count are
// skipped. A column that fails to parse fails the whole file with a
// [SyntaxError] carrying the line number.
func FromATT(code string) (*FST, error) {
	b := NewBuilder()
	lines := strings.Split(code, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for lineno, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		columns := strings.Split(line, "\t")
		switch len(columns) {
		case 1, 2:
			node, err := strconv.ParseUint(columns[0], 10, 64)
			if err != nil {
				return nil, &SyntaxError{Line: lineno, Text: line}
			}
			weight := 0.0
			if len(columns) == 2 {
				weight, err = strconv.ParseFloat(columns[1], 64)
				if err != nil {
					return nil, &SyntaxError{Line: lineno, Text: line}
				}
			}
			b.AddFinal(node, weight)

		case 4, 5:
			src, err1 := strconv.ParseUint(columns[0], 10, 64)
			dst, err2 := strconv.ParseUint(columns[1], 10, 64)
			in, err3 := ParseSymbol(columns[2])
			out, err4 := ParseSymbol(columns[3])
			weight := 0.0
			var err5 error
			if len(columns) == 5 {
				weight, err5 = strconv.ParseFloat(columns[4], 64)
			}
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
				return nil, &SyntaxError{Line: lineno, Text: line}
			}
			b.AddTransition(src, dst, in, out, weight)
		}
	}
	fst := b.Build()
	debug.Log("att", "decode: %d lines, %d transitions, %d finals",
		len(lines), fst.NumTransitions(), fst.finals.Len())
	return fst, nil
}

// FromATTFile reads and parses an AT&T file.
func FromATTFile(path string) (*FST, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kfst: reading att file: %w", err)
	}
	return FromATT(string(data))
}

// ToATT serializes the transducer as AT&T text: every final state first,
// then every transition, with the weight column omitted where the weight is
// exactly zero.
func (f *FST) ToATT() string {
	var sb strings.Builder
	first := true
	row := func(format string, args ...any) {
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		fmt.Fprintf(&sb, format, args...)
	}

	for node, weight := range f.finals.AllFromFront() {
		if weight == 0 {
			row("%d", node)
		} else {
			row("%d\t%s", node, formatWeight(weight))
		}
	}
	for src, table := range f.rules.AllFromFront() {
		for in, group := range table.AllFromFront() {
			for _, tr := range group {
				if tr.Weight == 0 {
					row("%d\t%d\t%s\t%s", src, tr.Target, in.GetSymbol(), tr.Out.GetSymbol())
				} else {
					row("%d\t%d\t%s\t%s\t%s", src, tr.Target, in.GetSymbol(), tr.Out.GetSymbol(), formatWeight(tr.Weight))
				}
			}
		}
	}
	return sb.String()
}

// ToATTFile writes the AT&T serialization to a file.
func (f *FST) ToATTFile(path string) error {
	if err := os.WriteFile(path, []byte(f.ToATT()), 0o644); err != nil {
		return fmt.Errorf("kfst: writing att file: %w", err)
	}
	return nil
}

// formatWeight renders a weight with the shortest representation that
// round-trips, so integral weights print without a decimal point.
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}
