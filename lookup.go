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
	"cmp"
	"slices"
)

// Analysis is one lookup result: an output string and the weight of the
// cheapest path that produced it.
type Analysis struct {
	Output string
	Weight float64
}

// Lookup tokenizes text, runs the transducer from state, and returns the
// accepted analyses ordered by ascending weight. Analyses with the same
// output string are collapsed to the lowest-weight one.
//
// An input that tokenizes but reaches no final node yields an empty result
// and no error.
func (f *FST) Lookup(text string, state State, allowUnknown bool) ([]Analysis, error) {
	input, err := f.Tokenize(text, allowUnknown)
	if err != nil {
		return nil, err
	}

	var finished []Path
	for _, p := range f.Run(input, state, false) {
		if p.Final {
			finished = append(finished, p)
		}
	}
	slices.SortStableFunc(finished, func(a, b Path) int {
		return cmp.Compare(a.State.Weight, b.State.Weight)
	})

	seen := make(map[string]struct{}, len(finished))
	result := make([]Analysis, 0, len(finished))
	for _, p := range finished {
		output := p.State.OutputString()
		if _, ok := seen[output]; ok {
			continue
		}
		seen[output] = struct{}{}
		result = append(result, Analysis{Output: output, Weight: p.State.Weight})
	}
	return result, nil
}
