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
	"iter"
	"slices"

	"kfst.dev/go/kfst/internal/scc"
)

// EpsilonCycles reports the groups of nodes that are mutually reachable
// through epsilon-class input transitions alone.
//
// The executor does not bound epsilon recursion; a grammar whose epsilon
// cycles are not broken by flag diacritics can make [FST.Run] diverge. An
// empty result means every epsilon path through the transducer is finite.
// Node ids within a group are sorted; groups appear in the order Tarjan's
// algorithm completes them, a group reachable from another listed first.
func (f *FST) EpsilonCycles() [][]uint64 {
	roots := make([]uint64, 0, f.rules.Len())
	for node := range f.rules.AllFromFront() {
		roots = append(roots, node)
	}

	graph := func(node uint64) iter.Seq[uint64] {
		return func(yield func(uint64) bool) {
			table, ok := f.rules.Get(node)
			if !ok {
				return
			}
			for in, group := range table.AllFromFront() {
				if !in.IsEpsilon() {
					continue
				}
				for _, tr := range group {
					if !yield(tr.Target) {
						return
					}
				}
			}
		}
	}

	var cycles [][]uint64
	for _, c := range scc.Sort(roots, graph) {
		if !c.Cyclic {
			continue
		}
		members := slices.Clone(c.Members)
		slices.Sort(members)
		cycles = append(cycles, members)
	}
	return cycles
}
