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

package scc_test

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"kfst.dev/go/kfst/internal/scc"
)

func graphOf(edges map[int][]int) scc.Graph[int] {
	return func(n int) iter.Seq[int] {
		return slices.Values(edges[n])
	}
}

func cyclicSets(components []scc.Component[int]) [][]int {
	var out [][]int
	for _, c := range components {
		if !c.Cyclic {
			continue
		}
		members := slices.Clone(c.Members)
		slices.Sort(members)
		out = append(out, members)
	}
	return out
}

func TestSortAcyclic(t *testing.T) {
	t.Parallel()

	components := scc.Sort([]int{0}, graphOf(map[int][]int{
		0: {1, 2},
		1: {2},
	}))
	assert.Len(t, components, 3)
	assert.Empty(t, cyclicSets(components))
}

func TestSortCycle(t *testing.T) {
	t.Parallel()

	components := scc.Sort([]int{0}, graphOf(map[int][]int{
		0: {1},
		1: {2},
		2: {0, 3},
	}))
	assert.Equal(t, [][]int{{0, 1, 2}}, cyclicSets(components))
}

func TestSortSelfLoop(t *testing.T) {
	t.Parallel()

	components := scc.Sort([]int{0}, graphOf(map[int][]int{
		0: {1},
		1: {1},
	}))
	assert.Equal(t, [][]int{{1}}, cyclicSets(components))
}

func TestSortDisconnectedRoots(t *testing.T) {
	t.Parallel()

	components := scc.Sort([]int{0, 5}, graphOf(map[int][]int{
		0: {1},
		5: {6},
		6: {5},
	}))
	assert.Equal(t, [][]int{{5, 6}}, cyclicSets(components))
}
