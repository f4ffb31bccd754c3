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

package kfst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kfst.dev/go/kfst"
)

func TestRunUnknownWildcard(t *testing.T) {
	t.Parallel()

	fst, err := kfst.FromATT("0\t1\t@_UNKNOWN_SYMBOL_@\ty\n1")
	require.NoError(t, err)

	// A known token does not match the unknown wildcard.
	paths := fst.Run([]kfst.Symbol{kfst.NewStringSymbol("x", false)}, kfst.InitialState(), false)
	assert.Empty(t, paths)

	// An unknown-marked token does; the output is the bottom symbol.
	paths = fst.Run([]kfst.Symbol{kfst.NewStringSymbol("x", true)}, kfst.InitialState(), false)
	require.Len(t, paths, 1)
	assert.True(t, paths[0].Final)
	assert.False(t, paths[0].PostInputAdvance)
	assert.Equal(t, uint64(1), paths[0].State.Node)
	assert.Equal(t, 0.0, paths[0].State.Weight)
	assert.Equal(t, []kfst.Symbol{kfst.NewStringSymbol("y", false)}, paths[0].State.Output)
}

func TestRunIdentityWildcard(t *testing.T) {
	t.Parallel()

	fst, err := kfst.FromATT("0\t1\t@_IDENTITY_SYMBOL_@\t@_IDENTITY_SYMBOL_@\n1")
	require.NoError(t, err)

	paths := fst.Run([]kfst.Symbol{kfst.NewStringSymbol("x", false)}, kfst.InitialState(), false)
	assert.Empty(t, paths)

	// Identity on the output side replays the consumed input symbol,
	// unknown mark included.
	paths = fst.Run([]kfst.Symbol{kfst.NewStringSymbol("x", true)}, kfst.InitialState(), false)
	require.Len(t, paths, 1)
	assert.True(t, paths[0].Final)
	assert.Equal(t, []kfst.Symbol{kfst.NewStringSymbol("x", true)}, paths[0].State.Output)
}

func TestRunUnknownBeforeIdentity(t *testing.T) {
	t.Parallel()

	// Both wildcards are attempted for an unknown token, UNKNOWN first.
	code := "0\t1\t@_UNKNOWN_SYMBOL_@\tu\n0\t2\t@_IDENTITY_SYMBOL_@\t@_IDENTITY_SYMBOL_@\n1\n2"
	fst, err := kfst.FromATT(code)
	require.NoError(t, err)

	paths := fst.Run([]kfst.Symbol{kfst.NewStringSymbol("q", true)}, kfst.InitialState(), false)
	require.Len(t, paths, 2)
	assert.Equal(t, uint64(1), paths[0].State.Node)
	assert.Equal(t, "u", paths[0].State.OutputString())
	assert.Equal(t, uint64(2), paths[1].State.Node)
	assert.Equal(t, "q", paths[1].State.OutputString())
}

func TestRunReportsNonTerminalPositions(t *testing.T) {
	t.Parallel()

	fst, err := kfst.FromATT("0\t1\ta\tb\n1\t2\tc\td\n2")
	require.NoError(t, err)

	// Consuming only a prefix leaves a non-terminal path at node 1.
	paths := fst.Run([]kfst.Symbol{kfst.NewStringSymbol("a", false)}, kfst.InitialState(), false)
	require.Len(t, paths, 1)
	assert.False(t, paths[0].Final)
	assert.Equal(t, uint64(1), paths[0].State.Node)
}

func TestRunWeightIntegrity(t *testing.T) {
	t.Parallel()

	code := "0\t1\ta\tb\t0.125\n1\t2\t@0@\t@0@\t0.25\n2\t0.5"
	fst, err := kfst.FromATT(code)
	require.NoError(t, err)

	paths := fst.Run([]kfst.Symbol{kfst.NewStringSymbol("a", false)}, kfst.InitialState(), false)
	var finals []kfst.Path
	for _, p := range paths {
		if p.Final {
			finals = append(finals, p)
		}
	}
	require.Len(t, finals, 1)
	assert.Equal(t, 0.125+0.25+0.5, finals[0].State.Weight)
}

func TestRunEpsilonPostInputAdvance(t *testing.T) {
	t.Parallel()

	// An epsilon transition taken after the input ran out marks the
	// resulting positions as post-input-advance.
	fst, err := kfst.FromATT("0\t1\t@0@\tx\n1")
	require.NoError(t, err)

	paths := fst.Run(nil, kfst.InitialState(), false)
	require.Len(t, paths, 2)
	assert.False(t, paths[0].Final)
	assert.False(t, paths[0].PostInputAdvance)
	assert.True(t, paths[1].Final)
	assert.True(t, paths[1].PostInputAdvance)
	assert.Equal(t, "x", paths[1].State.OutputString())
}

func TestRunOutputHasNoEpsilonClassSymbols(t *testing.T) {
	t.Parallel()

	code := "0\t1\ta\t@0@\n1\t2\tb\t@P.K.V@\n2\t3\tc\tz\n3"
	fst, err := kfst.FromATT(code)
	require.NoError(t, err)

	input := []kfst.Symbol{
		kfst.NewStringSymbol("a", false),
		kfst.NewStringSymbol("b", false),
		kfst.NewStringSymbol("c", false),
	}
	paths := fst.Run(input, kfst.InitialState(), false)
	require.NotEmpty(t, paths)
	for _, p := range paths {
		for _, sym := range p.State.Output {
			assert.False(t, sym.IsEpsilon())
			assert.NotEqual(t, kfst.KindFlag, sym.Kind())
		}
	}
}

func TestStateHashDeterminism(t *testing.T) {
	t.Parallel()

	fst, err := kfst.FromATT("0\t1\t@P.K.V@\tx\t0.5\n1")
	require.NoError(t, err)

	first := fst.Run(nil, kfst.InitialState(), false)
	second := fst.Run(nil, kfst.InitialState(), false)
	require.Len(t, first, len(second))
	for i := range first {
		assert.Equal(t, first[i].State.Hash(), second[i].State.Hash())
		assert.True(t, first[i].State.Equal(second[i].State))
	}

	assert.NotEqual(t, kfst.NewState(0).Hash(), kfst.NewState(1).Hash())
}
