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
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kfst.dev/go/kfst"
)

func TestParseSymbolSpecials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want kfst.Symbol
	}{
		{"@_EPSILON_SYMBOL_@", kfst.Epsilon},
		{"@0@", kfst.Epsilon},
		{"@_IDENTITY_SYMBOL_@", kfst.Identity},
		{"@_UNKNOWN_SYMBOL_@", kfst.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			sym, err := kfst.ParseSymbol(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sym)
		})
	}

	// @0@ canonicalizes to epsilon but renders in the long form.
	sym, err := kfst.ParseSymbol("@0@")
	require.NoError(t, err)
	assert.Equal(t, "@_EPSILON_SYMBOL_@", sym.GetSymbol())
}

func TestParseSymbolFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		kind      kfst.FlagKind
		key       string
		value     string
		withValue bool
	}{
		{"@U.CASE.NOM@", kfst.FlagUnify, "CASE", "NOM", true},
		{"@R.V_SALLITTU.T@", kfst.FlagRequire, "V_SALLITTU", "T", true},
		{"@R.X@", kfst.FlagRequire, "X", "", false},
		{"@D.X@", kfst.FlagDisallow, "X", "", false},
		{"@C.X@", kfst.FlagClear, "X", "", false},
		{"@P.K.V@", kfst.FlagPositive, "K", "V", true},
		{"@N.K.V@", kfst.FlagNegative, "K", "V", true},
		// The value may itself contain dots; the key is cut at the first.
		{"@R.X.Y.Z@", kfst.FlagRequire, "X", "Y.Z", true},
		// A leading dot folds into a valueless key.
		{"@U..V@", kfst.FlagUnify, ".V", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			sym, err := kfst.ParseSymbol(tt.text)
			require.NoError(t, err)
			assert.Equal(t, kfst.KindFlag, sym.Kind())
			assert.True(t, sym.IsEpsilon())
			assert.False(t, sym.IsUnknown())
			assert.Equal(t, tt.kind, sym.FlagKind())
			assert.Equal(t, tt.key, sym.FlagKey())
			value, ok := sym.FlagValue()
			assert.Equal(t, tt.withValue, ok)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.text, sym.GetSymbol())
		})
	}
}

func TestParseSymbolStrings(t *testing.T) {
	t.Parallel()

	// Near-miss flag shapes degrade to ordinary string symbols.
	for _, text := range []string{
		"a", "kissa", "ä", "@", "@X.K@", "@R.X.@", "@what@ever@",
		"@_EPSILON_SYMBOL_@x",
	} {
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			sym, err := kfst.ParseSymbol(text)
			require.NoError(t, err)
			assert.Equal(t, kfst.KindString, sym.Kind())
			assert.False(t, sym.IsEpsilon())
			assert.False(t, sym.IsUnknown())
			assert.Equal(t, text, sym.GetSymbol())
		})
	}

	_, err := kfst.ParseSymbol("")
	assert.ErrorIs(t, err, kfst.ErrValue)
}

func TestSymbolEquality(t *testing.T) {
	t.Parallel()

	assert.Equal(t, kfst.NewStringSymbol("a", false), kfst.NewStringSymbol("a", false))
	assert.NotEqual(t, kfst.NewStringSymbol("a", false), kfst.NewStringSymbol("a", true))
	assert.NotEqual(t, kfst.NewStringSymbol("a", false), kfst.NewStringSymbol("b", false))

	parsed, err := kfst.ParseSymbol("@P.K.V@")
	require.NoError(t, err)
	assert.Equal(t, kfst.NewFlagSymbol(kfst.FlagPositive, "K", "V"), parsed)
}

func TestSymbolOrdering(t *testing.T) {
	t.Parallel()

	str := func(s string) kfst.Symbol { return kfst.NewStringSymbol(s, false) }

	// Longer and lexicographically later strings sort first.
	syms := []kfst.Symbol{str("a"), str("abc"), str("b"), str("ab")}
	slices.SortFunc(syms, kfst.Symbol.Compare)
	var texts []string
	for _, s := range syms {
		texts = append(texts, s.GetSymbol())
	}
	assert.Equal(t, []string{"b", "abc", "ab", "a"}, texts)

	// A symbol always sorts before its proper prefixes.
	assert.Negative(t, str("ab").Compare(str("a")))
	assert.Negative(t, str("abc").Compare(str("ab")))

	// Unknown-marked strings sort after their plain twin.
	assert.Negative(t, str("a").Compare(kfst.NewStringSymbol("a", true)))

	// Cross-variant: textual forms in reverse, the string variant lesser on
	// ties.
	flag := kfst.NewFlagSymbol(kfst.FlagUnify, "K", "V")
	assert.Equal(t, -1, str("@U.K.V@").Compare(flag))
	assert.Equal(t, 1, flag.Compare(str("@U.K.V@")))
	assert.Positive(t, str("a").Compare(str("b")))
}

func TestRawSymbol(t *testing.T) {
	t.Parallel()

	var payload [15]byte
	payload[0] = 1 | 2
	copy(payload[1:], "tok")
	sym := kfst.NewRawSymbol(payload)
	assert.Equal(t, kfst.KindRaw, sym.Kind())
	assert.True(t, sym.IsEpsilon())
	assert.True(t, sym.IsUnknown())
	assert.Equal(t, "tok", sym.GetSymbol())
	assert.Equal(t, payload, sym.RawPayload())

	var plain [15]byte
	copy(plain[1:], "tok")
	assert.False(t, kfst.NewRawSymbol(plain).IsEpsilon())
	assert.False(t, kfst.NewRawSymbol(plain).IsUnknown())
}
