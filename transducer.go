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
	"slices"

	"github.com/elliotchance/orderedmap/v3"
)

// Transition is one edge out of a node: the target node, the output symbol
// and the transition weight. The input symbol is the key the transition is
// grouped under.
type Transition struct {
	Target uint64
	Out    Symbol
	Weight float64
}

// RuleTable maps an input symbol to the transitions it enables, in insertion
// order. Deterministic traversal order depends on it.
type RuleTable = orderedmap.OrderedMap[Symbol, []Transition]

// FST is a finite-state transducer: a set of nodes, a weighted final-node
// set, per-node transition tables, and the canonically sorted alphabet the
// tokenizer matches against.
//
// An FST is immutable once constructed and safe to share between
// goroutines; concurrent lookups are independent.
type FST struct {
	finals *orderedmap.OrderedMap[uint64, float64]
	rules  *orderedmap.OrderedMap[uint64, *RuleTable]

	// alphabet is sorted so that longer symbols shadow their prefixes during
	// tokenization; the sort order also defines the symbol indices of the
	// KFST binary format. alphaText caches the renderings in the same order.
	alphabet  []Symbol
	alphaText []string

	// Debug turns on exploration tracing when the module is built with the
	// debug tag.
	Debug bool
}

// Builder accumulates final states and transitions and produces an [FST].
// Insertion order is preserved, both across source nodes and across the
// input symbols of one node.
type Builder struct {
	finals  *orderedmap.OrderedMap[uint64, float64]
	rules   *orderedmap.OrderedMap[uint64, *RuleTable]
	symbols []Symbol
	seen    map[Symbol]struct{}
}

// NewBuilder returns an empty transducer builder.
func NewBuilder() *Builder {
	return &Builder{
		finals: orderedmap.NewOrderedMap[uint64, float64](),
		rules:  orderedmap.NewOrderedMap[uint64, *RuleTable](),
		seen:   make(map[Symbol]struct{}),
	}
}

// AddFinal marks node as a final node with the given terminal weight.
func (b *Builder) AddFinal(node uint64, weight float64) *Builder {
	b.finals.Set(node, weight)
	return b
}

// AddTransition adds an edge from src to dst relating the input symbol to
// the output symbol with the given weight. Both symbols join the alphabet.
func (b *Builder) AddTransition(src, dst uint64, in, out Symbol, weight float64) *Builder {
	table, ok := b.rules.Get(src)
	if !ok {
		table = orderedmap.NewOrderedMap[Symbol, []Transition]()
		b.rules.Set(src, table)
	}
	group, _ := table.Get(in)
	table.Set(in, append(group, Transition{Target: dst, Out: out, Weight: weight}))
	b.addSymbol(in)
	b.addSymbol(out)
	return b
}

// addSymbol records a symbol for the alphabet, deduplicating.
func (b *Builder) addSymbol(sym Symbol) {
	if _, ok := b.seen[sym]; ok {
		return
	}
	b.seen[sym] = struct{}{}
	b.symbols = append(b.symbols, sym)
}

// Build sorts the alphabet and returns the finished transducer. The builder
// must not be used afterwards.
func (b *Builder) Build() *FST {
	return FromRules(b.finals, b.rules, b.symbols)
}

// FromRules assembles a transducer directly from pre-built rule maps: the
// weighted final-node set, the per-node transition tables, and the symbols
// of the alphabet. The maps are taken over as-is, their insertion order
// becoming the traversal order; symbols are sorted into the canonical
// descending order. Both codecs funnel through this constructor, via
// [Builder].
func FromRules(
	finals *orderedmap.OrderedMap[uint64, float64],
	rules *orderedmap.OrderedMap[uint64, *RuleTable],
	symbols []Symbol,
) *FST {
	alphabet := slices.Clone(symbols)
	slices.SortFunc(alphabet, compareSymbols)
	texts := make([]string, len(alphabet))
	for i, sym := range alphabet {
		texts[i] = sym.GetSymbol()
	}
	return &FST{
		finals:    finals,
		rules:     rules,
		alphabet:  alphabet,
		alphaText: texts,
	}
}

// Alphabet returns the sorted alphabet: every symbol appearing in any rule
// position, in the canonical descending symbol order, where each symbol
// precedes its proper prefixes.
func (f *FST) Alphabet() []Symbol {
	return slices.Clone(f.alphabet)
}

// FinalWeight returns the terminal weight of node, if node is final.
func (f *FST) FinalWeight(node uint64) (float64, bool) {
	return f.finals.Get(node)
}

// FinalStates returns the final-node set with terminal weights.
func (f *FST) FinalStates() map[uint64]float64 {
	out := make(map[uint64]float64, f.finals.Len())
	for node, weight := range f.finals.AllFromFront() {
		out[node] = weight
	}
	return out
}

// NumTransitions counts the edges of the transducer.
func (f *FST) NumTransitions() int {
	var n int
	for _, table := range f.rules.AllFromFront() {
		for _, group := range table.AllFromFront() {
			n += len(group)
		}
	}
	return n
}

// Transitions returns the transition group for a source node and input
// symbol, in insertion order. The returned slice must not be modified.
func (f *FST) Transitions(src uint64, in Symbol) []Transition {
	table, ok := f.rules.Get(src)
	if !ok {
		return nil
	}
	group, _ := table.Get(in)
	return group
}
