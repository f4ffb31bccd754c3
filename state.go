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
	"encoding/binary"
	"hash/fnv"
	"math"
)

// State is one point on an exploration path: the current node, the weight
// accumulated so far, the input- and output-side flag registers, and the
// output symbols emitted so far.
//
// States are immutable; the executor derives new states instead of mutating.
// The registers are structurally shared between derived states, so branching
// does not deep-copy them.
type State struct {
	// Node is the current transducer node.
	Node uint64
	// Weight is the sum of traversed transition weights, plus the terminal
	// weight once the path completes.
	Weight float64

	inputFlags  *register
	outputFlags *register

	// Output is the sequence of output symbols emitted so far. It must not
	// be mutated in place.
	Output []Symbol
}

// InitialState returns the state every lookup starts from: node 0, weight 0,
// empty registers, no output.
func InitialState() State { return State{} }

// NewState returns an empty state positioned at node.
func NewState(node uint64) State { return State{Node: node} }

// InputFlags renders the input-side flag register.
func (s State) InputFlags() map[string]FlagValue { return s.inputFlags.snapshot() }

// OutputFlags renders the output-side flag register.
func (s State) OutputFlags() map[string]FlagValue { return s.outputFlags.snapshot() }

// OutputString concatenates the textual forms of the output symbols.
func (s State) OutputString() string {
	var size int
	texts := make([]string, len(s.Output))
	for i, sym := range s.Output {
		texts[i] = sym.GetSymbol()
		size += len(texts[i])
	}
	out := make([]byte, 0, size)
	for _, t := range texts {
		out = append(out, t...)
	}
	return string(out)
}

// Hash returns a deterministic hash of the state. The weight is hashed
// bit-for-bit, registers in insertion order.
func (s State) Hash() uint64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], s.Node)
	binary.BigEndian.PutUint64(buf[8:], math.Float64bits(s.Weight))
	_, _ = h.Write(buf[:])
	for _, r := range []*register{s.inputFlags, s.outputFlags} {
		if r == nil || r.m == nil {
			_, _ = h.Write([]byte{0})
			continue
		}
		for key, entry := range r.m.AllFromFront() {
			binary.BigEndian.PutUint32(buf[:4], uint32(key))
			binary.BigEndian.PutUint32(buf[4:8], uint32(entry.value))
			buf[8] = 0
			if entry.positive {
				buf[8] = 1
			}
			_, _ = h.Write(buf[:9])
		}
		_, _ = h.Write([]byte{0xff})
	}
	for _, sym := range s.Output {
		_, _ = h.Write([]byte{byte(sym.kind)})
		_, _ = h.Write(sym.data[:])
	}
	return h.Sum64()
}

// flagsEqual compares two registers entry-wise, ignoring insertion order.
func flagsEqual(a, b *register) bool {
	if a.len() != b.len() {
		return false
	}
	if a == nil || a.m == nil {
		return true
	}
	for key, entry := range a.m.AllFromFront() {
		other, ok := b.get(key)
		if !ok || other != entry {
			return false
		}
	}
	return true
}

// Equal reports whether two states are indistinguishable: same node, same
// bit-exact weight, equal registers and equal output sequences.
func (s State) Equal(o State) bool {
	if s.Node != o.Node || math.Float64bits(s.Weight) != math.Float64bits(o.Weight) {
		return false
	}
	if !flagsEqual(s.inputFlags, o.inputFlags) || !flagsEqual(s.outputFlags, o.outputFlags) {
		return false
	}
	if len(s.Output) != len(o.Output) {
		return false
	}
	for i := range s.Output {
		if s.Output[i] != o.Output[i] {
			return false
		}
	}
	return true
}
