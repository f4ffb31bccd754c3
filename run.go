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

	"kfst.dev/go/kfst/internal/debug"
)

// Path is one exploration result: the state reached, whether it completes an
// accepting path, and the post-input-advance marker the exploration carried
// at that point. The marker is surfaced for callers and not interpreted by
// the engine.
type Path struct {
	Final            bool
	PostInputAdvance bool
	State            State
}

// Run explores the transducer from state over input and returns every
// position reached with the input fully consumed, terminal and non-terminal.
// Transition groups are tried in rule-table order, except that for an
// unknown-marked input symbol the unknown and identity wildcard groups are
// tried after the others, unknown first.
//
// The exploration is a synchronous depth-first recursion. Epsilon cycles are
// not detected; grammars whose epsilon transitions are not gated by flags
// can make it diverge. [FST.EpsilonCycles] vets a transducer for that.
func (f *FST) Run(input []Symbol, state State, postInputAdvance bool) []Path {
	var out []Path
	f.run(input, state, postInputAdvance, &out)
	return out
}

func (f *FST) run(input []Symbol, state State, postInputAdvance bool, out *[]Path) {
	if f.Debug {
		debug.Log("run", "node=%d weight=%g |input|=%d", state.Node, state.Weight, len(input))
	}

	var head Symbol
	hasHead := len(input) > 0
	if hasHead {
		head = input[0]
	} else {
		// End of input: record where we are. The terminal weight is added
		// here, once, when the path completes on a final node.
		if weight, ok := f.finals.Get(state.Node); ok {
			final := state
			final.Weight += weight
			*out = append(*out, Path{Final: true, PostInputAdvance: postInputAdvance, State: final})
		} else {
			*out = append(*out, Path{PostInputAdvance: postInputAdvance, State: state})
		}
	}

	table, ok := f.rules.Get(state.Node)
	if !ok {
		return
	}
	for in, group := range table.AllFromFront() {
		if in.IsEpsilon() || (hasHead && head == in) {
			f.transition(input, state, group, head, hasHead, in, out)
		}
	}
	if hasHead && head.IsUnknown() {
		if group, ok := table.Get(Unknown); ok {
			f.transition(input, state, group, head, true, Unknown, out)
		}
		if group, ok := table.Get(Identity); ok {
			f.transition(input, state, group, head, true, Identity, out)
		}
	}
}

// transition attempts every edge of one transition group. A transition is
// taken only if both the input-side and output-side flag updates succeed.
func (f *FST) transition(input []Symbol, state State, group []Transition, head Symbol, hasHead bool, in Symbol, out *[]Path) {
	for _, tr := range group {
		outputFlags, ok := state.outputFlags.update(tr.Out)
		if !ok {
			continue
		}
		inputFlags, ok := state.inputFlags.update(in)
		if !ok {
			continue
		}

		outputs := state.Output
		switch {
		case hasHead && tr.Out == Identity:
			outputs = appendOutput(outputs, head)
		case tr.Out.IsEpsilon():
			// Epsilon-class symbols, flag diacritics included, emit nothing.
		default:
			outputs = appendOutput(outputs, tr.Out)
		}

		next := State{
			Node:        tr.Target,
			Weight:      state.Weight + tr.Weight,
			inputFlags:  inputFlags,
			outputFlags: outputFlags,
			Output:      outputs,
		}
		if in.IsEpsilon() {
			f.run(input, next, len(input) == 0, out)
		} else {
			f.run(input[1:], next, false, out)
		}
	}
}

// appendOutput appends without sharing spare capacity with sibling branches.
func appendOutput(outputs []Symbol, sym Symbol) []Symbol {
	return append(slices.Clip(outputs), sym)
}
