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
	"github.com/elliotchance/orderedmap/v3"

	"kfst.dev/go/kfst/internal/intern"
)

// flagEntry is one register cell: a polarity and an interned value.
type flagEntry struct {
	positive bool
	value    intern.ID
}

// agrees reports whether a stored entry agrees with a queried value:
// positively set to it, or negatively set to something else.
func (e flagEntry) agrees(value intern.ID) bool {
	return e.positive == (e.value == value)
}

// register is a flag-diacritic register: a partial function from flag key to
// (polarity, value), immutable by convention. Every mutating flag traversal
// produces a fresh register; a nil register is empty.
//
// The map preserves insertion order so that path states hash and render
// deterministically.
type register struct {
	m *orderedmap.OrderedMap[intern.ID, flagEntry]
}

func (r *register) get(key intern.ID) (flagEntry, bool) {
	if r == nil || r.m == nil {
		return flagEntry{}, false
	}
	return r.m.Get(key)
}

func (r *register) len() int {
	if r == nil || r.m == nil {
		return 0
	}
	return r.m.Len()
}

// clone returns a mutable copy of the register.
func (r *register) clone() *register {
	m := orderedmap.NewOrderedMap[intern.ID, flagEntry]()
	if r != nil && r.m != nil {
		for key, entry := range r.m.AllFromFront() {
			m.Set(key, entry)
		}
	}
	return &register{m: m}
}

// update applies a symbol to the register. Non-flag symbols leave the
// register untouched. For flag diacritics the result is either the register
// to continue with, or ok=false to reject the transition.
//
// The register itself is never mutated: kinds that change state return a
// fresh copy, kinds that only test return the receiver.
func (r *register) update(sym Symbol) (*register, bool) {
	if sym.Kind() != KindFlag {
		return r, true
	}
	key := sym.flagKeyID()
	value, hasValue := sym.flagValueID()

	switch sym.FlagKind() {
	case FlagUnify:
		// Unification fails if the key is positively set to another value or
		// negatively set to this one; a negative entry for another value is
		// promoted to a positive one.
		if !hasValue {
			return nil, false
		}
		if stored, ok := r.get(key); ok {
			if (stored.positive && stored.value != value) ||
				(!stored.positive && stored.value == value) {
				return nil, false
			}
		}
		next := r.clone()
		next.m.Set(key, flagEntry{positive: true, value: value})
		return next, true

	case FlagRequire:
		stored, ok := r.get(key)
		if !ok {
			return nil, false
		}
		if hasValue && !stored.agrees(value) {
			return nil, false
		}
		return r, true

	case FlagDisallow:
		stored, ok := r.get(key)
		switch {
		case !ok:
			return r, true
		case !hasValue:
			return nil, false
		case stored.agrees(value):
			return nil, false
		default:
			return r, true
		}

	case FlagClear:
		next := r.clone()
		next.m.Delete(key)
		return next, true

	case FlagPositive:
		if !hasValue {
			return nil, false
		}
		next := r.clone()
		next.m.Set(key, flagEntry{positive: true, value: value})
		return next, true

	case FlagNegative:
		if !hasValue {
			return nil, false
		}
		next := r.clone()
		next.m.Set(key, flagEntry{positive: false, value: value})
		return next, true
	}
	return nil, false
}

// FlagValue is the externally visible form of one register cell.
type FlagValue struct {
	Positive bool
	Value    string
}

// snapshot renders the register for callers.
func (r *register) snapshot() map[string]FlagValue {
	out := make(map[string]FlagValue, r.len())
	if r == nil || r.m == nil {
		return out
	}
	for key, entry := range r.m.AllFromFront() {
		out[intern.Text(key)] = FlagValue{Positive: entry.positive, Value: intern.Text(entry.value)}
	}
	return out
}
