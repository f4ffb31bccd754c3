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

// Package intern provides a process-wide string interner.
//
// Every distinct string is assigned a stable 32-bit [ID]; the table is
// append-only and never evicts, so an ID remains valid for the lifetime of
// the process. Symbols store interned ids instead of strings, which makes
// symbol equality and hashing O(1).
package intern

import "sync"

// ID is a stable index for an interned string.
type ID uint32

var (
	mu   sync.RWMutex
	ids  = make(map[string]ID)
	strs []string

	// fast is a lock-free read path in front of the table. There is a
	// possibility that a string is interned while a concurrent reader misses
	// here; it then takes the slow path and finds it under the lock.
	fast Map[string, ID]
)

// Intern returns the ID for s, assigning one if s has not been seen before.
//
// Safe for concurrent use.
func Intern(s string) ID {
	if id, ok := fast.Load(s); ok {
		return id
	}

	mu.Lock()
	defer mu.Unlock()
	if id, ok := ids[s]; ok {
		return id
	}

	id := ID(len(strs))
	strs = append(strs, s)
	ids[s] = id
	fast.Store(s, id)
	return id
}

// Text returns the string for an ID previously returned by [Intern].
//
// Safe for concurrent use. Panics if id was never assigned.
func Text(id ID) string {
	mu.RLock()
	defer mu.RUnlock()
	return strs[id]
}

// Len returns the number of interned strings.
func Len() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(strs)
}
