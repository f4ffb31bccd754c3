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

//go:build !debug

// Package debug includes debugging helpers.
//
// Tracing is compiled in only under the debug build tag; without it every
// entry point is a no-op that vanishes at link time.
package debug

// Enabled is false when the module is built without the debug tag.
const Enabled = false

// Log is a no-op without the debug tag.
func Log(operation, format string, args ...any) {}

// Assert is a no-op without the debug tag.
func Assert(cond bool, format string, args ...any) {}
