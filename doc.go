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

// Package kfst executes finite-state transducers compatible with the HFST
// toolchain, primarily morphological analyzers such as Voikko and Omorfi.
//
// A transducer is loaded from the textual AT&T representation with [FromATT]
// or from the compact binary KFST representation with [FromKFST], and
// queried with [FST.Lookup], which enumerates every output string the
// transducer accepts for an input together with an accumulated path weight:
//
//	fst, err := kfst.FromKFSTFile("voikko.kfst")
//	if err != nil { ... }
//	analyses, err := fst.Lookup("kissa", kfst.InitialState(), false)
//
// The exploration is non-deterministic and weight-accumulating: all
// accepting paths are found, ordered by weight, deduplicated by output
// string. Flag diacritics (@U.K.V@ and friends) gate transitions through a
// pair of per-path registers; identity and unknown wildcards match tokens
// the alphabet does not cover.
//
// Lower-level entry points expose the pipeline stages: [FST.Tokenize] splits
// text against the alphabet with greedy longest-match, [FST.Run] performs
// the raw exploration and reports non-terminal positions too.
//
// Transducers are immutable after construction and safe for concurrent use;
// lookups on a shared transducer are independent.
package kfst
