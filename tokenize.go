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
	"strings"
	"unicode/utf8"
)

// Tokenize converts text to the input symbol sequence of this transducer.
//
// From each position the alphabet is scanned in its sort order and the first
// symbol whose textual form is a prefix of the remaining text is taken; the
// sort order puts every symbol before its proper prefixes, so the match is
// the longest one. When nothing
// in the alphabet matches, one code point is consumed as an unknown-marked
// string symbol if allowUnknown is set; otherwise tokenization fails with a
// [TokenizationError].
func (f *FST) Tokenize(text string, allowUnknown bool) ([]Symbol, error) {
	var out []Symbol
	rest := text
scan:
	for len(rest) > 0 {
		for i, symText := range f.alphaText {
			if symText != "" && strings.HasPrefix(rest, symText) {
				out = append(out, f.alphabet[i])
				rest = rest[len(symText):]
				continue scan
			}
		}
		if !allowUnknown {
			return nil, &TokenizationError{Input: text}
		}
		r, size := utf8.DecodeRuneInString(rest)
		out = append(out, NewStringSymbol(string(r), true))
		rest = rest[size:]
	}
	return out, nil
}
