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
	"errors"
	"fmt"
)

const (
	errCodeOk errCode = iota
	errCodeATTLine
	errCodeHeader
	errCodeVersion
	errCodeTruncated
	errCodeTrailing
	errCodeUTF8
	errCodeSymbol
	errCodeRange
	errCodeCompress
)

type errCode int

var errs = [...]error{
	errCodeOk:        nil,
	errCodeATTLine:   errors.New("malformed AT&T line"),
	errCodeHeader:    errors.New("bad KFST header"),
	errCodeVersion:   errors.New("unsupported KFST version"),
	errCodeTruncated: errors.New("truncated KFST data"),
	errCodeTrailing:  errors.New("trailing bytes after KFST payload"),
	errCodeUTF8:      errors.New("invalid UTF-8 in symbol"),
	errCodeSymbol:    errors.New("unparseable symbol text"),
	errCodeRange:     errors.New("value out of range"),
	errCodeCompress:  errors.New("corrupt compressed payload"),
}

// ErrValue is the class of all malformed-data errors: bad AT&T text, bad
// KFST bytes, unparseable symbols, out-of-range values during encode.
// Every such error matches it under [errors.Is].
var ErrValue = errors.New("invalid transducer data")

// valueError is a malformed-data error returned by the codecs.
type valueError struct {
	code   errCode
	detail string
}

// Unwrap implements error unwrapping viz [errors.Unwrap].
func (e *valueError) Unwrap() error {
	return errs[e.code]
}

// Is reports membership in the [ErrValue] class.
func (e *valueError) Is(target error) bool {
	return target == ErrValue || target == errs[e.code]
}

// Error implements [error].
func (e *valueError) Error() string {
	if e.detail == "" {
		return fmt.Sprintf("kfst: %v", errs[e.code])
	}
	return fmt.Sprintf("kfst: %v: %s", errs[e.code], e.detail)
}

// SyntaxError is a malformed-data error with a position: a line of AT&T
// text that failed to parse. Line is 0-based.
type SyntaxError struct {
	Line int
	Text string
}

// Error implements [error].
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("kfst: failed to parse att code on line %d:\n%s", e.Line, e.Text)
}

// Is reports membership in the [ErrValue] class.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrValue
}

// TokenizationError is returned by [FST.Lookup] and [FST.Tokenize] when the
// input contains text not covered by the alphabet and unknown symbols are
// not allowed.
type TokenizationError struct {
	Input string
}

// Error implements [error].
func (e *TokenizationError) Error() string {
	return fmt.Sprintf("kfst: input cannot be split into symbols: %s", e.Input)
}
