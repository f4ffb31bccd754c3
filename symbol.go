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
	"bytes"
	"encoding/binary"
	"strings"

	"kfst.dev/go/kfst/internal/intern"
)

// Kind discriminates the variants of [Symbol].
type Kind uint8

const (
	// KindEpsilon matches without consuming input and never appears in
	// output.
	KindEpsilon Kind = iota
	// KindIdentity matches exactly one unknown input symbol; on the output
	// side it emits the consumed input symbol verbatim.
	KindIdentity
	// KindUnknown matches any unknown input symbol; on the output side it is
	// emitted literally.
	KindUnknown
	// KindFlag is a flag diacritic: epsilon in matching semantics, mutates
	// the flag register it is applied to.
	KindFlag
	// KindString is an ordinary alphabet element.
	KindString
	// KindRaw is an opaque host-supplied token. It is never produced by
	// parsing.
	KindRaw
)

// FlagKind is the operation letter of a flag diacritic.
type FlagKind uint8

const (
	FlagUnify    FlagKind = iota // @U.K.V@
	FlagRequire                  // @R.K@ or @R.K.V@
	FlagDisallow                 // @D.K@ or @D.K.V@
	FlagClear                    // @C.K@
	FlagPositive                 // @P.K.V@
	FlagNegative                 // @N.K.V@
)

var flagLetters = [...]string{
	FlagUnify:    "U",
	FlagRequire:  "R",
	FlagDisallow: "D",
	FlagClear:    "C",
	FlagPositive: "P",
	FlagNegative: "N",
}

// String returns the operation letter.
func (k FlagKind) String() string {
	if int(k) < len(flagLetters) {
		return flagLetters[k]
	}
	return "?"
}

const (
	epsilonText  = "@_EPSILON_SYMBOL_@"
	identityText = "@_IDENTITY_SYMBOL_@"
	unknownText  = "@_UNKNOWN_SYMBOL_@"
	zeroText     = "@0@"
)

// Symbol is one element of a transducer alphabet.
//
// This is a packed representation: one discriminant byte followed by 15
// payload bytes, so that a symbol fits in 16 bytes and is directly
// comparable. String and flag text is stored as interned ids, which makes
// equality independent of where a symbol was parsed.
//
// Payload layout by kind:
//
//	KindString: data[0] bit 0 = unknown, data[1:5] = interned text
//	KindFlag:   data[0] = FlagKind, data[1] = has-value,
//	            data[2:6] = interned key, data[6:10] = interned value
//	KindRaw:    data[0] bit 0 = epsilon, bit 1 = unknown; data[1:15] is
//	            caller-defined
//
// The zero value is the epsilon symbol.
type Symbol struct {
	kind Kind
	data [15]byte
}

// Epsilon, Identity and Unknown are the special symbols of the alphabet.
var (
	Epsilon  = Symbol{kind: KindEpsilon}
	Identity = Symbol{kind: KindIdentity}
	Unknown  = Symbol{kind: KindUnknown}
)

// NewStringSymbol returns an ordinary alphabet symbol for text. The unknown
// mark distinguishes tokens produced by the fallback branch of the tokenizer
// from alphabet members.
func NewStringSymbol(text string, unknown bool) Symbol {
	s := Symbol{kind: KindString}
	if unknown {
		s.data[0] = 1
	}
	binary.BigEndian.PutUint32(s.data[1:5], uint32(intern.Intern(text)))
	return s
}

// NewFlagSymbol returns a flag diacritic. An empty value stands for the
// valueless @K.KEY@ form, which only the R, D and C kinds accept at
// execution time.
func NewFlagSymbol(kind FlagKind, key, value string) Symbol {
	s := Symbol{kind: KindFlag}
	s.data[0] = byte(kind)
	if value != "" {
		s.data[1] = 1
		binary.BigEndian.PutUint32(s.data[6:10], uint32(intern.Intern(value)))
	}
	binary.BigEndian.PutUint32(s.data[2:6], uint32(intern.Intern(key)))
	return s
}

// NewRawSymbol returns an opaque host-defined symbol. Bit 0 of payload[0]
// marks the symbol as epsilon, bit 1 as unknown; the remaining 14 bytes are
// not interpreted by the engine. The payload renders as the string formed by
// payload[1:] up to the first NUL.
func NewRawSymbol(payload [15]byte) Symbol {
	return Symbol{kind: KindRaw, data: payload}
}

// Kind returns the variant of the symbol.
func (s Symbol) Kind() Kind { return s.kind }

// IsEpsilon reports whether the symbol matches without consuming input.
// True for the epsilon special, every flag diacritic, and raw symbols with
// the epsilon bit set.
func (s Symbol) IsEpsilon() bool {
	switch s.kind {
	case KindEpsilon, KindFlag:
		return true
	case KindRaw:
		return s.data[0]&1 != 0
	default:
		return false
	}
}

// IsUnknown reports whether the symbol is marked as not covered by the
// alphabet it was tokenized against.
func (s Symbol) IsUnknown() bool {
	switch s.kind {
	case KindString:
		return s.data[0]&1 != 0
	case KindRaw:
		return s.data[0]&2 != 0
	default:
		return false
	}
}

// GetSymbol returns the textual form of the symbol.
func (s Symbol) GetSymbol() string {
	switch s.kind {
	case KindEpsilon:
		return epsilonText
	case KindIdentity:
		return identityText
	case KindUnknown:
		return unknownText
	case KindFlag:
		var sb strings.Builder
		sb.WriteByte('@')
		sb.WriteString(s.FlagKind().String())
		sb.WriteByte('.')
		sb.WriteString(s.FlagKey())
		if value, ok := s.FlagValue(); ok {
			sb.WriteByte('.')
			sb.WriteString(value)
		}
		sb.WriteByte('@')
		return sb.String()
	case KindString:
		return intern.Text(intern.ID(binary.BigEndian.Uint32(s.data[1:5])))
	case KindRaw:
		payload := s.data[1:]
		if i := bytes.IndexByte(payload, 0); i >= 0 {
			payload = payload[:i]
		}
		return string(payload)
	}
	return ""
}

// String implements [fmt.Stringer] as the textual form of the symbol.
func (s Symbol) String() string { return s.GetSymbol() }

// FlagKind returns the operation letter of a flag diacritic. Meaningless for
// other kinds.
func (s Symbol) FlagKind() FlagKind { return FlagKind(s.data[0]) }

// FlagKey returns the register key of a flag diacritic.
func (s Symbol) FlagKey() string {
	return intern.Text(s.flagKeyID())
}

// FlagValue returns the value of a flag diacritic, if present.
func (s Symbol) FlagValue() (string, bool) {
	id, ok := s.flagValueID()
	if !ok {
		return "", false
	}
	return intern.Text(id), true
}

func (s Symbol) flagKeyID() intern.ID {
	return intern.ID(binary.BigEndian.Uint32(s.data[2:6]))
}

func (s Symbol) flagValueID() (intern.ID, bool) {
	if s.data[1] == 0 {
		return 0, false
	}
	return intern.ID(binary.BigEndian.Uint32(s.data[6:10])), true
}

// RawPayload returns the 15 payload bytes of a raw symbol.
func (s Symbol) RawPayload() [15]byte { return s.data }

// orderClass groups kinds the way the total order treats them: the three
// specials share one class.
func (s Symbol) orderClass() int {
	switch s.kind {
	case KindEpsilon, KindIdentity, KindUnknown:
		return 0
	case KindFlag:
		return 1
	case KindString:
		return 2
	default:
		return 3
	}
}

// Compare orders s against o in the canonical total order, the one the
// alphabet is sorted by. It returns a negative number when s sorts first.
func (s Symbol) Compare(o Symbol) int { return compareSymbols(s, o) }

// compareSymbols is the total order over symbols.
//
// Strings, specials and flags compare by their textual forms in reverse, both
// within a class and across classes, so that longer and lexicographically
// later strings sort first; strings with equal text put the plain one before
// the unknown-marked one, and raw symbols compare by payload bytes. The alphabet sorted under this
// order doubles as the tokenizer dictionary: a symbol always precedes its
// proper prefixes, which is what makes the tokenizer's first match the
// longest one.
func compareSymbols(a, b Symbol) int {
	if a == b {
		return 0
	}
	ac, bc := a.orderClass(), b.orderClass()
	if ac == bc {
		switch ac {
		case 2: // strings: reverse on text, then unknown ascending
			if c := strings.Compare(b.GetSymbol(), a.GetSymbol()); c != 0 {
				return c
			}
			return boolCompare(a.IsUnknown(), b.IsUnknown())
		case 3: // raw: payload bytes
			return strings.Compare(string(a.data[:]), string(b.data[:]))
		default: // specials and flags: reverse on the canonical text
			return strings.Compare(b.GetSymbol(), a.GetSymbol())
		}
	}
	if c := strings.Compare(b.GetSymbol(), a.GetSymbol()); c != 0 {
		return c
	}
	// Equal renderings across classes: the string variant sorts lesser. Such
	// symbols never coexist in a parsed transducer.
	switch {
	case a.kind == KindString:
		return -1
	case b.kind == KindString:
		return 1
	default:
		return int(a.kind) - int(b.kind)
	}
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

// ParseSymbol parses the textual form of a single symbol.
//
// Flag diacritics and the special symbols are recognized first; any other
// non-empty text becomes an ordinary string symbol. @0@ is accepted as a
// spelling of epsilon. Raw symbols are never parsed from text.
func ParseSymbol(text string) (Symbol, error) {
	if sym, ok := parseFlag(text); ok {
		return sym, nil
	}
	switch text {
	case epsilonText, zeroText:
		return Epsilon, nil
	case identityText:
		return Identity, nil
	case unknownText:
		return Unknown, nil
	}
	if text == "" {
		return Symbol{}, &valueError{code: errCodeSymbol, detail: "empty symbol text"}
	}
	return NewStringSymbol(text, false), nil
}

// parseFlag recognizes @[URDCPN].KEY@ and @[URDCPN].KEY.VALUE@. When the
// body has a dot after its first character, the key is everything up to that
// dot and the rest is the value; an empty value means the text is not a flag.
// A body with no such dot is a valueless key.
func parseFlag(text string) (Symbol, bool) {
	if len(text) < 5 || text[0] != '@' || text[len(text)-1] != '@' || text[2] != '.' {
		return Symbol{}, false
	}
	var kind FlagKind
	switch text[1] {
	case 'U':
		kind = FlagUnify
	case 'R':
		kind = FlagRequire
	case 'D':
		kind = FlagDisallow
	case 'C':
		kind = FlagClear
	case 'P':
		kind = FlagPositive
	case 'N':
		kind = FlagNegative
	default:
		return Symbol{}, false
	}
	body := text[3 : len(text)-1]
	if body == "" || strings.ContainsRune(body, '@') {
		return Symbol{}, false
	}
	if i := strings.IndexByte(body, '.'); i > 0 {
		key, value := body[:i], body[i+1:]
		if value == "" {
			return Symbol{}, false
		}
		return NewFlagSymbol(kind, key, value), true
	}
	return NewFlagSymbol(kind, body, ""), true
}
