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
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"

	"kfst.dev/go/kfst/internal/debug"
)

// The KFST binary layout, all integers big-endian:
//
//	"KFST"             4 bytes
//	version            u16, must be 0
//	num_symbols        u16
//	num_transitions    u32
//	num_final_states   u32
//	weighted           u8
//	symbol_table       num_symbols NUL-terminated UTF-8 strings
//	body               LZMA-compressed:
//	  transitions      src u32, dst u32, top u16, bot u16 [, weight f64]
//	  finals           node u32 [, weight f64]
//
// Symbol indices refer to the alphabet in its canonical sort order. The
// weight fields exist only in weighted transducers.

var kfstMagic = []byte("KFST")

// xzMagic opens an XZ container. KFST writers in the wild produce either an
// XZ container or a bare LZMA stream for the body; the decoder accepts both
// by sniffing, the encoder emits bare LZMA.
var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// FromKFST parses the binary KFST representation of a transducer.
func FromKFST(data []byte) (*FST, error) {
	r := &byteReader{data: data}

	if !bytes.HasPrefix(data, kfstMagic) {
		return nil, &valueError{code: errCodeHeader, detail: "missing KFST magic"}
	}
	r.skip(len(kfstMagic))
	version, ok := r.u16()
	if !ok {
		return nil, &valueError{code: errCodeTruncated, detail: "header"}
	}
	if version != 0 {
		return nil, &valueError{code: errCodeVersion, detail: fmt.Sprintf("version %d", version)}
	}

	numSymbols, ok1 := r.u16()
	numTransitions, ok2 := r.u32()
	numFinals, ok3 := r.u32()
	weightedByte, ok4 := r.u8()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, &valueError{code: errCodeTruncated, detail: "header"}
	}
	weighted := weightedByte != 0

	symbols := make([]Symbol, numSymbols)
	for i := range symbols {
		raw, ok := r.cstring()
		if !ok {
			return nil, &valueError{code: errCodeTruncated, detail: "symbol table"}
		}
		if !utf8.Valid(raw) {
			return nil, &valueError{code: errCodeUTF8, detail: fmt.Sprintf("symbol %d", i)}
		}
		sym, err := ParseSymbol(string(raw))
		if err != nil {
			return nil, err
		}
		symbols[i] = sym
	}

	body, err := decompressBody(r.rest())
	if err != nil {
		return nil, err
	}
	debug.Log("kfst", "decode: %d symbols, %d transitions, %d finals, weighted=%v, body=%d bytes",
		numSymbols, numTransitions, numFinals, weighted, len(body))

	b := NewBuilder()
	// Register the whole symbol table up front: the alphabet includes every
	// table entry even when no rule references it.
	for _, sym := range dedupeSymbols(symbols) {
		b.addSymbol(sym)
	}

	br := &byteReader{data: body}
	for range numTransitions {
		src, ok1 := br.u32()
		dst, ok2 := br.u32()
		top, ok3 := br.u16()
		bot, ok4 := br.u16()
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, &valueError{code: errCodeTruncated, detail: "transition table"}
		}
		weight := 0.0
		if weighted {
			weight, ok = br.f64()
			if !ok {
				return nil, &valueError{code: errCodeTruncated, detail: "transition table"}
			}
		}
		if int(top) >= len(symbols) || int(bot) >= len(symbols) {
			return nil, &valueError{code: errCodeRange, detail: "symbol index"}
		}
		b.AddTransition(uint64(src), uint64(dst), symbols[top], symbols[bot], weight)
	}
	for range numFinals {
		node, ok := br.u32()
		if !ok {
			return nil, &valueError{code: errCodeTruncated, detail: "final states"}
		}
		weight := 0.0
		if weighted {
			weight, ok = br.f64()
			if !ok {
				return nil, &valueError{code: errCodeTruncated, detail: "final states"}
			}
		}
		b.AddFinal(uint64(node), weight)
	}
	if len(br.rest()) != 0 {
		return nil, &valueError{
			code:   errCodeTrailing,
			detail: fmt.Sprintf("%d bytes", len(br.rest())),
		}
	}
	return b.Build(), nil
}

// FromKFSTFile reads and parses a KFST file.
func FromKFSTFile(path string) (*FST, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kfst: reading kfst file: %w", err)
	}
	return FromKFST(data)
}

// ToKFST serializes the transducer as KFST bytes. The transducer is written
// as weighted exactly when any transition or terminal weight is non-zero.
func (f *FST) ToKFST() ([]byte, error) {
	weighted := false
	var numTransitions uint64
	for _, weight := range f.finals.AllFromFront() {
		if weight != 0 {
			weighted = true
		}
	}
	for _, table := range f.rules.AllFromFront() {
		for _, group := range table.AllFromFront() {
			for _, tr := range group {
				if tr.Weight != 0 {
					weighted = true
				}
				numTransitions++
			}
		}
	}

	if len(f.alphabet) > math.MaxUint16 {
		return nil, &valueError{code: errCodeRange, detail: fmt.Sprintf("%d symbols", len(f.alphabet))}
	}
	if numTransitions > math.MaxUint32 {
		return nil, &valueError{code: errCodeRange, detail: fmt.Sprintf("%d transitions", numTransitions)}
	}
	if f.finals.Len() > math.MaxUint32 {
		return nil, &valueError{code: errCodeRange, detail: fmt.Sprintf("%d final states", f.finals.Len())}
	}

	var out bytes.Buffer
	out.Write(kfstMagic)
	writeU16(&out, 0)
	writeU16(&out, uint16(len(f.alphabet)))
	writeU32(&out, uint32(numTransitions))
	writeU32(&out, uint32(f.finals.Len()))
	if weighted {
		out.WriteByte(1)
	} else {
		out.WriteByte(0)
	}
	for _, text := range f.alphaText {
		out.WriteString(text)
		out.WriteByte(0)
	}

	var body bytes.Buffer
	for src, table := range f.rules.AllFromFront() {
		for in, group := range table.AllFromFront() {
			top, err := f.symbolIndex(in)
			if err != nil {
				return nil, err
			}
			for _, tr := range group {
				bot, err := f.symbolIndex(tr.Out)
				if err != nil {
					return nil, err
				}
				if src > math.MaxUint32 || tr.Target > math.MaxUint32 {
					return nil, &valueError{code: errCodeRange, detail: "node id"}
				}
				writeU32(&body, uint32(src))
				writeU32(&body, uint32(tr.Target))
				writeU16(&body, top)
				writeU16(&body, bot)
				if weighted {
					writeF64(&body, tr.Weight)
				}
			}
		}
	}
	for node, weight := range f.finals.AllFromFront() {
		if node > math.MaxUint32 {
			return nil, &valueError{code: errCodeRange, detail: "node id"}
		}
		writeU32(&body, uint32(node))
		if weighted {
			writeF64(&body, weight)
		}
	}

	w, err := lzma.NewWriter(&out)
	if err != nil {
		return nil, &valueError{code: errCodeCompress, detail: err.Error()}
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return nil, &valueError{code: errCodeCompress, detail: err.Error()}
	}
	if err := w.Close(); err != nil {
		return nil, &valueError{code: errCodeCompress, detail: err.Error()}
	}
	return out.Bytes(), nil
}

// ToKFSTFile writes the KFST serialization to a file.
func (f *FST) ToKFSTFile(path string) error {
	data, err := f.ToKFST()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("kfst: writing kfst file: %w", err)
	}
	return nil
}

// symbolIndex finds a symbol's position in the sorted alphabet.
func (f *FST) symbolIndex(sym Symbol) (uint16, error) {
	i, ok := slices.BinarySearchFunc(f.alphabet, sym, compareSymbols)
	if !ok {
		return 0, &valueError{code: errCodeRange, detail: fmt.Sprintf("symbol %q not in alphabet", sym.GetSymbol())}
	}
	return uint16(i), nil
}

// decompressBody inflates the compressed tail of a KFST file.
func decompressBody(data []byte) ([]byte, error) {
	var (
		r   io.Reader
		err error
	)
	if bytes.HasPrefix(data, xzMagic) {
		r, err = xz.NewReader(bytes.NewReader(data))
	} else {
		r, err = lzma.NewReader(bytes.NewReader(data))
	}
	if err != nil {
		return nil, &valueError{code: errCodeCompress, detail: err.Error()}
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &valueError{code: errCodeCompress, detail: err.Error()}
	}
	return body, nil
}

// dedupeSymbols drops duplicate table entries, keeping first occurrences.
func dedupeSymbols(symbols []Symbol) []Symbol {
	seen := make(map[Symbol]struct{}, len(symbols))
	out := make([]Symbol, 0, len(symbols))
	for _, sym := range symbols {
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}

// byteReader is a cursor over a byte slice with big-endian accessors.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) skip(n int) { r.pos += n }

func (r *byteReader) rest() []byte { return r.data[r.pos:] }

func (r *byteReader) u8() (byte, bool) {
	if r.pos+1 > len(r.data) {
		return 0, false
	}
	b := r.data[r.pos]
	r.pos++
	return b, true
}

func (r *byteReader) u16() (uint16, bool) {
	if r.pos+2 > len(r.data) {
		return 0, false
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, true
}

func (r *byteReader) u32() (uint32, bool) {
	if r.pos+4 > len(r.data) {
		return 0, false
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, true
}

func (r *byteReader) f64() (float64, bool) {
	if r.pos+8 > len(r.data) {
		return 0, false
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return v, true
}

// cstring reads a non-empty NUL-terminated byte string.
func (r *byteReader) cstring() ([]byte, bool) {
	rest := r.rest()
	i := bytes.IndexByte(rest, 0)
	if i <= 0 {
		return nil, false
	}
	r.pos += i + 1
	return rest[:i], true
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeF64(buf *bytes.Buffer, v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}
