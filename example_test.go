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

package kfst_test

import (
	"fmt"

	"kfst.dev/go/kfst"
)

// A transducer is usually loaded from a file, but the AT&T text form is
// handy for small machines: this one maps "cat" to "cat+N" with weight 0.5.
func ExampleFST_Lookup() {
	fst, err := kfst.FromATT("0\t1\tcat\tcat+N\t0.5\n1")
	if err != nil {
		panic(err)
	}
	analyses, err := fst.Lookup("cat", kfst.InitialState(), false)
	if err != nil {
		panic(err)
	}
	for _, a := range analyses {
		fmt.Printf("%s %g\n", a.Output, a.Weight)
	}
	// Output: cat+N 0.5
}

func ExampleFST_Tokenize() {
	fst, err := kfst.FromATT("0\t1\tab\tx\n0\t1\ta\ty\n1")
	if err != nil {
		panic(err)
	}
	tokens, err := fst.Tokenize("aba", false)
	if err != nil {
		panic(err)
	}
	for _, tok := range tokens {
		fmt.Println(tok.GetSymbol())
	}
	// Output:
	// ab
	// a
}

func ExampleParseSymbol() {
	sym, err := kfst.ParseSymbol("@U.CASE.NOM@")
	if err != nil {
		panic(err)
	}
	value, _ := sym.FlagValue()
	fmt.Println(sym.Kind() == kfst.KindFlag, sym.FlagKey(), value)
	// Output: true CASE NOM
}
