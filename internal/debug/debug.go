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

//go:build debug

// Package debug includes debugging helpers.
//
// Tracing is compiled in only under the debug build tag; without it every
// entry point is a no-op that vanishes at link time.
package debug

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/timandy/routine"
)

// Enabled is true if the module is being built with the debug tag, which
// enables trace logging in the executor and the codecs.
const Enabled = true

var tracePattern *regexp.Regexp

func init() {
	flag.Func("kfst.filter", "regexp to filter kfst debug traces by", func(s string) (err error) {
		tracePattern, err = regexp.Compile(s)
		return err
	})
}

// Log prints one trace line to stderr.
//
// operation names the engine phase ("run", "kfst", ...) so traces can be
// filtered with -kfst.filter. Each line carries the calling file, line and
// goroutine id.
func Log(operation, format string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	file = filepath.Base(file)

	buf := new(strings.Builder)
	_, _ = fmt.Fprintf(buf, "%s:%d [g%04d] %s: ", file, line, routine.Goid(), operation)
	_, _ = fmt.Fprintf(buf, format, args...)

	if tracePattern != nil && !tracePattern.MatchString(buf.String()) {
		return
	}

	_, _ = buf.WriteString("\n")
	_, _ = os.Stderr.WriteString(buf.String())
}

// Assert panics if cond is false, but only in debug mode.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("kfst: internal assertion failed: "+format, args...))
	}
}
