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

package intern_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"kfst.dev/go/kfst/internal/intern"
)

func TestInternStable(t *testing.T) {
	t.Parallel()

	a := intern.Intern("kissa")
	b := intern.Intern("koira")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, intern.Intern("kissa"))
	assert.Equal(t, "kissa", intern.Text(a))
	assert.Equal(t, "koira", intern.Text(b))
}

func TestInternConcurrent(t *testing.T) {
	t.Parallel()

	const goroutines = 16
	const words = 64

	var wg sync.WaitGroup
	ids := make([][]intern.ID, goroutines)
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[g] = make([]intern.ID, words)
			for w := range words {
				ids[g][w] = intern.Intern(fmt.Sprintf("word-%d", w))
			}
		}()
	}
	wg.Wait()

	for g := 1; g < goroutines; g++ {
		assert.Equal(t, ids[0], ids[g])
	}
	for w := range words {
		assert.Equal(t, fmt.Sprintf("word-%d", w), intern.Text(ids[0][w]))
	}
}
