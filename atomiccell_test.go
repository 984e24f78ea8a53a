// Copyright 2025 samber.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://github.com/samber/ro/blob/main/licenses/LICENSE.apache.md
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package corera

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomicCell_LoadStore(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	c := NewAtomicCell(1)
	is.Equal(1, c.Load())

	c.Store(2)
	is.Equal(2, c.Load())
}

func TestAtomicCell_CompareAndSwap(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	c := NewAtomicCell("idle")

	is.True(c.CompareAndSwap("idle", "busy"))
	is.Equal("busy", c.Load())

	is.False(c.CompareAndSwap("idle", "done"))
	is.Equal("busy", c.Load())
}

func TestAtomicCell_Synchronize(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	c := NewAtomicCell(0)

	result := c.Synchronize(func(v int) int { return v + 1 })

	is.Equal(1, result)
	is.Equal(1, c.Load())
}

func TestAtomicCell_ConcurrentCompareAndSwapOnlyOneWinner(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	c := NewAtomicCell(int32(0))

	var wg sync.WaitGroup
	var wins int32
	var mu sync.Mutex

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.CompareAndSwap(0, 1) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	is.EqualValues(1, wins)
}
