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

func TestAsyncLock_RunsActionsInArrivalOrder(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	lock := NewAsyncLock()

	var mu sync.Mutex
	var order []int

	lock.Schedule(func() {
		mu.Lock()
		order = append(order, 1)
		mu.Unlock()

		// Scheduled from inside a running action: must run after this one
		// returns, not reenter synchronously.
		lock.Schedule(func() {
			mu.Lock()
			order = append(order, 3)
			mu.Unlock()
		})

		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
	})

	is.Equal([]int{1, 2, 3}, order)
}

func TestAsyncLock_ConcurrentSchedulersAllRun(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	lock := NewAsyncLock()

	var mu sync.Mutex
	ran := 0

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock.Schedule(func() {
				mu.Lock()
				ran++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	is.Equal(64, ran)
}

func TestAsyncLock_DoesNotHoldLockWhileRunningAction(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	lock := NewAsyncLock()

	done := make(chan struct{})
	lock.Schedule(func() {
		// If Schedule held lock.mu while running the action, this second
		// Schedule call (which also needs lock.mu to enqueue) would
		// deadlock instead of just enqueuing and returning.
		lock.Schedule(func() { close(done) })
	})

	select {
	case <-done:
	default:
		t.Fatal("nested schedule should have already run by the time the outer Schedule returns")
	}
}
