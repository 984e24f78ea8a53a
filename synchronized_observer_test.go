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
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSynchronizedObserver_SerializesConcurrentCalls(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var mu sync.Mutex
	var inside, maxSeen int

	sync1 := NewSynchronizedObserver[int](OnNext(func(int) {
		mu.Lock()
		inside++
		if inside > maxSeen {
			maxSeen = inside
		}
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		inside--
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			sync1.OnNext(v)
		}(i)
	}
	wg.Wait()

	is.Equal(1, maxSeen)
}

func TestSynchronizedObserver_AllowsSynchronousReentrance(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var sync1 *SynchronizedObserver[int]
	var reentered bool

	sync1 = NewSynchronizedObserver[int](OnNext(func(v int) {
		if v == 1 {
			reentered = true
			sync1.OnNext(2)
		}
	}))

	done := make(chan struct{})
	go func() {
		sync1.OnNext(1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reentrant call deadlocked")
	}

	is.True(reentered)
}
