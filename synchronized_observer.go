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

import "github.com/kestrelstream/corera/internal/xsync"

var _ Observer[int] = (*SynchronizedObserver[int])(nil)

// SynchronizedObserver wraps an Observer so that notifications arriving
// from different goroutines are serialized onto a single call at a time,
// while a notification that re-enters synchronously from the same call
// stack (a downstream consumer calling back into its own producer) is let
// through rather than deadlocked against itself.
//
// Combine with ObserverBase when termination finality also needs to be
// enforced; SynchronizedObserver only provides mutual exclusion.
type SynchronizedObserver[T any] struct {
	inner Observer[T]
	mu    *xsync.ReentrantMutex
}

// NewSynchronizedObserver wraps inner with reentrant mutual exclusion.
func NewSynchronizedObserver[T any](inner Observer[T]) *SynchronizedObserver[T] {
	return &SynchronizedObserver[T]{
		inner: inner,
		mu:    xsync.NewReentrantMutex(),
	}
}

func (o *SynchronizedObserver[T]) OnNext(value T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.inner.OnNext(value)
}

func (o *SynchronizedObserver[T]) OnError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.inner.OnError(err)
}

func (o *SynchronizedObserver[T]) OnCompleted() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.inner.OnCompleted()
}
