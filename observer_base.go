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
	"context"
	"sync/atomic"
)

var _ Observer[int] = (*ObserverBase[int])(nil)

// ObserverBase wraps an Observer and enforces termination finality: at most
// one of OnError/OnCompleted ever reaches the inner observer, and nothing
// reaches it afterwards. It does not serialize concurrent calls against
// each other; two notifications racing to be "the" terminal one are
// resolved by a single compare-and-swap, but a concurrent OnNext can still
// overlap with the terminal call that beat it. Use SynchronizedObserver or
// AsyncLockObserver on top when calls can arrive concurrently and mutual
// exclusion is required.
type ObserverBase[T any] struct {
	inner      Observer[T]
	terminated int32
}

// NewObserverBase wraps inner with termination-finality enforcement.
func NewObserverBase[T any](inner Observer[T]) *ObserverBase[T] {
	return &ObserverBase[T]{inner: inner}
}

// OnNext forwards value, unless a terminal notification has already been
// delivered, in which case value is dropped and reported to
// OnDroppedNotification.
func (o *ObserverBase[T]) OnNext(value T) {
	if atomic.LoadInt32(&o.terminated) != 0 {
		OnDroppedNotification(context.Background(), NewNotificationNext(value))
		return
	}

	o.inner.OnNext(value)
}

// OnError forwards err as the terminal notification, unless a terminal
// notification has already won the race, in which case err is dropped and
// reported to OnDroppedNotification.
func (o *ObserverBase[T]) OnError(err error) {
	if !atomic.CompareAndSwapInt32(&o.terminated, 0, 1) {
		OnDroppedNotification(context.Background(), NewNotificationError[T](err))
		return
	}

	o.inner.OnError(err)
}

// OnCompleted forwards completion as the terminal notification, unless a
// terminal notification has already won the race, in which case it is
// dropped and reported to OnDroppedNotification.
func (o *ObserverBase[T]) OnCompleted() {
	if !atomic.CompareAndSwapInt32(&o.terminated, 0, 1) {
		OnDroppedNotification(context.Background(), NewNotificationComplete[T]())
		return
	}

	o.inner.OnCompleted()
}

// IsStopped reports whether a terminal notification has been delivered (or
// lost the race to be delivered) already.
func (o *ObserverBase[T]) IsStopped() bool {
	return atomic.LoadInt32(&o.terminated) != 0
}
