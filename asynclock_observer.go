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

var _ Observer[int] = (*AsyncLockObserver[int])(nil)

// AsyncLockObserver wraps an Observer so that every notification is
// delivered through an AsyncLock instead of on the calling goroutine
// directly: whichever caller finds the lock idle drains the queue and ends
// up running every notification (its own and anyone else's that arrived
// meanwhile) in arrival order, one at a time, without ever holding the lock
// while the inner observer runs. Termination finality is enforced by an
// ObserverBase sitting behind the lock.
//
// Prefer this over SynchronizedObserver when notifications may need to
// queue rather than block: a slow producer thread is never held up waiting
// for a notification to finish running on another goroutine.
type AsyncLockObserver[T any] struct {
	base *ObserverBase[T]
	lock *AsyncLock
}

// NewAsyncLockObserver wraps inner with queued, mutually-exclusive
// delivery and termination-finality enforcement. lock is the AsyncLock
// notifications are scheduled through; pass the same lock to multiple
// AsyncLockObservers to serialize all of them against each other, or
// NewAsyncLock() for one exclusive to this observer.
func NewAsyncLockObserver[T any](inner Observer[T], lock *AsyncLock) *AsyncLockObserver[T] {
	return &AsyncLockObserver[T]{
		base: NewObserverBase(inner),
		lock: lock,
	}
}

func (o *AsyncLockObserver[T]) OnNext(value T) {
	o.lock.Schedule(func() {
		o.base.OnNext(value)
	})
}

func (o *AsyncLockObserver[T]) OnError(err error) {
	o.lock.Schedule(func() {
		o.base.OnError(err)
	})
}

func (o *AsyncLockObserver[T]) OnCompleted() {
	o.lock.Schedule(func() {
		o.base.OnCompleted()
	})
}
