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

const (
	checkedObserverIdle int32 = iota
	checkedObserverBusy
	checkedObserverDone
)

var _ Observer[int] = (*CheckedObserver[int])(nil)

// CheckedObserver wraps an Observer with a state machine that raises an
// error instead of silently misbehaving whenever a caller violates the
// observer contract: a notification arriving while a previous one on the
// same CheckedObserver is still executing (reentrant or concurrent, this
// type cannot tell which), or any notification arriving after a terminal
// one has already been delivered.
//
// This is a debugging aid, not a concurrency primitive: it does not make
// concurrent notifications safe, it makes the violation loud. Wrap with
// SynchronizedObserver or AsyncLockObserver first if the producer can
// genuinely call from multiple goroutines and you want the calls
// serialized rather than rejected.
type CheckedObserver[T any] struct {
	inner Observer[T]
	state *AtomicCell[int32]
}

// NewCheckedObserver wraps inner with reentrancy and termination-finality
// checking.
func NewCheckedObserver[T any](inner Observer[T]) *CheckedObserver[T] {
	return &CheckedObserver[T]{
		inner: inner,
		state: NewAtomicCell(checkedObserverIdle),
	}
}

// enter claims the busy state on behalf of a notification of kind k,
// panicking with a *checkedObserverError if the claim is illegal. A
// violation still advances the state to done before it panics, so the
// broken observer cannot be reused: once a caller has proven it will not
// respect the protocol, every later notification is rejected as
// already-terminated rather than re-admitted.
func (o *CheckedObserver[T]) enter(k Kind) {
	if o.state.CompareAndSwap(checkedObserverIdle, checkedObserverBusy) {
		return
	}

	var prev int32
	o.state.Synchronize(func(s int32) int32 {
		prev = s
		return checkedObserverDone
	})

	if prev == checkedObserverDone {
		panic(newCheckedObserverError(k, ErrAlreadyTerminated))
	}

	panic(newCheckedObserverError(k, ErrReentrancy))
}

// leave advances the state machine out of busy once the wrapped
// notification has run, deferred so it fires whether or not the inner
// call panicked. It only ever leaves busy: if a nested reentrant call
// already drove the state to done while unwinding, leave must not clobber
// that back to idle.
func (o *CheckedObserver[T]) leave(terminal bool) {
	if terminal {
		o.state.Store(checkedObserverDone)
		return
	}

	o.state.CompareAndSwap(checkedObserverBusy, checkedObserverIdle)
}

func (o *CheckedObserver[T]) OnNext(value T) {
	o.enter(KindNext)
	defer o.leave(false)

	o.inner.OnNext(value)
}

func (o *CheckedObserver[T]) OnError(err error) {
	o.enter(KindError)
	defer o.leave(true)

	o.inner.OnError(err)
}

func (o *CheckedObserver[T]) OnCompleted() {
	o.enter(KindComplete)
	defer o.leave(true)

	o.inner.OnCompleted()
}
