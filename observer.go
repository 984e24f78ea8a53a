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

import "fmt"

// Observer is the raw three-callback sink of a dataflow producer: OnNext
// zero or more times, then at most one of OnError or OnCompleted. Observer
// itself enforces none of this: it is a plain bundle of callbacks. Use
// ObserverBase, CheckedObserver, SynchronizedObserver, or AsyncLockObserver
// to wrap one with the guarantees a producer is allowed to rely on.
type Observer[T any] interface {
	// OnNext delivers the next value. A conforming producer never calls it
	// after OnError or OnCompleted.
	OnNext(value T)
	// OnError delivers a terminal error. A conforming producer calls it at
	// most once, and never after OnCompleted.
	OnError(err error)
	// OnCompleted delivers terminal success. A conforming producer calls it
	// at most once, and never after OnError.
	OnCompleted()
}

var _ Observer[int] = (*observerImpl[int])(nil)

// NewObserver builds an Observer from plain callbacks. onNext is required;
// onError and onCompleted may be nil.
//
// A nil onError does not silence errors: the observer re-panics with the
// error instead, since silently dropping a terminal error tends to hide
// bugs that should have surfaced immediately. Use one of the partial
// constructors below to explicitly opt into ignoring a channel.
//
// A nil onCompleted is a genuine no-op: completion carries no payload, so
// there is nothing to silently lose.
func NewObserver[T any](onNext func(value T), onError func(err error), onCompleted func()) Observer[T] {
	return &observerImpl[T]{
		onNext:      onNext,
		onError:     onError,
		onCompleted: onCompleted,
	}
}

type observerImpl[T any] struct {
	onNext      func(T)
	onError     func(error)
	onCompleted func()
}

func (o *observerImpl[T]) OnNext(value T) {
	if o.onNext == nil {
		return
	}

	o.onNext(value)
}

func (o *observerImpl[T]) OnError(err error) {
	if o.onError == nil {
		panic(err)
	}

	o.onError(err)
}

func (o *observerImpl[T]) OnCompleted() {
	if o.onCompleted == nil {
		return
	}

	o.onCompleted()
}

/*********************
 * Partial Observers *
 *********************/

// OnNext is a partial Observer that only reacts to values. An error
// delivered to it re-panics; completion is ignored.
func OnNext[T any](onNext func(value T)) Observer[T] {
	return NewObserver(onNext, nil, nil)
}

// OnError is a partial Observer that only reacts to the terminal error.
// Values and completion are ignored.
func OnError[T any](onError func(err error)) Observer[T] {
	return NewObserver(func(T) {}, onError, nil)
}

// OnComplete is a partial Observer that only reacts to completion. Values
// are ignored; an error delivered to it re-panics.
func OnComplete[T any](onCompleted func()) Observer[T] {
	return NewObserver(func(T) {}, nil, onCompleted)
}

// NoopObserver is an Observer that discards everything, including errors.
func NoopObserver[T any]() Observer[T] {
	return NewObserver(func(T) {}, func(error) {}, func() {})
}

// PrintObserver is a utility Observer that dumps notifications to stdout
// for debugging.
func PrintObserver[T any]() Observer[T] {
	return NewObserver(
		func(value T) {
			fmt.Printf("Next: %v\n", value)
		},
		func(err error) {
			fmt.Printf("Error: %s\n", err.Error())
		},
		func() {
			fmt.Printf("Completed\n")
		},
	)
}
