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
	"errors"
	"sync"

	"github.com/samber/lo"
)

// Teardown is a function that cleans up resources, such as canceling a
// scheduled action or closing a channel. It is called when the Subscription
// it was added to is unsubscribed. It is called only once.
type Teardown func()

// Unsubscribable represents any type that can be unsubscribed from.
type Unsubscribable interface {
	Unsubscribe()
}

// Subscription is the handle returned by anything schedulable or
// cancelable in this package: it is how a caller cancels outstanding work,
// and how that work attaches its own cleanup.
type Subscription interface {
	Unsubscribable

	Add(teardown Teardown)
	AddUnsubscribable(unsubscribable Unsubscribable)
	IsClosed() bool
	Wait() // Note: using .Wait() is not recommended.
}

var _ Subscription = (*subscriptionImpl)(nil)

// NewSubscription creates a new Subscription. When teardown is nil, nothing
// is added. When the subscription is already disposed, teardown is
// triggered immediately.
func NewSubscription(teardown Teardown) Subscription {
	teardowns := make([]func(), 0, 4)
	if teardown != nil {
		teardowns = append(teardowns, teardown)
	}

	return &subscriptionImpl{
		finalizers: teardowns,
	}
}

type subscriptionImpl struct {
	done       bool
	mu         sync.Mutex
	finalizers []func()
}

// Add receives a finalizer to execute upon unsubscription. When teardown is
// nil, nothing is added. When the subscription is already disposed, the
// teardown callback is triggered immediately.
//
// This method is thread-safe.
func (s *subscriptionImpl) Add(teardown Teardown) {
	if teardown == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		teardown() // not protected against panics
	} else {
		s.finalizers = append(s.finalizers, teardown)
	}
}

// AddUnsubscribable merges another cancelable into this subscription. It is
// a no-op if unsubscribable is nil.
//
// This method is thread-safe.
func (s *subscriptionImpl) AddUnsubscribable(unsubscribable Unsubscribable) {
	if unsubscribable == nil {
		return
	}

	s.Add(unsubscribable.Unsubscribe)
}

// Unsubscribe disposes the resources held by the subscription. Idempotent:
// calling it more than once only runs the finalizers once.
//
// This method is thread-safe. Finalizers are executed in sequence.
func (s *subscriptionImpl) Unsubscribe() {
	s.mu.Lock()

	if s.done {
		s.mu.Unlock()
		return
	}

	s.done = true

	if len(s.finalizers) == 0 {
		s.mu.Unlock()
		return
	}

	finalizers := s.finalizers
	s.finalizers = nil
	s.mu.Unlock()

	var errs []error

	// Run sequentially: finalizers may depend on cleanup order (e.g. an
	// inner resource must close before the outer one that owns it).
	for i := range finalizers {
		if err := execFinalizer(finalizers[i]); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		panic(errors.Join(errs...))
	}
}

// IsClosed returns true if the subscription has been disposed, or if
// unsubscription is in progress.
func (s *subscriptionImpl) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.done
}

// Wait blocks until the Subscription is unsubscribed.
//
// Please use it carefully: it is against the spirit of a non-blocking
// dataflow runtime. It exists mainly for tests and small command-line
// tools.
func (s *subscriptionImpl) Wait() {
	ch := make(chan struct{}, 1)

	s.Add(func() {
		ch <- struct{}{}
	})

	<-ch
	close(ch)
}

func execFinalizer(finalizer func()) (err error) {
	lo.TryCatchWithErrorValue(
		func() error {
			finalizer()
			return nil
		},
		func(e any) {
			err = newUnsubscriptionError(recoverValueToError(e))
		},
	)

	return err
}

/*********************
 * Empty Subscription *
 *********************/

var emptySubscription Subscription = &emptySubscriptionImpl{}

// Empty returns a Subscription that is already closed and ignores
// everything added to it after the fact (finalizers passed to Add run
// immediately, per the general Subscription contract). It is useful as a
// non-nil placeholder, e.g. the initial value of a MultipleAssignment.
func Empty() Subscription {
	return emptySubscription
}

type emptySubscriptionImpl struct{}

func (*emptySubscriptionImpl) Unsubscribe() {}

func (*emptySubscriptionImpl) Add(teardown Teardown) { invokeTeardown(teardown) }

func (*emptySubscriptionImpl) AddUnsubscribable(u Unsubscribable) { invokeUnsubscribable(u) }

func (*emptySubscriptionImpl) IsClosed() bool { return true }

func (*emptySubscriptionImpl) Wait() {}

func invokeTeardown(teardown Teardown) {
	if teardown != nil {
		teardown()
	}
}

func invokeUnsubscribable(u Unsubscribable) {
	if u != nil {
		u.Unsubscribe()
	}
}

/*************************
 * Composite Subscription *
 *************************/

// NewComposite groups children under a single Subscription: unsubscribing
// it unsubscribes every child, in the order they were given. Children added
// after the composite is already closed are unsubscribed immediately.
func NewComposite(children ...Subscription) Subscription {
	s := NewSubscription(nil).(*subscriptionImpl)

	for _, child := range children {
		s.AddUnsubscribable(child)
	}

	return s
}

/*******************************
 * MultipleAssignment Subscription *
 *******************************/

var _ Subscription = (*MultipleAssignment)(nil)

// MultipleAssignment holds a single replaceable inner Subscription: setting
// a new one unsubscribes whatever was set before, and if the
// MultipleAssignment itself has already been unsubscribed, a newly assigned
// Subscription is unsubscribed immediately instead of being kept.
//
// It is how a scheduler rewrites "the currently active retry/recursion
// step" without leaking the previous one, and how recursive scheduling
// exposes a single cancelable handle across an unbounded chain of
// self-rescheduling actions.
type MultipleAssignment struct {
	mu      sync.Mutex
	closed  bool
	current Subscription
}

// NewMultipleAssignment creates a MultipleAssignment with no inner
// Subscription set.
func NewMultipleAssignment() *MultipleAssignment {
	return &MultipleAssignment{current: Empty()}
}

// Set replaces the current inner Subscription with sub, unsubscribing the
// previous one. If the MultipleAssignment has already been unsubscribed,
// sub is unsubscribed immediately and discarded.
func (m *MultipleAssignment) Set(sub Subscription) {
	if sub == nil {
		sub = Empty()
	}

	m.mu.Lock()

	if m.closed {
		m.mu.Unlock()
		sub.Unsubscribe()

		return
	}

	previous := m.current
	m.current = sub
	m.mu.Unlock()

	previous.Unsubscribe()
}

// Unsubscribe unsubscribes the current inner Subscription and marks the
// MultipleAssignment closed: any later Set discards and immediately
// unsubscribes its argument.
//
// Implements Subscription (partially; Add/AddUnsubscribable/Wait delegate
// to the currently assigned inner Subscription).
func (m *MultipleAssignment) Unsubscribe() {
	m.mu.Lock()

	if m.closed {
		m.mu.Unlock()
		return
	}

	m.closed = true
	current := m.current
	m.mu.Unlock()

	current.Unsubscribe()
}

// Add forwards to the currently assigned inner Subscription.
func (m *MultipleAssignment) Add(teardown Teardown) {
	m.snapshot().Add(teardown)
}

// AddUnsubscribable forwards to the currently assigned inner Subscription.
func (m *MultipleAssignment) AddUnsubscribable(u Unsubscribable) {
	m.snapshot().AddUnsubscribable(u)
}

// IsClosed returns true once Unsubscribe has been called.
func (m *MultipleAssignment) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

// Wait blocks until the currently assigned inner Subscription is
// unsubscribed.
func (m *MultipleAssignment) Wait() {
	m.snapshot().Wait()
}

func (m *MultipleAssignment) snapshot() Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}
