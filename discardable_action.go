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

var _ Subscription = (*DiscardableAction)(nil)

type discardableState struct {
	ran      bool
	canceled bool
	inner    Subscription
}

// DiscardableAction is the Subscription handed back by a scheduler that
// cannot run the scheduled action synchronously (e.g. on a freshly spawned
// goroutine, or on a worker loop serving other work first): the caller may
// cancel it before the action has even started, in which case the action
// never runs, or after the action has already produced its own inner
// Subscription, in which case that inner Subscription is unsubscribed
// immediately.
type DiscardableAction struct {
	state *AtomicCell[discardableState]
}

// NewDiscardableAction creates a DiscardableAction pending execution.
func NewDiscardableAction() *DiscardableAction {
	return &DiscardableAction{state: NewAtomicCell(discardableState{})}
}

// Run executes action and records its result, unless Unsubscribe already
// ran and canceled it or an earlier Run already started it: action runs at
// most once. If Unsubscribe races in after action has started but before
// Run records the result, the result is unsubscribed immediately instead of
// being kept around.
func (d *DiscardableAction) Run(action func() Subscription) {
	var skip bool

	d.state.Synchronize(func(s discardableState) discardableState {
		skip = s.canceled || s.ran
		s.ran = true

		return s
	})

	if skip {
		return
	}

	sub := action()

	var cancelImmediately bool

	d.state.Synchronize(func(s discardableState) discardableState {
		if s.canceled {
			cancelImmediately = true
			return s
		}

		s.ran = true
		s.inner = sub

		return s
	})

	if cancelImmediately && sub != nil {
		sub.Unsubscribe()
	}
}

// Unsubscribe cancels the action. If it has not run yet, it never will. If
// it has already run, its inner Subscription is unsubscribed.
//
// Implements Subscription.
func (d *DiscardableAction) Unsubscribe() {
	var toCancel Subscription

	d.state.Synchronize(func(s discardableState) discardableState {
		s.canceled = true

		if s.ran {
			toCancel = s.inner
		}

		return s
	})

	if toCancel != nil {
		toCancel.Unsubscribe()
	}
}

// Add implements Subscription by forwarding to the inner Subscription once
// the action has run. Before that, teardown is dropped: there is nothing
// yet to attach it to, and the action itself is the thing being guarded.
func (d *DiscardableAction) Add(teardown Teardown) {
	if teardown == nil {
		return
	}

	var inner Subscription

	d.state.Synchronize(func(s discardableState) discardableState {
		if s.ran {
			inner = s.inner
		}

		return s
	})

	if inner != nil {
		inner.Add(teardown)
	}
}

// AddUnsubscribable implements Subscription.
func (d *DiscardableAction) AddUnsubscribable(unsubscribable Unsubscribable) {
	if unsubscribable == nil {
		return
	}

	d.Add(unsubscribable.Unsubscribe)
}

// IsClosed implements Subscription.
func (d *DiscardableAction) IsClosed() bool {
	return d.state.Synchronize(func(s discardableState) discardableState {
		return s
	}).canceled
}

// Wait blocks until the action has been canceled or, once it has run, until
// its inner Subscription completes.
func (d *DiscardableAction) Wait() {
	var inner Subscription

	d.state.Synchronize(func(s discardableState) discardableState {
		if s.ran {
			inner = s.inner
		}

		return s
	})

	if inner != nil {
		inner.Wait()
	}
}
