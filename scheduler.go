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
	"time"

	"github.com/samber/lo"
)

// SchedulerCore is the minimal surface a scheduler implementation has to
// provide: a clock, and a way to run an action at an absolute point on that
// clock. Everything else a Scheduler offers -- relative delay, recursion,
// periodic ticking -- is derived from these two primitives by NewScheduler
// and works identically regardless of how a given core chooses to realize
// them (blocking sleep, a worker goroutine, a virtual clock driven by
// tests).
type SchedulerCore interface {
	// Now returns the scheduler's current time. Concrete schedulers backed
	// by the wall clock return time.Now(); TestScheduler returns its
	// virtual clock instead.
	Now() time.Time

	// ScheduleAbsolute runs action at dueTime and returns a Subscription
	// that cancels it. Canceling before action has run prevents it from
	// running at all; canceling after is a no-op. A dueTime not after Now
	// means "as soon as possible".
	ScheduleAbsolute(dueTime time.Time, action func()) Subscription
}

// Scheduler is a SchedulerCore plus the relative, recursive, and periodic
// scheduling derived from it. Construct one with NewScheduler, or use one
// of the concrete schedulers (NewImmediateScheduler,
// NewCurrentThreadScheduler, NewNewThreadScheduler, NewEventLoopScheduler,
// NewTestScheduler).
type Scheduler interface {
	SchedulerCore

	// ScheduleRelative runs action after delay has elapsed on the
	// scheduler's clock.
	ScheduleRelative(delay time.Duration, action func()) Subscription

	// ScheduleRecursive schedules action to run once with zero delay,
	// passing it a reschedule function it can call from within itself to
	// run itself again after delay. Each reschedule call replaces the run
	// scheduled by the previous one, so at most one run is pending at a
	// time. The returned
	// Subscription cancels the entire chain: once canceled, neither a
	// pending reschedule nor a future one scheduled afterwards will run.
	ScheduleRecursive(action func(reschedule func(delay time.Duration))) Subscription

	// SchedulePeriodically runs action every period, with the first
	// iteration due at initialDelay (nil means zero: the first iteration
	// runs as soon as possible). Ticks do not catch up: period is measured
	// from each iteration's own start, so a transient overrun shortens (or,
	// if the overrun exceeds period, zeroes) the delay before the next
	// iteration rather than compounding drift or double-firing to catch up.
	// Canceling the returned Subscription stops future ticks; a tick
	// already running is not interrupted.
	SchedulePeriodically(initialDelay *time.Duration, period time.Duration, action func()) Subscription
}

// NewScheduler wraps core with the derived relative/recursive/periodic
// scheduling methods.
func NewScheduler(core SchedulerCore) Scheduler {
	return &schedulerDecorator{SchedulerCore: core}
}

type schedulerDecorator struct {
	SchedulerCore
}

func (s *schedulerDecorator) ScheduleRelative(delay time.Duration, action func()) Subscription {
	return s.ScheduleAbsolute(s.Now().Add(delay), action)
}

func (s *schedulerDecorator) ScheduleRecursive(action func(reschedule func(delay time.Duration))) Subscription {
	group := NewMultipleAssignment()

	var scheduleNext func(delay time.Duration)
	scheduleNext = func(delay time.Duration) {
		if group.IsClosed() {
			return
		}

		group.Set(s.ScheduleRelative(delay, func() {
			if group.IsClosed() {
				return
			}

			action(scheduleNext)
		}))
	}

	scheduleNext(0)

	return group
}

func (s *schedulerDecorator) SchedulePeriodically(initialDelay *time.Duration, period time.Duration, action func()) Subscription {
	group := NewMultipleAssignment()

	var delay time.Duration
	if initialDelay != nil {
		delay = *initialDelay
	}

	var tick func()
	tick = func() {
		if group.IsClosed() {
			return
		}

		startedAt := s.Now()
		action()

		if group.IsClosed() {
			return
		}

		next := period - s.Now().Sub(startedAt)
		group.Set(s.ScheduleRelative(next, tick))
	}

	group.Set(s.ScheduleRelative(delay, tick))

	return group
}

// invokeScheduledAction runs action, reporting a recovered panic to
// OnUnhandledError instead of letting it escape onto whichever goroutine
// happens to be driving the scheduler.
func invokeScheduledAction(action func()) {
	lo.TryCatchWithErrorValue(
		func() error {
			action()
			return nil
		},
		func(e any) {
			OnUnhandledError(context.Background(), newSchedulerActionError(recoverValueToError(e)))
		},
	)
}
