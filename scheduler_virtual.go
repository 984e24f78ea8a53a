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
	"time"
)

var (
	_ SchedulerCore = (*testSchedulerCore)(nil)
	_ Scheduler     = (*TestScheduler)(nil)
)

// TestScheduler runs on a virtual clock that only advances when told to:
// nothing here ever blocks on a real timer, so a test can deterministically
// fast-forward through minutes of scheduled work in microseconds, and
// assertions about exactly which actions ran by exactly which virtual
// instant are reproducible.
//
// Every ScheduleAbsolute call just files the action into a TimedQueue keyed
// by (execTime, insertion order); nothing runs until AdvanceTimeTo,
// AdvanceTimeBy, or TriggerActions is called.
type TestScheduler struct {
	Scheduler

	core *testSchedulerCore
}

type testSchedulerCore struct {
	mu    sync.Mutex
	now   time.Time
	queue *TimedQueue
}

// NewTestScheduler creates a TestScheduler whose virtual clock starts at
// the zero time.Time.
func NewTestScheduler() *TestScheduler {
	core := &testSchedulerCore{queue: NewTimedQueue()}

	return &TestScheduler{
		Scheduler: NewScheduler(core),
		core:      core,
	}
}

func (c *testSchedulerCore) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testSchedulerCore) setNow(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.After(c.now) {
		c.now = t
	}
}

func (c *testSchedulerCore) ScheduleAbsolute(dueTime time.Time, action func()) Subscription {
	disc := NewDiscardableAction()

	c.queue.Push(dueTime, func() {
		disc.Run(func() Subscription {
			invokeScheduledAction(action)
			return Empty()
		})
	})

	return disc
}

// AdvanceTimeTo runs every pending action due at or before target, each one
// with Now() reporting that action's own due time while it runs, then
// leaves the virtual clock at target. The clock never moves backwards: with
// a target at or before the current virtual time, only the actions already
// due by target run and the clock stays where it is.
func (s *TestScheduler) AdvanceTimeTo(target time.Time) {
	for {
		next, ok := s.core.queue.PeekTime()
		if !ok || next.After(target) {
			break
		}

		s.core.setNow(next)

		action, ok := s.core.queue.Pop()
		if !ok {
			break
		}

		action()
	}

	s.core.setNow(target)
}

// AdvanceTimeBy runs every pending action due within delay of the current
// virtual time, then advances the clock by delay.
func (s *TestScheduler) AdvanceTimeBy(delay time.Duration) {
	s.AdvanceTimeTo(s.Now().Add(delay))
}

// TriggerActionsUntilNow drains every pending action due at or before the
// current virtual time, without advancing the clock any further. Useful
// after scheduling work with a zero delay, to run it without moving time
// forward.
func (s *TestScheduler) TriggerActionsUntilNow() {
	s.AdvanceTimeTo(s.Now())
}

// TriggerActions is an alias for TriggerActionsUntilNow.
func (s *TestScheduler) TriggerActions() {
	s.TriggerActionsUntilNow()
}
