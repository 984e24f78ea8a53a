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
	"sync/atomic"
	"time"
)

var _ SchedulerCore = (*NewThreadScheduler)(nil)

// NewThreadScheduler spawns a fresh goroutine for every ScheduleAbsolute
// call. The goroutine sleeps until dueTime (interruptibly, so canceling
// before dueTime elapses does not leave the goroutine parked) and then runs
// action.
//
// Good for fire-and-forget background work that should not share a queue
// or a call stack with anything else; wasteful for anything scheduled at
// high frequency, since each invocation pays for its own goroutine and
// timer.
type NewThreadScheduler struct{}

// NewNewThreadScheduler creates a NewThreadScheduler.
func NewNewThreadScheduler() Scheduler {
	return NewScheduler(&NewThreadScheduler{})
}

// Now returns the wall clock time.
func (*NewThreadScheduler) Now() time.Time {
	return time.Now()
}

// ScheduleAbsolute spawns a goroutine that waits until dueTime and then
// runs action, unless canceled first.
func (s *NewThreadScheduler) ScheduleAbsolute(dueTime time.Time, action func()) Subscription {
	cancel := make(chan struct{})

	var canceled int32

	sub := NewSubscription(func() {
		if atomic.CompareAndSwapInt32(&canceled, 0, 1) {
			close(cancel)
		}
	})

	go func() {
		if delay := time.Until(dueTime); delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()

			select {
			case <-timer.C:
			case <-cancel:
				return
			}
		} else {
			select {
			case <-cancel:
				return
			default:
			}
		}

		if atomic.LoadInt32(&canceled) != 0 {
			return
		}

		invokeScheduledAction(action)
	}()

	return sub
}
