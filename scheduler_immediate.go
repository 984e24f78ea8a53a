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

import "time"

var _ SchedulerCore = (*ImmediateScheduler)(nil)

// ImmediateScheduler runs every action synchronously on the calling
// goroutine, blocking (via time.Sleep) until dueTime if it is in the
// future. By the time ScheduleAbsolute returns, the action has already run
// to completion: there is no window in which to cancel it, so the returned
// Subscription is always Empty.
//
// This is the simplest possible scheduler and the one to reach for in
// single-threaded tests and CLIs that just want deterministic sequencing
// without the bookkeeping of a trampoline.
type ImmediateScheduler struct{}

// NewImmediateScheduler creates an ImmediateScheduler.
func NewImmediateScheduler() Scheduler {
	return NewScheduler(&ImmediateScheduler{})
}

// Now returns the wall clock time.
func (*ImmediateScheduler) Now() time.Time {
	return time.Now()
}

// ScheduleAbsolute blocks until dueTime, then runs action on the calling
// goroutine.
func (s *ImmediateScheduler) ScheduleAbsolute(dueTime time.Time, action func()) Subscription {
	if delay := time.Until(dueTime); delay > 0 {
		time.Sleep(delay)
	}

	invokeScheduledAction(action)

	return Empty()
}
