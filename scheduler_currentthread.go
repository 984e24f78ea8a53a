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

	"github.com/kestrelstream/corera/internal/xsync"
)

var _ SchedulerCore = (*CurrentThreadScheduler)(nil)

// CurrentThreadScheduler is a trampoline: the first ScheduleAbsolute call
// made by a given goroutine drains a queue of due actions until it is
// empty, including actions scheduled by that very drain (recursion turns
// into iteration instead of call-stack growth). A ScheduleAbsolute call
// made while that goroutine is already draining just enqueues and returns
// immediately; the outermost call is the only one that ever blocks.
//
// Each goroutine gets its own queue, keyed by goroutine id, so independent
// goroutines each run their own trampoline without contending on one
// another's queue.
type CurrentThreadScheduler struct {
	queues sync.Map // goroutine id (int64) -> *TimedQueue
}

// NewCurrentThreadScheduler creates a CurrentThreadScheduler.
func NewCurrentThreadScheduler() Scheduler {
	return NewScheduler(&CurrentThreadScheduler{})
}

// Now returns the wall clock time.
func (*CurrentThreadScheduler) Now() time.Time {
	return time.Now()
}

// ScheduleAbsolute enqueues action on the calling goroutine's trampoline
// queue. If no drain is already running on this goroutine, the call blocks
// and drains the queue itself.
func (s *CurrentThreadScheduler) ScheduleAbsolute(dueTime time.Time, action func()) Subscription {
	id := xsync.GoroutineID()

	queueAny, alreadyDraining := s.queues.LoadOrStore(id, NewTimedQueue())
	queue, _ := queueAny.(*TimedQueue)

	disc := NewDiscardableAction()
	queue.Push(dueTime, func() {
		disc.Run(func() Subscription {
			invokeScheduledAction(action)
			return Empty()
		})
	})

	if alreadyDraining {
		return disc
	}

	defer s.queues.Delete(id)

	for {
		next, ok := queue.PeekTime()
		if !ok {
			return disc
		}

		if delay := time.Until(next); delay > 0 {
			time.Sleep(delay)
		}

		if due, ok := queue.Pop(); ok {
			due()
		}
	}
}
