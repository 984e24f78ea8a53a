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
	"time"
)

var (
	_ SchedulerCore = (*eventLoopCore)(nil)
	_ Scheduler     = (*EventLoopScheduler)(nil)
)

// EventLoopScheduler runs every action on a single, dedicated worker
// goroutine, one at a time, in due-time order. Unlike NewThreadScheduler it
// never spawns extra goroutines per call; unlike CurrentThreadScheduler its
// trampoline is not tied to whichever goroutine happens to call
// ScheduleAbsolute, so actions scheduled from many different goroutines
// still serialize onto the same worker.
//
// A language runtime with a genuine single-threaded event loop (e.g. a
// JavaScript VM) needs an OS-level poller to multiplex timers and I/O onto
// that one thread. Go's runtime scheduler already multiplexes goroutines
// onto OS threads, so here "the event loop" is just one more goroutine: a
// worker that blocks on a timer (reset to the next due action) and a wake
// channel (signaled whenever scheduling or canceling changes what "next"
// means), draining whatever in TimedQueue has become due each time it
// wakes.
//
// Call Stop when the scheduler is no longer needed; otherwise the worker
// goroutine runs forever.
type EventLoopScheduler struct {
	Scheduler

	core *eventLoopCore
}

type eventLoopCore struct {
	queue *TimedQueue
	wake  chan struct{}
	done  chan struct{}
}

// NewEventLoopScheduler creates an EventLoopScheduler and starts its worker
// goroutine.
func NewEventLoopScheduler() *EventLoopScheduler {
	core := &eventLoopCore{
		queue: NewTimedQueue(),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}

	s := &EventLoopScheduler{
		Scheduler: NewScheduler(core),
		core:      core,
	}

	go core.run()

	return s
}

// Stop terminates the worker goroutine. Actions still pending never run.
func (s *EventLoopScheduler) Stop() {
	close(s.core.done)
}

func (*eventLoopCore) Now() time.Time {
	return time.Now()
}

func (c *eventLoopCore) ScheduleAbsolute(dueTime time.Time, action func()) Subscription {
	disc := NewDiscardableAction()

	item := c.queue.Push(dueTime, func() {
		disc.Run(func() Subscription {
			invokeScheduledAction(action)
			return Empty()
		})
	})

	c.signal()

	sub := NewComposite(disc)
	sub.Add(func() {
		if c.queue.Remove(item) {
			c.signal()
		}
	})

	return sub
}

// signal wakes the worker without blocking: if it is already awake and has
// not consumed the previous signal yet, there is nothing more to do, since
// the worker will re-check the queue on its own next iteration anyway.
func (c *eventLoopCore) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *eventLoopCore) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		next, ok := c.queue.PeekTime()

		var wait <-chan time.Time

		switch {
		case !ok:
			wait = nil
		default:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}

			delay := time.Until(next)
			if delay < 0 {
				delay = 0
			}

			timer.Reset(delay)
			wait = timer.C
		}

		select {
		case <-c.done:
			return
		case <-c.wake:
			continue
		case <-wait:
			// done and the timer can be ready together and select picks
			// one at random, so check done again before running anything.
			select {
			case <-c.done:
				return
			default:
			}

			if action, ok := c.queue.Pop(); ok {
				action()
			}
		}
	}
}
