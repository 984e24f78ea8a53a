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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// These exercise the relative/recursive/periodic methods derived by
// NewScheduler, using TestScheduler so the assertions are deterministic
// instead of racing against the wall clock.

func TestScheduler_ScheduleRelative(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := NewTestScheduler()

	var ranAt time.Time
	s.ScheduleRelative(10*time.Second, func() {
		ranAt = s.Now()
	})

	is.True(ranAt.IsZero())

	s.AdvanceTimeBy(10 * time.Second)

	is.Equal(s.Now(), ranAt)
}

func TestScheduler_ScheduleRecursiveStopsWhenCanceled(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := NewTestScheduler()

	runs := 0
	sub := s.ScheduleRecursive(func(reschedule func(time.Duration)) {
		runs++
		if runs < 3 {
			reschedule(time.Second)
		}
	})

	s.TriggerActions() // the first, zero-delay invocation
	is.Equal(1, runs)

	s.AdvanceTimeBy(time.Second)
	is.Equal(2, runs)

	sub.Unsubscribe()

	s.AdvanceTimeBy(time.Second)
	is.Equal(2, runs, "canceling must stop the chain before the third run")
}

func TestScheduler_SchedulePeriodicallyFiresImmediatelyThenOncePerPeriod(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := NewTestScheduler()

	var ranAt []time.Time
	sub := s.SchedulePeriodically(nil, time.Second, func() {
		ranAt = append(ranAt, s.Now())
	})
	defer sub.Unsubscribe()

	// No initial_delay means the first iteration is due immediately, at
	// virtual time zero. Virtual time then passes through every later due
	// instant in between, so jumping three more periods at once fires the
	// remaining three ticks (at 1s, 2s, 3s) -- each one scheduled only once
	// the previous iteration has run, not a fixed schedule computed up
	// front, which is what lets a slow real-time tick push the next one out
	// instead of firing a backlog once the action finally returns.
	s.TriggerActionsUntilNow()
	s.AdvanceTimeBy(3 * time.Second)

	is.Len(ranAt, 4)
	for i, at := range ranAt {
		is.Equal(time.Duration(i)*time.Second, at.Sub(time.Time{}))
	}
}

func TestScheduler_SchedulePeriodicallyHonorsInitialDelay(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := NewTestScheduler()

	var ranAt []time.Time
	delay := 5 * time.Second
	sub := s.SchedulePeriodically(&delay, time.Second, func() {
		ranAt = append(ranAt, s.Now())
	})
	defer sub.Unsubscribe()

	s.AdvanceTimeBy(4 * time.Second)
	is.Empty(ranAt, "first iteration must wait for initialDelay")

	s.AdvanceTimeBy(time.Second)
	is.Len(ranAt, 1)
	is.Equal(delay, ranAt[0].Sub(time.Time{}))
}

func TestScheduler_SchedulePeriodicallyCancelStopsFutureTicks(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := NewTestScheduler()

	runs := 0
	sub := s.SchedulePeriodically(nil, time.Second, func() {
		runs++
	})

	s.TriggerActionsUntilNow()
	is.Equal(1, runs)

	sub.Unsubscribe()

	s.AdvanceTimeBy(10 * time.Second)
	is.Equal(1, runs)
}
