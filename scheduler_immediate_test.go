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

func TestImmediateScheduler_RunsSynchronouslyAndReturnsClosedSubscription(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := NewImmediateScheduler()

	ran := false
	sub := s.ScheduleAbsolute(s.Now(), func() { ran = true })

	is.True(ran)
	is.True(sub.IsClosed())
}

func TestImmediateScheduler_BlocksUntilDueTime(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := NewImmediateScheduler()

	start := time.Now()
	s.ScheduleRelative(20*time.Millisecond, func() {})
	elapsed := time.Since(start)

	is.GreaterOrEqual(elapsed, 20*time.Millisecond)
}

func TestImmediateScheduler_ScheduleRecursiveRunsSequentially(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := NewImmediateScheduler()

	var order []int
	s.ScheduleRecursive(func(reschedule func(time.Duration)) {
		order = append(order, len(order))
		if len(order) < 3 {
			reschedule(time.Millisecond)
		}
	})

	is.Equal([]int{0, 1, 2}, order)
}
