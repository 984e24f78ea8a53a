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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserverBase_DropsNextAfterTerminal(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var next []int
	var completed int

	base := NewObserverBase[int](NewObserver(
		func(v int) { next = append(next, v) },
		func(error) {},
		func() { completed++ },
	))

	base.OnNext(1)
	base.OnCompleted()
	base.OnNext(2)

	is.Equal([]int{1}, next)
	is.Equal(1, completed)
	is.True(base.IsStopped())
}

func TestObserverBase_OnlyOneTerminalWins(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var errs []error
	var completed int

	base := NewObserverBase[int](NewObserver(
		func(int) {},
		func(err error) { errs = append(errs, err) },
		func() { completed++ },
	))

	base.OnCompleted()
	base.OnError(assert.AnError)

	is.Equal(1, completed)
	is.Empty(errs)
}

func TestObserverBase_ReportsDroppedNotifications(t *testing.T) {
	// Mutates the package-level hook; cannot run in parallel with other
	// tests that rely on the default.
	is := assert.New(t)

	var dropped []fmt.Stringer

	prev := OnDroppedNotification
	OnDroppedNotification = func(_ context.Context, n fmt.Stringer) {
		dropped = append(dropped, n)
	}

	t.Cleanup(func() { OnDroppedNotification = prev })

	base := NewObserverBase[int](NoopObserver[int]())

	base.OnCompleted()
	base.OnNext(1)
	base.OnError(assert.AnError)

	is.Len(dropped, 2)
	is.Equal("Next(1)", dropped[0].String())
	is.Equal(assert.AnError.Error(), dropped[1].(Notification[int]).Err.Error())
}
