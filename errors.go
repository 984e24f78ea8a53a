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
	"errors"
	"fmt"

	"github.com/samber/lo"
)

func recoverValueToError(e any) error {
	if err, ok := e.(error); ok {
		return err
	}

	return fmt.Errorf("unexpected error: %v", e)
}

// recoverUnhandledError runs cb and, if it panics, reports the recovered
// value through OnUnhandledError instead of letting the panic escape.
func recoverUnhandledError(cb func()) {
	lo.TryCatchWithErrorValue(
		func() error {
			cb()
			return nil
		},
		func(e any) {
			OnUnhandledError(context.TODO(), recoverValueToError(e))
		},
	)
}

// Sentinel errors for CheckedObserver protocol violations. Use errors.Is to
// test for them; the concrete error also reports which notification and
// which state triggered the violation.
var (
	// ErrReentrancy is reported when a notification is invoked while a
	// previous notification on the same CheckedObserver is still in flight.
	ErrReentrancy = errors.New("corera: reentrancy detected")
	// ErrAlreadyTerminated is reported when a notification is invoked after
	// the CheckedObserver has already received a terminal notification.
	ErrAlreadyTerminated = errors.New("corera: observer already terminated")
)

func newCheckedObserverError(kind Kind, err error) error {
	return &checkedObserverError{kind: kind, err: err}
}

type checkedObserverError struct {
	kind Kind
	err  error
}

func (e *checkedObserverError) Error() string {
	return fmt.Sprintf("corera.CheckedObserver: %s: %s", e.kind, e.err.Error())
}

func (e *checkedObserverError) Unwrap() error {
	return e.err
}

func newUnsubscriptionError(err error) error {
	return &unsubscriptionError{err: err}
}

type unsubscriptionError struct {
	err error
}

func (e *unsubscriptionError) Error() string {
	return "corera.Subscription: " + e.err.Error()
}

func (e *unsubscriptionError) Unwrap() error {
	return e.err
}

func newObserverError(err error) error {
	return &observerError{err: err}
}

type observerError struct {
	err error
}

func (e *observerError) Error() string {
	msg := "<nil>"
	if e.err != nil {
		msg = e.err.Error()
	}

	return "corera.Observer: " + msg
}

func (e *observerError) Unwrap() error {
	return e.err
}

func newSchedulerActionError(err error) error {
	return &schedulerActionError{err: err}
}

type schedulerActionError struct {
	err error
}

func (e *schedulerActionError) Error() string {
	return "corera.Scheduler: action failed: " + e.err.Error()
}

func (e *schedulerActionError) Unwrap() error {
	return e.err
}
