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

// Package corera implements a reactive dataflow runtime's core: observer
// protocol adapters that enforce termination finality, reentrancy, and
// mutual exclusion over a raw triple of notification callbacks, and a
// scheduler framework that derives relative, recursive, and periodic
// scheduling from a single absolute-time primitive across five concrete
// schedulers (immediate, trampoline, new-goroutine, cooperative event loop,
// and virtual time for tests).
package corera

import (
	"context"
	"fmt"
	"log"
)

var (
	// By default, the package ignores unhandled errors and dropped
	// notifications. Override these variables to route them to your own
	// logging/metrics stack.
	//
	// Example:
	//
	//	corera.OnUnhandledError = func(ctx context.Context, err error) {
	//		slog.Error(fmt.Sprintf("unhandled error: %s\n", err.Error()))
	//	}
	//
	//	corera.OnDroppedNotification = func(ctx context.Context, n fmt.Stringer) {
	//		slog.Warn(fmt.Sprintf("dropped notification: %s\n", n.String()))
	//	}
	//
	// Both callbacks are invoked synchronously from the goroutine that
	// produced the error or notification. A slow callback slows down
	// whichever scheduler or observer chain triggered it.

	// OnUnhandledError is called when a panic is recovered from a callback
	// that has no one left to report the error to: a scheduled action that
	// panics. Panics from observer callbacks are not recovered; they
	// propagate to the caller of the notification.
	OnUnhandledError = IgnoreOnUnhandledError
	// OnDroppedNotification is called whenever a wrapper enforcing the
	// observer contract silently discards a notification instead of
	// forwarding it.
	OnDroppedNotification = IgnoreOnDroppedNotification
)

// IgnoreOnUnhandledError is the default OnUnhandledError: it does nothing.
func IgnoreOnUnhandledError(ctx context.Context, err error) {}

// IgnoreOnDroppedNotification is the default OnDroppedNotification: it does
// nothing.
func IgnoreOnDroppedNotification(ctx context.Context, notification fmt.Stringer) {}

// DefaultOnUnhandledError logs unhandled errors via the standard log
// package.
func DefaultOnUnhandledError(ctx context.Context, err error) {
	if err != nil {
		log.Printf("corera: unhandled error: %s\n", err.Error())
	}
}

var _ fmt.Stringer = (*Notification[int])(nil)

// DefaultOnDroppedNotification logs dropped notifications via the standard
// log package.
//
// It takes a fmt.Stringer rather than a Notification[T] because Go does not
// allow assigning a generic function to a non-generic variable.
func DefaultOnDroppedNotification(ctx context.Context, notification fmt.Stringer) {
	log.Printf("corera: dropped notification: %s\n", notification.String())
}
