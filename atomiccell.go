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

import "sync"

// AtomicCell holds a single value of type V and serializes every read,
// write, and read-modify-write against it. Unlike sync/atomic, it is not
// restricted to machine-word types: it trades lock-freedom for a uniform API
// across the small value types used throughout this package (booleans,
// small state enums, Subscription handles).
//
// V must be comparable so that CompareAndSwap can recognize the expected
// value.
type AtomicCell[V comparable] struct {
	mu sync.Mutex
	v  V
}

// NewAtomicCell creates an AtomicCell initialized to v.
func NewAtomicCell[V comparable](v V) *AtomicCell[V] {
	return &AtomicCell[V]{v: v}
}

// Load returns the current value.
func (c *AtomicCell[V]) Load() V {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.v
}

// Store sets the value unconditionally.
func (c *AtomicCell[V]) Store(v V) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// CompareAndSwap sets the value to new if and only if the current value
// equals old, returning whether the swap happened.
func (c *AtomicCell[V]) CompareAndSwap(old, new V) bool { //nolint:predeclared
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.v != old {
		return false
	}

	c.v = new

	return true
}

// Synchronize runs fn with exclusive access to the cell's contents, storing
// and returning whatever fn returns. fn must be brief: no external callback
// should be invoked while holding the cell's lock, since that would extend
// the critical section to code this package does not control.
func (c *AtomicCell[V]) Synchronize(fn func(V) V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.v = fn(c.v)

	return c.v
}
