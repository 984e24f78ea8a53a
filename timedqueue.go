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
	"container/heap"
	"sync"
	"time"
)

// timedItem is one pending action in a TimedQueue. seq breaks ties between
// two actions due at the exact same instant, so ordering is deterministic:
// whichever was scheduled first runs first.
type timedItem struct {
	execTime time.Time
	seq      uint64
	action   func()
	index    int
}

type timedItemHeap []*timedItem

func (h timedItemHeap) Len() int { return len(h) }

func (h timedItemHeap) Less(i, j int) bool {
	if h[i].execTime.Equal(h[j].execTime) {
		return h[i].seq < h[j].seq
	}

	return h[i].execTime.Before(h[j].execTime)
}

func (h timedItemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timedItemHeap) Push(x any) {
	item, _ := x.(*timedItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *timedItemHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]

	return item
}

// TimedQueue is a thread-safe priority queue of actions ordered by
// (execTime, insertion order). It is the shared engine behind
// EventLoopScheduler's real-time dispatch loop and TestScheduler's virtual
// clock: both need "what is due, in what order, and can a caller cancel an
// entry before it runs".
type TimedQueue struct {
	mu  sync.Mutex
	h   timedItemHeap
	seq uint64
}

// NewTimedQueue creates an empty TimedQueue.
func NewTimedQueue() *TimedQueue {
	return &TimedQueue{}
}

// Push schedules action to run at execTime and returns a handle that Remove
// can use to cancel it before it is popped.
func (q *TimedQueue) Push(execTime time.Time, action func()) *timedItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	item := &timedItem{execTime: execTime, seq: q.seq, action: action}
	heap.Push(&q.h, item)

	return item
}

// Remove cancels item if it is still pending, returning whether it was
// found. Calling Remove twice, or after item has already been popped, is
// safe and returns false the second time.
func (q *TimedQueue) Remove(item *timedItem) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if item.index < 0 || item.index >= len(q.h) || q.h[item.index] != item {
		return false
	}

	heap.Remove(&q.h, item.index)

	return true
}

// PeekTime reports the execTime of the earliest pending item, if any.
func (q *TimedQueue) PeekTime() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.h) == 0 {
		return time.Time{}, false
	}

	return q.h[0].execTime, true
}

// Pop removes and returns the earliest pending action regardless of its
// execTime; callers decide for themselves whether it is actually due.
func (q *TimedQueue) Pop() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.h) == 0 {
		return nil, false
	}

	item, _ := heap.Pop(&q.h).(*timedItem)

	return item.action, true
}

// Len reports how many actions are pending.
func (q *TimedQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.h)
}
