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

package xsync

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// ReentrantMutex is a mutex that may be locked more than once by the same
// goroutine without deadlocking. It is used to serialize notifications while
// still allowing a downstream consumer to re-enter synchronously from the
// same call stack (e.g. a subject re-emitting from inside its own Next).
//
// Every Lock must be paired with an Unlock; the underlying semaphore is
// released only once the outermost Unlock runs.
type ReentrantMutex struct {
	sem   chan struct{}
	mu    sync.Mutex
	owner int64
	depth int
}

// NewReentrantMutex creates a new, unlocked ReentrantMutex.
func NewReentrantMutex() *ReentrantMutex {
	return &ReentrantMutex{
		sem:   make(chan struct{}, 1),
		owner: -1,
	}
}

// Lock locks the mutex. If the calling goroutine already holds it, Lock
// increments the reentrancy depth instead of blocking.
func (m *ReentrantMutex) Lock() {
	id := goroutineID()

	m.mu.Lock()
	if m.depth > 0 && m.owner == id {
		m.depth++
		m.mu.Unlock()

		return
	}
	m.mu.Unlock()

	m.sem <- struct{}{}

	m.mu.Lock()
	m.owner = id
	m.depth = 1
	m.mu.Unlock()
}

// Unlock releases one level of reentrancy. The underlying semaphore is only
// released when the outermost Lock is unwound.
func (m *ReentrantMutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.depth--
	if m.depth == 0 {
		m.owner = -1
		<-m.sem
	}
}

// GoroutineID exposes goroutineID for callers outside this package that
// need the same "which call stack is this" identification, such as a
// trampoline scheduler keyed by calling goroutine. Not a stable identity:
// a goroutine's id is only meaningful for the lifetime of that goroutine.
func GoroutineID() int64 {
	return goroutineID()
}

// goroutineID extracts the calling goroutine's numeric id by parsing the
// header line of a runtime stack dump. ReentrantMutex uses it to tell "is
// this the same call stack re-entering" apart from "is another goroutine
// contending"; through GoroutineID it also keys per-goroutine scheduler
// state, which is only valid while that goroutine is alive.
func goroutineID() int64 {
	var buf [64]byte

	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))

	if idx := bytes.IndexByte(b, ' '); idx >= 0 {
		b = b[:idx]
	}

	id, _ := strconv.ParseInt(string(b), 10, 64)

	return id
}
