/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

// Package disclosure implements the client-held viewing window for a
// revealed secret. The server returns a value once per reveal call; the
// session keeps it visible for a bounded time and then erases it. A new
// view after expiry requires a fresh reveal call, never a cached value.
package disclosure

import (
	"sync"
	"time"
)

// DefaultTTL is the reveal window used when the integrator does not
// configure one.
const DefaultTTL = 30 * time.Second

// Session holds at most one disclosed secret at a time. Showing a new
// secret replaces the previous one and cancels its pending expiry.
type Session struct {
	ttl       time.Duration // immutable after construction
	stateMu   sync.Mutex
	requestID string
	value     string
	visible   bool
	timer     *time.Timer
	gen       uint64 // invalidates a timer that fires after Dismiss/Show
}

// NewSession creates a disclosure session with the given viewing window.
// Non-positive durations fall back to DefaultTTL.
func NewSession(ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Session{ttl: ttl}
}

// Show starts the viewing window for a revealed value. Any previously
// displayed secret is discarded and its timer cancelled.
func (s *Session) Show(requestID, value string) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.stopTimerLocked()
	s.gen++
	s.requestID = requestID
	s.value = value
	s.visible = true

	gen := s.gen
	s.timer = time.AfterFunc(s.ttl, func() {
		s.expire(gen)
	})
}

// Value returns the displayed value while the window is open. The second
// return reports whether a disclosure is currently visible.
func (s *Session) Value() (string, bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if !s.visible {
		return "", false
	}
	return s.value, true
}

// RequestID returns the request the open disclosure belongs to.
func (s *Session) RequestID() (string, bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if !s.visible {
		return "", false
	}
	return s.requestID, true
}

// Dismiss closes the window early, erasing the value and cancelling the
// pending timer so it cannot fire later.
func (s *Session) Dismiss() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.stopTimerLocked()
	s.gen++
	s.clearLocked()
}

// expire erases the value when the timer fires, unless the disclosure it
// was armed for has already been dismissed or replaced.
func (s *Session) expire(gen uint64) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if gen != s.gen {
		return
	}
	s.clearLocked()
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) clearLocked() {
	s.requestID = ""
	s.value = ""
	s.visible = false
	s.timer = nil
}
