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

package disclosure

import (
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestShowAndValue(t *testing.T) {
	s := NewSession(time.Second)
	s.Show("req-1", "s3cr3t")

	value, ok := s.Value()
	if !ok || value != "s3cr3t" {
		t.Fatalf("expected visible value, got %q, %v", value, ok)
	}
	id, ok := s.RequestID()
	if !ok || id != "req-1" {
		t.Fatalf("expected request id, got %q, %v", id, ok)
	}
}

func TestValueErasedAfterExpiry(t *testing.T) {
	s := NewSession(30 * time.Millisecond)
	s.Show("req-1", "s3cr3t")

	waitFor(t, time.Second, func() bool {
		_, ok := s.Value()
		return !ok
	})

	if value, ok := s.Value(); ok {
		t.Fatalf("value still retrievable after expiry: %q", value)
	}
}

func TestDismissClearsAndCancelsTimer(t *testing.T) {
	s := NewSession(50 * time.Millisecond)
	s.Show("req-1", "s3cr3t")
	s.Dismiss()

	if _, ok := s.Value(); ok {
		t.Fatal("value retrievable after dismissal")
	}

	// A new disclosure armed right after the dismissal must not be hit by
	// the old timer firing late.
	s.Show("req-2", "other")
	time.Sleep(20 * time.Millisecond)
	value, ok := s.Value()
	if !ok || value != "other" {
		t.Fatalf("late timer cleared the wrong disclosure: %q, %v", value, ok)
	}
}

func TestShowReplacesPriorDisclosure(t *testing.T) {
	s := NewSession(time.Second)
	s.Show("req-1", "first")
	s.Show("req-2", "second")

	value, ok := s.Value()
	if !ok || value != "second" {
		t.Fatalf("expected replacement value, got %q, %v", value, ok)
	}
	id, _ := s.RequestID()
	if id != "req-2" {
		t.Fatalf("expected req-2, got %s", id)
	}
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	s := NewSession(0)
	if s.ttl != DefaultTTL {
		t.Fatalf("expected DefaultTTL, got %v", s.ttl)
	}
}
