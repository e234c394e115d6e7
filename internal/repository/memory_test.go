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

package repository

import (
	"fmt"
	"testing"
	"time"

	"secret-access-api/src/internal/constants"
	"secret-access-api/src/internal/model"
)

func TestMemoryUpdateDecisionMissingID(t *testing.T) {
	repo := NewMemoryAccessRequestRepo()

	err := repo.UpdateDecision("nope", constants.StatusDenied, nil, nil, time.Now())
	if err != ErrNoRowsUpdated {
		t.Fatalf("expected ErrNoRowsUpdated, got %v", err)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	repo := NewMemoryAccessRequestRepo()

	req := newTestRequest("req-1", "u1", "DB_PROD_PASS", time.Now())
	if err := repo.CreateRequest(req); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	got, err := repo.GetRequestByID("req-1")
	if err != nil {
		t.Fatalf("GetRequestByID failed: %v", err)
	}
	got.Status = "MUTATED"

	again, err := repo.GetRequestByID("req-1")
	if err != nil {
		t.Fatalf("GetRequestByID failed: %v", err)
	}
	if again.Status != constants.StatusPending {
		t.Errorf("store state leaked to caller: %s", again.Status)
	}
}

// TestBackendSubstitution runs the same operation sequence against the
// durable and volatile backends and requires identical externally
// observable record sequences.
func TestBackendSubstitution(t *testing.T) {
	sqlRepo := NewAccessRequestRepo(setupTestDB(t))
	memRepo := NewMemoryAccessRequestRepo()

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	secret := "s3cr3t"
	comment := "ok"

	runSequence := func(repo AccessRequestRepository) []*model.AccessRequest {
		t.Helper()
		for i := 0; i < 4; i++ {
			req := newTestRequest(fmt.Sprintf("req-%d", i), "u1", fmt.Sprintf("TYPE_%d", i), base.Add(time.Duration(i)*time.Minute))
			if err := repo.CreateRequest(req); err != nil {
				t.Fatalf("CreateRequest failed: %v", err)
			}
		}
		if err := repo.UpdateDecision("req-1", constants.StatusGranted, &secret, &comment, base.Add(time.Hour)); err != nil {
			t.Fatalf("UpdateDecision failed: %v", err)
		}
		if err := repo.UpdateDecision("req-2", constants.StatusDenied, nil, nil, base.Add(time.Hour)); err != nil {
			t.Fatalf("UpdateDecision failed: %v", err)
		}

		out, err := repo.GetRequestsByRequester("u1")
		if err != nil {
			t.Fatalf("GetRequestsByRequester failed: %v", err)
		}
		return out
	}

	fromSQL := runSequence(sqlRepo)
	fromMem := runSequence(memRepo)

	if len(fromSQL) != len(fromMem) {
		t.Fatalf("backend record counts differ: sql=%d mem=%d", len(fromSQL), len(fromMem))
	}
	for i := range fromSQL {
		s, m := fromSQL[i], fromMem[i]
		if s.ID != m.ID || s.RequesterID != m.RequesterID || s.SecretType != m.SecretType || s.Status != m.Status {
			t.Errorf("record %d differs between backends: sql=%+v mem=%+v", i, s, m)
		}
		if (s.SecretValue == nil) != (m.SecretValue == nil) {
			t.Errorf("record %d secret presence differs between backends", i)
		}
		if s.SecretValue != nil && m.SecretValue != nil && *s.SecretValue != *m.SecretValue {
			t.Errorf("record %d secret value differs between backends", i)
		}
		if !s.RequestedAt.Equal(m.RequestedAt) {
			t.Errorf("record %d requestedAt differs between backends: %v vs %v", i, s.RequestedAt, m.RequestedAt)
		}
	}
}
