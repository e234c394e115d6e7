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
	"sort"
	"sync"
	"time"

	"secret-access-api/src/internal/model"
	"secret-access-api/src/internal/utils"
)

// MemoryAccessRequestRepo is a volatile, in-process implementation of
// AccessRequestRepository. It is a development and test fallback: data is
// lost on restart. Observable record shapes are identical to the SQL
// implementation.
type MemoryAccessRequestRepo struct {
	mu       sync.RWMutex
	requests []*model.AccessRequest
}

// NewMemoryAccessRequestRepo creates the volatile request store and emits
// the one-time startup warning required when no durable backend is
// configured.
func NewMemoryAccessRequestRepo() *MemoryAccessRequestRepo {
	utils.LogWarning("DATABASE_DRIVER not set - using in-memory store. Data will be lost on restart.")
	return &MemoryAccessRequestRepo{}
}

// CreateRequest stores a copy of the request
func (r *MemoryAccessRequestRepo) CreateRequest(req *model.AccessRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests = append(r.requests, &cp)
	return nil
}

// GetRequestByID returns a copy of the request, or (nil, nil) when absent
func (r *MemoryAccessRequestRepo) GetRequestByID(id string) (*model.AccessRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.requests {
		if req.ID == id {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

// GetRequestsByRequester returns the requester's records, newest first
func (r *MemoryAccessRequestRepo) GetRequestsByRequester(requesterID string) ([]*model.AccessRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.AccessRequest
	for _, req := range r.requests {
		if req.RequesterID == requesterID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// GetAllRequests returns every record, newest first
func (r *MemoryAccessRequestRepo) GetAllRequests() ([]*model.AccessRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.AccessRequest, 0, len(r.requests))
	for _, req := range r.requests {
		cp := *req
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

// UpdateDecision overwrites the decision fields of a request
func (r *MemoryAccessRequestRepo) UpdateDecision(id, status string, secretValue, comment *string, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			req.Status = status
			req.SecretValue = secretValue
			req.DecisionComment = comment
			req.DecidedAt = &decidedAt
			return nil
		}
	}
	return ErrNoRowsUpdated
}

// sortNewestFirst orders requests by requested_at descending; records with
// equal timestamps keep their relative insertion order reversed, matching
// the SQL ORDER BY ... DESC result for monotonically inserted rows.
func sortNewestFirst(requests []*model.AccessRequest) {
	for i, j := 0, len(requests)-1; i < j; i, j = i+1, j-1 {
		requests[i], requests[j] = requests[j], requests[i]
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].RequestedAt.After(requests[j].RequestedAt)
	})
}

// MemoryAuditLogRepo is the volatile counterpart of AuditLogRepo.
type MemoryAuditLogRepo struct {
	mu      sync.Mutex
	entries []*model.AuditLog
}

// NewMemoryAuditLogRepo creates the volatile audit store
func NewMemoryAuditLogRepo() *MemoryAuditLogRepo {
	return &MemoryAuditLogRepo{}
}

// Append stores a copy of the entry
func (r *MemoryAuditLogRepo) Append(entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

// GetLogsByActor returns an actor's audit entries, newest first
func (r *MemoryAuditLogRepo) GetLogsByActor(actorID string) ([]*model.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.AuditLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ActorID == actorID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}
