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
	"errors"
	"time"

	"secret-access-api/src/internal/model"
)

// ErrNoRowsUpdated is returned by UpdateDecision when the target id does
// not exist in the store.
var ErrNoRowsUpdated = errors.New("no rows updated")

// AccessRequestRepository defines the persistence contract for access
// requests. Both the durable SQL implementation and the volatile in-memory
// implementation satisfy it with identical observable behavior; lookups
// return (nil, nil) when no row exists.
type AccessRequestRepository interface {
	CreateRequest(req *model.AccessRequest) error
	GetRequestByID(id string) (*model.AccessRequest, error)
	// GetRequestsByRequester returns the requester's records ordered by
	// requested_at descending, newest first. Never errors on empty.
	GetRequestsByRequester(requesterID string) ([]*model.AccessRequest, error)
	GetAllRequests() ([]*model.AccessRequest, error)
	// UpdateDecision overwrites status, secret value, decision comment and
	// decided_at for the given id. Returns ErrNoRowsUpdated when the id
	// does not exist.
	UpdateDecision(id, status string, secretValue, comment *string, decidedAt time.Time) error
}

// AuditLogRepository defines the append-only audit trail contract.
type AuditLogRepository interface {
	Append(entry *model.AuditLog) error
	GetLogsByActor(actorID string) ([]*model.AuditLog, error)
}
