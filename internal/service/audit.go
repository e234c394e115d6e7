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

package service

import (
	"time"

	"secret-access-api/src/internal/model"
	"secret-access-api/src/internal/repository"
	"secret-access-api/src/internal/utils"

	"github.com/google/uuid"
)

// AuditService appends lifecycle actions to the audit trail. Recording is
// best-effort: an audit failure is logged but never fails the operation
// that triggered it.
type AuditService struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record appends one audit entry
func (s *AuditService) Record(actorID, action, details string) {
	entry := &model.AuditLog{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := s.auditRepo.Append(entry); err != nil {
		utils.LogError("failed to append audit entry", err)
	}
}

// GetLogsByActor returns an actor's audit entries, newest first
func (s *AuditService) GetLogsByActor(actorID string) ([]*model.AuditLog, error) {
	return s.auditRepo.GetLogsByActor(actorID)
}
