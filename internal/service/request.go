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
	"errors"
	"fmt"
	"time"

	"secret-access-api/src/internal/catalog"
	"secret-access-api/src/internal/constants"
	"secret-access-api/src/internal/dto"
	"secret-access-api/src/internal/model"
	"secret-access-api/src/internal/repository"

	"github.com/google/uuid"
)

// DecisionNotifier pushes decision events to a requester's open sessions.
// Delivery is best-effort.
type DecisionNotifier interface {
	NotifyDecision(requesterID string, n dto.Notification)
}

// RequestService owns the access request lifecycle: it is the only writer
// of request records and enforces every status transition.
type RequestService struct {
	requestRepo repository.AccessRequestRepository
	catalog     *catalog.Catalog
	audit       *AuditService
	notifier    DecisionNotifier // may be nil
}

// NewRequestService creates a new request lifecycle service
func NewRequestService(requestRepo repository.AccessRequestRepository, cat *catalog.Catalog,
	audit *AuditService, notifier DecisionNotifier) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		catalog:     cat,
		audit:       audit,
		notifier:    notifier,
	}
}

// SubmitRequest validates and persists a new PENDING request.
// Justification and durationDays are optional; a missing or non-positive
// duration is coerced to one day rather than rejected.
func (s *RequestService) SubmitRequest(requesterID, secretType string, justification *string, durationDays *int) (*dto.AccessRequest, error) {
	if requesterID == "" {
		return nil, constants.ErrMissingRequesterID
	}
	if _, ok := s.catalog.Lookup(secretType); !ok {
		return nil, constants.ErrUnknownSecretType
	}

	// The UI filters out already held types via catalog availability, but
	// the engine re-checks: the store has no uniqueness constraint on
	// (requester, secret type).
	existing, err := s.requestRepo.GetRequestsByRequester(requesterID)
	if err != nil {
		return nil, err
	}
	for _, req := range existing {
		if req.SecretType == secretType &&
			(req.Status == constants.StatusPending || req.Status == constants.StatusGranted) {
			return nil, constants.ErrDuplicateActiveRequest
		}
	}

	duration := constants.MinDurationDays
	if durationDays != nil && *durationDays > 0 {
		duration = *durationDays
	}

	request := &model.AccessRequest{
		ID:            uuid.New().String(),
		RequesterID:   requesterID,
		SecretType:    secretType,
		Status:        constants.StatusPending,
		Justification: justification,
		DurationDays:  duration,
		RequestedAt:   time.Now(),
	}

	if err := s.requestRepo.CreateRequest(request); err != nil {
		return nil, err
	}

	s.audit.Record(requesterID, constants.AuditActionSubmit, fmt.Sprintf("secretType: %s", secretType))

	return s.ModelToDTO(request), nil
}

// GetRequestsByRequester returns the requester's requests, newest first.
// An unknown requester yields an empty list, never an error.
func (s *RequestService) GetRequestsByRequester(requesterID string) ([]*dto.AccessRequest, error) {
	requests, err := s.requestRepo.GetRequestsByRequester(requesterID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.AccessRequest, 0, len(requests))
	for _, req := range requests {
		out = append(out, s.ModelToDTO(req))
	}
	return out, nil
}

// ListAllRequests returns every request, newest first. Admin view.
func (s *RequestService) ListAllRequests() ([]*dto.AccessRequest, error) {
	requests, err := s.requestRepo.GetAllRequests()
	if err != nil {
		return nil, err
	}

	out := make([]*dto.AccessRequest, 0, len(requests))
	for _, req := range requests {
		out = append(out, s.ModelToDTO(req))
	}
	return out, nil
}

// DecideRequest moves a PENDING request to GRANTED or DENIED, exactly once.
// A GRANTED decision without a secret value stores a null value; the
// subsequent disclosure then has nothing to show, which is accepted.
func (s *RequestService) DecideRequest(id, decision string, secretValue, comment *string) error {
	if !constants.ValidDecisions[decision] {
		return constants.ErrInvalidDecision
	}

	request, err := s.requestRepo.GetRequestByID(id)
	if err != nil {
		return err
	}
	if request == nil {
		return constants.ErrRequestNotFound
	}
	// Re-deciding a decided request would silently overwrite the prior
	// decision, so it is rejected outright.
	if request.Status != constants.StatusPending {
		return constants.ErrRequestAlreadyDecided
	}

	if decision == constants.StatusDenied {
		secretValue = nil
	}

	if err := s.requestRepo.UpdateDecision(id, decision, secretValue, comment, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNoRowsUpdated) {
			return constants.ErrRequestNotFound
		}
		return err
	}

	s.audit.Record(request.RequesterID, constants.AuditActionDecide,
		fmt.Sprintf("requestId: %s, decision: %s", id, decision))

	if s.notifier != nil {
		s.notifier.NotifyDecision(request.RequesterID, dto.Notification{
			Event:      "decision",
			RequestID:  id,
			SecretType: request.SecretType,
			Status:     decision,
			OccurredAt: time.Now(),
		})
	}

	return nil
}

// RevealSecret returns the secret value of a GRANTED request to its owner.
// The engine does not time-box exposure; the disclosure session on the
// client side owns the viewing window.
func (s *RequestService) RevealSecret(id, requesterID string) (string, error) {
	request, err := s.requestRepo.GetRequestByID(id)
	if err != nil {
		return "", err
	}
	if request == nil {
		return "", constants.ErrRequestNotFound
	}
	if request.RequesterID != requesterID {
		return "", constants.ErrNotRequestOwner
	}
	if request.Status != constants.StatusGranted {
		return "", constants.ErrRequestNotGranted
	}

	s.audit.Record(requesterID, constants.AuditActionReveal, fmt.Sprintf("requestId: %s", id))

	if request.SecretValue == nil {
		// Granted with no value stored; nothing to disclose.
		return "", nil
	}
	return *request.SecretValue, nil
}

// RevokeSecret withdraws a granted request: the stored value is erased and
// the record moves to DENIED. Hook for a server-enforced single-view
// policy; not exposed on the public wire surface yet.
func (s *RequestService) RevokeSecret(id string, comment *string) error {
	request, err := s.requestRepo.GetRequestByID(id)
	if err != nil {
		return err
	}
	if request == nil {
		return constants.ErrRequestNotFound
	}
	if request.Status != constants.StatusGranted {
		return constants.ErrRequestNotGranted
	}

	if err := s.requestRepo.UpdateDecision(id, constants.StatusDenied, nil, comment, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNoRowsUpdated) {
			return constants.ErrRequestNotFound
		}
		return err
	}

	s.audit.Record(request.RequesterID, constants.AuditActionRevoke, fmt.Sprintf("requestId: %s", id))
	return nil
}

// ModelToDTO converts a storage record to its wire representation
func (s *RequestService) ModelToDTO(req *model.AccessRequest) *dto.AccessRequest {
	return &dto.AccessRequest{
		ID:              req.ID,
		RequesterID:     req.RequesterID,
		SecretType:      req.SecretType,
		Status:          req.Status,
		SecretValue:     req.SecretValue,
		Justification:   req.Justification,
		DurationDays:    req.DurationDays,
		RequestedAt:     req.RequestedAt,
		DecidedAt:       req.DecidedAt,
		DecisionComment: req.DecisionComment,
	}
}
