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

package constants

// Access request statuses. A request starts PENDING and transitions
// exactly once to GRANTED or DENIED.
const (
	StatusPending = "PENDING"
	StatusGranted = "GRANTED"
	StatusDenied  = "DENIED"
)

// ValidDecisions Valid terminal statuses accepted by the decision endpoint
var ValidDecisions = map[string]bool{
	StatusGranted: true,
	StatusDenied:  true,
}

// Audit actions recorded against the append-only audit trail
const (
	AuditActionSubmit = "submit_request"
	AuditActionDecide = "decide_request"
	AuditActionReveal = "reveal_secret"
	AuditActionRevoke = "revoke_secret"
)

// MinDurationDays is the floor for the requested validity window.
// Non-positive or missing durations are coerced to this value rather
// than rejected.
const MinDurationDays = 1
