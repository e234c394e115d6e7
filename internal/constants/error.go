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

import "errors"

var (
	ErrUnknownSecretType      = errors.New("unknown secret type")
	ErrMissingRequesterID     = errors.New("requester id is required")
	ErrDuplicateActiveRequest = errors.New("an active request already exists for this secret type")
	ErrInvalidDecision        = errors.New("decision must be GRANTED or DENIED")
	ErrRequestNotFound        = errors.New("access request not found")
	ErrRequestAlreadyDecided  = errors.New("access request has already been decided")
	ErrNotRequestOwner        = errors.New("caller does not own this access request")
	ErrRequestNotGranted      = errors.New("access request is not granted")
)
