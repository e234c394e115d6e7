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
	"database/sql"
	"errors"
	"time"

	"secret-access-api/src/internal/database"
	"secret-access-api/src/internal/model"
)

// AccessRequestRepo implements AccessRequestRepository over a relational
// database. The same SQL runs on sqlite3 and postgres via Rebind.
type AccessRequestRepo struct {
	db *database.DB
}

// NewAccessRequestRepo creates a new access request repository
func NewAccessRequestRepo(db *database.DB) AccessRequestRepository {
	return &AccessRequestRepo{db: db}
}

const accessRequestColumns = `
	id, requester_id, secret_type, status, secret_value,
	justification, duration_days, requested_at, decided_at, decision_comment
`

// CreateRequest inserts a new access request
func (r *AccessRequestRepo) CreateRequest(req *model.AccessRequest) error {
	query := r.db.Rebind(`
		INSERT INTO access_requests (` + accessRequestColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.Exec(query,
		req.ID, req.RequesterID, req.SecretType, req.Status, req.SecretValue,
		req.Justification, req.DurationDays, req.RequestedAt, req.DecidedAt, req.DecisionComment,
	)
	return err
}

// GetRequestByID retrieves a request by its id, or (nil, nil) when absent
func (r *AccessRequestRepo) GetRequestByID(id string) (*model.AccessRequest, error) {
	query := r.db.Rebind(`
		SELECT ` + accessRequestColumns + `
		FROM access_requests
		WHERE id = ?
	`)
	req, err := scanAccessRequest(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

// GetRequestsByRequester retrieves all requests of a requester, newest first
func (r *AccessRequestRepo) GetRequestsByRequester(requesterID string) ([]*model.AccessRequest, error) {
	query := r.db.Rebind(`
		SELECT ` + accessRequestColumns + `
		FROM access_requests
		WHERE requester_id = ?
		ORDER BY requested_at DESC
	`)
	rows, err := r.db.Query(query, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccessRequests(rows)
}

// GetAllRequests retrieves every request, newest first
func (r *AccessRequestRepo) GetAllRequests() ([]*model.AccessRequest, error) {
	rows, err := r.db.Query(`
		SELECT ` + accessRequestColumns + `
		FROM access_requests
		ORDER BY requested_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccessRequests(rows)
}

// UpdateDecision overwrites the decision fields of a request
func (r *AccessRequestRepo) UpdateDecision(id, status string, secretValue, comment *string, decidedAt time.Time) error {
	query := r.db.Rebind(`
		UPDATE access_requests
		SET status = ?, secret_value = ?, decision_comment = ?, decided_at = ?
		WHERE id = ?
	`)
	res, err := r.db.Exec(query, status, secretValue, comment, decidedAt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccessRequest(row rowScanner) (*model.AccessRequest, error) {
	req := &model.AccessRequest{}
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.SecretType, &req.Status, &req.SecretValue,
		&req.Justification, &req.DurationDays, &req.RequestedAt, &req.DecidedAt, &req.DecisionComment,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func collectAccessRequests(rows *sql.Rows) ([]*model.AccessRequest, error) {
	var requests []*model.AccessRequest
	for rows.Next() {
		req, err := scanAccessRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
