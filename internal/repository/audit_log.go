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
	"secret-access-api/src/internal/database"
	"secret-access-api/src/internal/model"
)

// AuditLogRepo implements AuditLogRepository over a relational database.
type AuditLogRepo struct {
	db *database.DB
}

// NewAuditLogRepo creates a new audit log repository
func NewAuditLogRepo(db *database.DB) AuditLogRepository {
	return &AuditLogRepo{db: db}
}

// Append inserts a new audit entry
func (r *AuditLogRepo) Append(entry *model.AuditLog) error {
	query := r.db.Rebind(`
		INSERT INTO audit_logs (id, actor_id, action, details, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	_, err := r.db.Exec(query, entry.ID, entry.ActorID, entry.Action, entry.Details, entry.CreatedAt)
	return err
}

// GetLogsByActor retrieves an actor's audit entries, newest first
func (r *AuditLogRepo) GetLogsByActor(actorID string) ([]*model.AuditLog, error) {
	query := r.db.Rebind(`
		SELECT id, actor_id, action, details, created_at
		FROM audit_logs
		WHERE actor_id = ?
		ORDER BY created_at DESC
	`)
	rows, err := r.db.Query(query, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.AuditLog
	for rows.Next() {
		entry := &model.AuditLog{}
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
