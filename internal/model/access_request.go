package model

import (
	"time"
)

// AccessRequest represents a time-boxed request for access to a named secret.
// SecretValue is populated only once the request has been granted.
type AccessRequest struct {
	ID              string     `json:"id" db:"id"`
	RequesterID     string     `json:"requester_id" db:"requester_id"`
	SecretType      string     `json:"secret_type" db:"secret_type"` // Catalog entry ID
	Status          string     `json:"status" db:"status"`
	SecretValue     *string    `json:"secret_value" db:"secret_value"`
	Justification   *string    `json:"justification" db:"justification"`
	DurationDays    int        `json:"duration_days" db:"duration_days"`
	RequestedAt     time.Time  `json:"requested_at" db:"requested_at"`
	DecidedAt       *time.Time `json:"decided_at" db:"decided_at"`
	DecisionComment *string    `json:"decision_comment" db:"decision_comment"`
}

// TableName returns the table name for the AccessRequest model
func (AccessRequest) TableName() string {
	return "access_requests"
}
