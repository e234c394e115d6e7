package dto

import (
	"time"
)

// Notification is pushed to a requester's open sessions when one of their
// requests is decided.
type Notification struct {
	Event      string    `json:"event"`
	RequestID  string    `json:"requestId"`
	SecretType string    `json:"secretType"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}
