package dto

import (
	"time"
)

// AccessRequest is the wire representation of an access request.
// Field names are camelCase regardless of the storage naming convention.
type AccessRequest struct {
	ID              string     `json:"id"`
	RequesterID     string     `json:"requesterId"`
	SecretType      string     `json:"secretType"`
	Status          string     `json:"status"`
	SecretValue     *string    `json:"secretValue"`
	Justification   *string    `json:"justification,omitempty"`
	DurationDays    int        `json:"durationDays"`
	RequestedAt     time.Time  `json:"requestedAt"`
	DecidedAt       *time.Time `json:"decidedAt,omitempty"`
	DecisionComment *string    `json:"decisionComment,omitempty"`
}

// CreateRequestPayload is the body of POST /requests.
// Justification and DurationDays are absent on the fast request path.
type CreateRequestPayload struct {
	RequesterID   string  `json:"requesterId"`
	SecretType    string  `json:"secretType"`
	Justification *string `json:"justification,omitempty"`
	DurationDays  *int    `json:"durationDays,omitempty"`
}

// DecisionPayload is the body of POST /requests/:id/decision.
type DecisionPayload struct {
	Status          string  `json:"status"`
	SecretValue     *string `json:"secretValue,omitempty"`
	DecisionComment *string `json:"decisionComment,omitempty"`
}

// SecretPayload carries a revealed secret value.
type SecretPayload struct {
	Secret string `json:"secret"`
}

// SecretType is a catalog entry exposed to clients.
type SecretType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
