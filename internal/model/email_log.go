package model

import (
	"time"
)

type EmailStatus string

const (
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
	EmailStatusPending EmailStatus = "pending"
)

// EmailLog is the audit trail of every notification attempt. Failures
// are recorded here and never retried automatically.
type EmailLog struct {
	ID           int64       `db:"id" json:"id"`
	Recipient    string      `db:"recipient" json:"recipient"`
	Subject      string      `db:"subject" json:"subject"`
	Kind         string      `db:"kind" json:"kind"`
	Status       EmailStatus `db:"status" json:"status"`
	ErrorMessage *string     `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}
