package domain

import "time"

// Outbox email statuses
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// OutboxEmail is a durably queued notification email. Form handlers
// enqueue a row after the submission commits; a background dispatcher
// delivers it with retry and backoff.
type OutboxEmail struct {
	ID            int64      `json:"id" db:"id"`
	Recipients    StringList `json:"recipients" db:"recipients"`
	Subject       string     `json:"subject" db:"subject"`
	Body          string     `json:"body" db:"body"`
	Status        string     `json:"status" db:"status"`
	Attempts      int        `json:"attempts" db:"attempts"`
	NextAttemptAt time.Time  `json:"next_attempt_at" db:"next_attempt_at"`
	LastError     string     `json:"last_error" db:"last_error"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	SentAt        *time.Time `json:"sent_at" db:"sent_at"`
}
