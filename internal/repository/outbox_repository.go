package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var ErrOutboxEmailNotFound = errors.New("outbox email not found")

// OutboxRepository defines the interface for the durable email outbox.
// Form handlers enqueue; the notification dispatcher claims due rows and
// records delivery outcomes.
type OutboxRepository interface {
	Enqueue(ctx context.Context, email *domain.OutboxEmail) error
	ClaimDue(ctx context.Context, limit int) ([]*domain.OutboxEmail, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, lastError string, nextAttemptAt time.Time, final bool) error
}

type outboxRepository struct {
	db *sql.DB
}

// NewOutboxRepository creates a new instance of OutboxRepository
func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

// Enqueue inserts a pending email into the outbox
func (r *outboxRepository) Enqueue(ctx context.Context, email *domain.OutboxEmail) error {
	query := `
		INSERT INTO email_outbox (recipients, subject, body)
		VALUES ($1, $2, $3)
		RETURNING id, status, attempts, next_attempt_at, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		email.Recipients,
		email.Subject,
		email.Body,
	).Scan(&email.ID, &email.Status, &email.Attempts, &email.NextAttemptAt, &email.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}

	return nil
}

// ClaimDue atomically leases pending emails whose next attempt time has
// passed by pushing next_attempt_at forward. SKIP LOCKED keeps concurrent
// dispatchers from selecting the same rows; the lease keeps a crashed
// dispatcher's rows claimable again after two minutes.
func (r *outboxRepository) ClaimDue(ctx context.Context, limit int) ([]*domain.OutboxEmail, error) {
	query := `
		WITH due AS (
			SELECT id
			FROM email_outbox
			WHERE status = 'pending' AND next_attempt_at <= NOW()
			ORDER BY next_attempt_at ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE email_outbox e
		SET next_attempt_at = NOW() + INTERVAL '2 minutes'
		FROM due
		WHERE e.id = due.id
		RETURNING e.id, e.recipients, e.subject, e.body, e.status, e.attempts,
			e.next_attempt_at, e.last_error, e.created_at, e.sent_at
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due emails: %w", err)
	}
	defer rows.Close()

	emails := []*domain.OutboxEmail{}
	for rows.Next() {
		email := &domain.OutboxEmail{}
		err := rows.Scan(
			&email.ID,
			&email.Recipients,
			&email.Subject,
			&email.Body,
			&email.Status,
			&email.Attempts,
			&email.NextAttemptAt,
			&email.LastError,
			&email.CreatedAt,
			&email.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox email: %w", err)
		}
		emails = append(emails, email)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outbox emails: %w", err)
	}

	return emails, nil
}

// MarkSent records a successful delivery
func (r *outboxRepository) MarkSent(ctx context.Context, id int64) error {
	query := `
		UPDATE email_outbox
		SET status = 'sent', attempts = attempts + 1, sent_at = NOW(), last_error = ''
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark email sent: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOutboxEmailNotFound
	}

	return nil
}

// MarkFailed records a failed attempt. When final is true the email is
// parked as failed and no longer retried.
func (r *outboxRepository) MarkFailed(ctx context.Context, id int64, lastError string, nextAttemptAt time.Time, final bool) error {
	status := domain.EmailStatusPending
	if final {
		status = domain.EmailStatusFailed
	}

	query := `
		UPDATE email_outbox
		SET status = $2, attempts = attempts + 1, next_attempt_at = $3, last_error = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, nextAttemptAt, lastError)
	if err != nil {
		return fmt.Errorf("failed to mark email failed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOutboxEmailNotFound
	}

	return nil
}
