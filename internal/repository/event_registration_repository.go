package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var ErrEventRegistrationNotFound = errors.New("event registration not found")

// EventRegistrationRepository defines the interface for event registration
// data access
type EventRegistrationRepository interface {
	Create(ctx context.Context, reg *domain.EventRegistration) error
	FindByID(ctx context.Context, id int64) (*domain.EventRegistration, error)
	List(ctx context.Context, params ListParams) ([]*domain.EventRegistration, int, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.EventRegistration, error)
	UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error
	CountByStatus(ctx context.Context, status string) (int, error)
	Count(ctx context.Context) (int, error)
}

type eventRegistrationRepository struct {
	db *sql.DB
}

// NewEventRegistrationRepository creates a new instance of
// EventRegistrationRepository
func NewEventRegistrationRepository(db *sql.DB) EventRegistrationRepository {
	return &eventRegistrationRepository{db: db}
}

const eventRegistrationColumns = `id, event_id, event_name, event_date, event_time,
	event_price, name, contact, email, additional_info, status, admin_notes, created_at`

func scanEventRegistration(row interface{ Scan(...interface{}) error }) (*domain.EventRegistration, error) {
	reg := &domain.EventRegistration{}
	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.EventName,
		&reg.EventDate,
		&reg.EventTime,
		&reg.EventPrice,
		&reg.Name,
		&reg.Contact,
		&reg.Email,
		&reg.AdditionalInfo,
		&reg.Status,
		&reg.AdminNotes,
		&reg.CreatedAt,
	)
	return reg, err
}

// Create inserts a new event registration. The identifier, default status
// and creation timestamp are assigned by the store.
func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (event_id, event_name, event_date, event_time,
			event_price, name, contact, email, additional_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		reg.EventID,
		reg.EventName,
		reg.EventDate,
		reg.EventTime,
		reg.EventPrice,
		reg.Name,
		reg.Contact,
		reg.Email,
		reg.AdditionalInfo,
	).Scan(&reg.ID, &reg.Status, &reg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create event registration: %w", err)
	}

	return nil
}

// FindByID retrieves an event registration by ID
func (r *eventRegistrationRepository) FindByID(ctx context.Context, id int64) (*domain.EventRegistration, error) {
	query := fmt.Sprintf(`SELECT %s FROM event_registrations WHERE id = $1`, eventRegistrationColumns)

	reg, err := scanEventRegistration(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to find event registration by ID: %w", err)
	}

	return reg, nil
}

// List retrieves event registrations most recent first with pagination
func (r *eventRegistrationRepository) List(ctx context.Context, params ListParams) ([]*domain.EventRegistration, int, error) {
	params = params.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_registrations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count event registrations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM event_registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, eventRegistrationColumns)

	rows, err := r.db.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list event registrations: %w", err)
	}
	defer rows.Close()

	regs := []*domain.EventRegistration{}
	for rows.Next() {
		reg, err := scanEventRegistration(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event registration: %w", err)
		}
		regs = append(regs, reg)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event registrations: %w", err)
	}

	return regs, total, nil
}

// ListRecent retrieves the most recent event registrations for the dashboard
func (r *eventRegistrationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.EventRegistration, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM event_registrations
		ORDER BY created_at DESC
		LIMIT $1
	`, eventRegistrationColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent event registrations: %w", err)
	}
	defer rows.Close()

	regs := []*domain.EventRegistration{}
	for rows.Next() {
		reg, err := scanEventRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event registration: %w", err)
		}
		regs = append(regs, reg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event registrations: %w", err)
	}

	return regs, nil
}

// UpdateStatus overwrites only the status and admin notes fields
func (r *eventRegistrationRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error {
	query := `
		UPDATE event_registrations
		SET status = $2, admin_notes = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, adminNotes)
	if err != nil {
		return fmt.Errorf("failed to update event registration status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrEventRegistrationNotFound
	}

	return nil
}

// CountByStatus counts event registrations in a given status
func (r *eventRegistrationRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_registrations WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count event registrations: %w", err)
	}
	return count, nil
}

// Count counts all event registrations
func (r *eventRegistrationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_registrations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count event registrations: %w", err)
	}
	return count, nil
}
