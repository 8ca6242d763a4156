package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context, params ListParams) ([]*domain.Event, int, error)
	ListActive(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
}

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, date, time, location, capacity, price,
	event_type, status, agenda, is_active, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.Location,
		&event.Capacity,
		&event.Price,
		&event.EventType,
		&event.Status,
		&event.Agenda,
		&event.IsActive,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	return event, err
}

// Create inserts a new event and assigns its identifier
func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, time, location, capacity, price,
			event_type, status, agenda, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		event.Title,
		event.Description,
		event.Date,
		event.Time,
		event.Location,
		event.Capacity,
		event.Price,
		event.EventType,
		event.Status,
		event.Agenda,
		event.IsActive,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// FindByID retrieves an event by ID
func (r *eventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event by ID: %w", err)
	}

	return event, nil
}

// List retrieves events ordered by date with pagination
func (r *eventRepository) List(ctx context.Context, params ListParams) ([]*domain.Event, int, error) {
	params = params.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM events
		ORDER BY date ASC, time ASC
		LIMIT $1 OFFSET $2
	`, eventColumns)

	rows, err := r.db.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating events: %w", err)
	}

	return events, total, nil
}

// ListActive retrieves all active events for the public catalog
func (r *eventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE is_active = TRUE
		ORDER BY date ASC, time ASC
	`, eventColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active events: %w", err)
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// Update overwrites an existing event and stamps updated_at
func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, time = $5, location = $6,
		    capacity = $7, price = $8, event_type = $9, status = $10, agenda = $11,
		    is_active = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Time,
		event.Location,
		event.Capacity,
		event.Price,
		event.EventType,
		event.Status,
		event.Agenda,
		event.IsActive,
	).Scan(&event.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

// Delete removes an event. Registrations referencing it keep their
// denormalized copies; the weak reference is nulled by the schema.
func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// CountActive counts active events for dashboard statistics
func (r *eventRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active events: %w", err)
	}
	return count, nil
}
