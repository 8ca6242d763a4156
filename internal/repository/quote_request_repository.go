package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var ErrQuoteRequestNotFound = errors.New("quote request not found")

// QuoteRequestRepository defines the interface for quote request data access
type QuoteRequestRepository interface {
	Create(ctx context.Context, quote *domain.QuoteRequest) error
	FindByID(ctx context.Context, id int64) (*domain.QuoteRequest, error)
	List(ctx context.Context, params ListParams) ([]*domain.QuoteRequest, int, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

type quoteRequestRepository struct {
	db *sql.DB
}

// NewQuoteRequestRepository creates a new instance of QuoteRequestRepository
func NewQuoteRequestRepository(db *sql.DB) QuoteRequestRepository {
	return &quoteRequestRepository{db: db}
}

const quoteRequestColumns = `id, product_name, quantity, name, contact, email, company,
	requirements, status, admin_notes, created_at`

func scanQuoteRequest(row interface{ Scan(...interface{}) error }) (*domain.QuoteRequest, error) {
	quote := &domain.QuoteRequest{}
	err := row.Scan(
		&quote.ID,
		&quote.ProductName,
		&quote.Quantity,
		&quote.Name,
		&quote.Contact,
		&quote.Email,
		&quote.Company,
		&quote.Requirements,
		&quote.Status,
		&quote.AdminNotes,
		&quote.CreatedAt,
	)
	return quote, err
}

// Create inserts a new quote request. The identifier, default status and
// creation timestamp are assigned by the store.
func (r *quoteRequestRepository) Create(ctx context.Context, quote *domain.QuoteRequest) error {
	query := `
		INSERT INTO quote_requests (product_name, quantity, name, contact, email,
			company, requirements)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		quote.ProductName,
		quote.Quantity,
		quote.Name,
		quote.Contact,
		quote.Email,
		quote.Company,
		quote.Requirements,
	).Scan(&quote.ID, &quote.Status, &quote.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create quote request: %w", err)
	}

	return nil
}

// FindByID retrieves a quote request by ID
func (r *quoteRequestRepository) FindByID(ctx context.Context, id int64) (*domain.QuoteRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM quote_requests WHERE id = $1`, quoteRequestColumns)

	quote, err := scanQuoteRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrQuoteRequestNotFound
		}
		return nil, fmt.Errorf("failed to find quote request by ID: %w", err)
	}

	return quote, nil
}

// List retrieves quote requests most recent first with pagination
func (r *quoteRequestRepository) List(ctx context.Context, params ListParams) ([]*domain.QuoteRequest, int, error) {
	params = params.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quote_requests`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count quote requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM quote_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, quoteRequestColumns)

	rows, err := r.db.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quote requests: %w", err)
	}
	defer rows.Close()

	quotes := []*domain.QuoteRequest{}
	for rows.Next() {
		quote, err := scanQuoteRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan quote request: %w", err)
		}
		quotes = append(quotes, quote)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating quote requests: %w", err)
	}

	return quotes, total, nil
}

// ListRecent retrieves the most recent quote requests for the dashboard
func (r *quoteRequestRepository) ListRecent(ctx context.Context, limit int) ([]*domain.QuoteRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM quote_requests
		ORDER BY created_at DESC
		LIMIT $1
	`, quoteRequestColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent quote requests: %w", err)
	}
	defer rows.Close()

	quotes := []*domain.QuoteRequest{}
	for rows.Next() {
		quote, err := scanQuoteRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote request: %w", err)
		}
		quotes = append(quotes, quote)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote requests: %w", err)
	}

	return quotes, nil
}

// UpdateStatus overwrites only the status and admin notes fields
func (r *quoteRequestRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error {
	query := `
		UPDATE quote_requests
		SET status = $2, admin_notes = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, adminNotes)
	if err != nil {
		return fmt.Errorf("failed to update quote request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrQuoteRequestNotFound
	}

	return nil
}

// CountByStatus counts quote requests in a given status
func (r *quoteRequestRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quote_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quote requests: %w", err)
	}
	return count, nil
}
