package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

// InquiryRepository defines the interface for inquiry data access
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	FindByID(ctx context.Context, id int64) (*domain.Inquiry, error)
	List(ctx context.Context, params ListParams) ([]*domain.Inquiry, int, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

type inquiryRepository struct {
	db *sql.DB
}

// NewInquiryRepository creates a new instance of InquiryRepository
func NewInquiryRepository(db *sql.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

const inquiryColumns = `id, name, organization_name, contact, organization_email,
	subject, message, status, admin_notes, created_at`

func scanInquiry(row interface{ Scan(...interface{}) error }) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{}
	err := row.Scan(
		&inquiry.ID,
		&inquiry.Name,
		&inquiry.OrganizationName,
		&inquiry.Contact,
		&inquiry.OrganizationEmail,
		&inquiry.Subject,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.AdminNotes,
		&inquiry.CreatedAt,
	)
	return inquiry, err
}

// Create inserts a new inquiry. The identifier, default status and
// creation timestamp are assigned by the store.
func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	query := `
		INSERT INTO inquiries (name, organization_name, contact, organization_email,
			subject, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		inquiry.Name,
		inquiry.OrganizationName,
		inquiry.Contact,
		inquiry.OrganizationEmail,
		inquiry.Subject,
		inquiry.Message,
	).Scan(&inquiry.ID, &inquiry.Status, &inquiry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}

	return nil
}

// FindByID retrieves an inquiry by ID
func (r *inquiryRepository) FindByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	query := fmt.Sprintf(`SELECT %s FROM inquiries WHERE id = $1`, inquiryColumns)

	inquiry, err := scanInquiry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to find inquiry by ID: %w", err)
	}

	return inquiry, nil
}

// List retrieves inquiries most recent first with pagination
func (r *inquiryRepository) List(ctx context.Context, params ListParams) ([]*domain.Inquiry, int, error) {
	params = params.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM inquiries
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, inquiryColumns)

	rows, err := r.db.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []*domain.Inquiry{}
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating inquiries: %w", err)
	}

	return inquiries, total, nil
}

// ListRecent retrieves the most recent inquiries for the dashboard
func (r *inquiryRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Inquiry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inquiries
		ORDER BY created_at DESC
		LIMIT $1
	`, inquiryColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []*domain.Inquiry{}
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inquiries: %w", err)
	}

	return inquiries, nil
}

// UpdateStatus overwrites only the status and admin notes fields
func (r *inquiryRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error {
	query := `
		UPDATE inquiries
		SET status = $2, admin_notes = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, adminNotes)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrInquiryNotFound
	}

	return nil
}

// CountByStatus counts inquiries in a given status
func (r *inquiryRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return count, nil
}
