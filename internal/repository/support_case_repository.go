package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var ErrSupportCaseNotFound = errors.New("support case not found")

// SupportCaseRepository defines the interface for support case data access
type SupportCaseRepository interface {
	Create(ctx context.Context, sc *domain.SupportCase) error
	FindByID(ctx context.Context, id int64) (*domain.SupportCase, error)
	List(ctx context.Context, params ListParams) ([]*domain.SupportCase, int, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.SupportCase, error)
	UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

type supportCaseRepository struct {
	db *sql.DB
}

// NewSupportCaseRepository creates a new instance of SupportCaseRepository
func NewSupportCaseRepository(db *sql.DB) SupportCaseRepository {
	return &supportCaseRepository{db: db}
}

const supportCaseColumns = `id, name, organization_name, contact, organization_email,
	issue_type, priority, subject, description, status, admin_notes, created_at`

func scanSupportCase(row interface{ Scan(...interface{}) error }) (*domain.SupportCase, error) {
	sc := &domain.SupportCase{}
	err := row.Scan(
		&sc.ID,
		&sc.Name,
		&sc.OrganizationName,
		&sc.Contact,
		&sc.OrganizationEmail,
		&sc.IssueType,
		&sc.Priority,
		&sc.Subject,
		&sc.Description,
		&sc.Status,
		&sc.AdminNotes,
		&sc.CreatedAt,
	)
	return sc, err
}

// Create inserts a new support case. The identifier, default status and
// creation timestamp are assigned by the store.
func (r *supportCaseRepository) Create(ctx context.Context, sc *domain.SupportCase) error {
	query := `
		INSERT INTO support_cases (name, organization_name, contact, organization_email,
			issue_type, priority, subject, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		sc.Name,
		sc.OrganizationName,
		sc.Contact,
		sc.OrganizationEmail,
		sc.IssueType,
		sc.Priority,
		sc.Subject,
		sc.Description,
	).Scan(&sc.ID, &sc.Status, &sc.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create support case: %w", err)
	}

	return nil
}

// FindByID retrieves a support case by ID
func (r *supportCaseRepository) FindByID(ctx context.Context, id int64) (*domain.SupportCase, error) {
	query := fmt.Sprintf(`SELECT %s FROM support_cases WHERE id = $1`, supportCaseColumns)

	sc, err := scanSupportCase(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSupportCaseNotFound
		}
		return nil, fmt.Errorf("failed to find support case by ID: %w", err)
	}

	return sc, nil
}

// List retrieves support cases most recent first with pagination
func (r *supportCaseRepository) List(ctx context.Context, params ListParams) ([]*domain.SupportCase, int, error) {
	params = params.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM support_cases`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count support cases: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM support_cases
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, supportCaseColumns)

	rows, err := r.db.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list support cases: %w", err)
	}
	defer rows.Close()

	cases := []*domain.SupportCase{}
	for rows.Next() {
		sc, err := scanSupportCase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan support case: %w", err)
		}
		cases = append(cases, sc)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating support cases: %w", err)
	}

	return cases, total, nil
}

// ListRecent retrieves the most recent support cases for the dashboard
func (r *supportCaseRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SupportCase, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM support_cases
		ORDER BY created_at DESC
		LIMIT $1
	`, supportCaseColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent support cases: %w", err)
	}
	defer rows.Close()

	cases := []*domain.SupportCase{}
	for rows.Next() {
		sc, err := scanSupportCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan support case: %w", err)
		}
		cases = append(cases, sc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating support cases: %w", err)
	}

	return cases, nil
}

// UpdateStatus overwrites only the status and admin notes fields
func (r *supportCaseRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error {
	query := `
		UPDATE support_cases
		SET status = $2, admin_notes = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, adminNotes)
	if err != nil {
		return fmt.Errorf("failed to update support case status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrSupportCaseNotFound
	}

	return nil
}

// CountByStatus counts support cases in a given status
func (r *supportCaseRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM support_cases WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count support cases: %w", err)
	}
	return count, nil
}
