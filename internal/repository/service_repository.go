package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var ErrServiceNotFound = errors.New("service not found")

// ServiceRepository defines the interface for service offering data access
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	FindByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, params ListParams) ([]*domain.Service, int, error)
	ListActive(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) error
	Delete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
}

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new instance of ServiceRepository
func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

const serviceColumns = `id, title, description, features, benefits, process, icon,
	is_active, featured, created_at, updated_at`

func scanService(row interface{ Scan(...interface{}) error }) (*domain.Service, error) {
	svc := &domain.Service{}
	err := row.Scan(
		&svc.ID,
		&svc.Title,
		&svc.Description,
		&svc.Features,
		&svc.Benefits,
		&svc.Process,
		&svc.Icon,
		&svc.IsActive,
		&svc.Featured,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	return svc, err
}

// Create inserts a new service offering and assigns its identifier
func (r *serviceRepository) Create(ctx context.Context, svc *domain.Service) error {
	query := `
		INSERT INTO services (title, description, features, benefits, process, icon,
			is_active, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		svc.Title,
		svc.Description,
		svc.Features,
		svc.Benefits,
		svc.Process,
		svc.Icon,
		svc.IsActive,
		svc.Featured,
	).Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

// FindByID retrieves a service offering by ID
func (r *serviceRepository) FindByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services WHERE id = $1`, serviceColumns)

	svc, err := scanService(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service by ID: %w", err)
	}

	return svc, nil
}

// List retrieves service offerings ordered by title with pagination
func (r *serviceRepository) List(ctx context.Context, params ListParams) ([]*domain.Service, int, error) {
	params = params.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM services
		ORDER BY title ASC
		LIMIT $1 OFFSET $2
	`, serviceColumns)

	rows, err := r.db.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := []*domain.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating services: %w", err)
	}

	return services, total, nil
}

// ListActive retrieves all active service offerings for the public catalog
func (r *serviceRepository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM services
		WHERE is_active = TRUE
		ORDER BY title ASC
	`, serviceColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active services: %w", err)
	}
	defer rows.Close()

	services := []*domain.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return services, nil
}

// Update overwrites an existing service offering and stamps updated_at
func (r *serviceRepository) Update(ctx context.Context, svc *domain.Service) error {
	query := `
		UPDATE services
		SET title = $2, description = $3, features = $4, benefits = $5,
		    process = $6, icon = $7, is_active = $8, featured = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		svc.ID,
		svc.Title,
		svc.Description,
		svc.Features,
		svc.Benefits,
		svc.Process,
		svc.Icon,
		svc.IsActive,
		svc.Featured,
	).Scan(&svc.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return ErrServiceNotFound
		}
		return fmt.Errorf("failed to update service: %w", err)
	}

	return nil
}

// Delete removes a service offering
func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM services WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// CountActive counts active service offerings for dashboard statistics
func (r *serviceRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active services: %w", err)
	}
	return count, nil
}
