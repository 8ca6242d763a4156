package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var (
	ErrBrandNotFound = errors.New("brand not found")
	ErrBrandInUse    = errors.New("brand is referenced by existing products")
)

// BrandRepository defines the interface for brand data access
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	FindByID(ctx context.Context, id int64) (*domain.Brand, error)
	List(ctx context.Context, params ListParams) ([]*domain.Brand, int, error)
	ListActive(ctx context.Context) ([]*domain.Brand, error)
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
}

type brandRepository struct {
	db *sql.DB
}

// NewBrandRepository creates a new instance of BrandRepository
func NewBrandRepository(db *sql.DB) BrandRepository {
	return &brandRepository{db: db}
}

const brandColumns = `id, name, description, logo_url, website, is_active, created_at, updated_at`

func scanBrand(row interface{ Scan(...interface{}) error }) (*domain.Brand, error) {
	brand := &domain.Brand{}
	err := row.Scan(
		&brand.ID,
		&brand.Name,
		&brand.Description,
		&brand.LogoURL,
		&brand.Website,
		&brand.IsActive,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	return brand, err
}

// Create inserts a new brand and assigns its identifier
func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	query := `
		INSERT INTO brands (name, description, logo_url, website, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		brand.Name,
		brand.Description,
		brand.LogoURL,
		brand.Website,
		brand.IsActive,
	).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

// FindByID retrieves a brand by ID
func (r *brandRepository) FindByID(ctx context.Context, id int64) (*domain.Brand, error) {
	query := fmt.Sprintf(`SELECT %s FROM brands WHERE id = $1`, brandColumns)

	brand, err := scanBrand(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to find brand by ID: %w", err)
	}

	return brand, nil
}

// List retrieves brands ordered by name with pagination
func (r *brandRepository) List(ctx context.Context, params ListParams) ([]*domain.Brand, int, error) {
	params = params.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brands`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM brands
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`, brandColumns)

	rows, err := r.db.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []*domain.Brand{}
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, total, nil
}

// ListActive retrieves all active brands for the public catalog
func (r *brandRepository) ListActive(ctx context.Context) ([]*domain.Brand, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM brands
		WHERE is_active = TRUE
		ORDER BY name ASC
	`, brandColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active brands: %w", err)
	}
	defer rows.Close()

	brands := []*domain.Brand{}
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, nil
}

// Update overwrites an existing brand and stamps updated_at
func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	query := `
		UPDATE brands
		SET name = $2, description = $3, logo_url = $4, website = $5,
		    is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		brand.ID,
		brand.Name,
		brand.Description,
		brand.LogoURL,
		brand.Website,
		brand.IsActive,
	).Scan(&brand.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return ErrBrandNotFound
		}
		return fmt.Errorf("failed to update brand: %w", err)
	}

	return nil
}

// Delete removes a brand. Deleting a brand still referenced by products
// is rejected.
func (r *brandRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM brands WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrBrandInUse
		}
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrBrandNotFound
	}

	return nil
}

// CountActive counts active brands for dashboard statistics
func (r *brandRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brands WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active brands: %w", err)
	}
	return count, nil
}
