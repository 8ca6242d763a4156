package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows product listings. Nil fields are not applied.
type ProductFilter struct {
	BrandID    *int64
	CategoryID *int64
	Featured   *bool
	ActiveOnly bool
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, params ListParams) ([]*domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
	CountByBrand(ctx context.Context, brandID int64) (int, error)
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, specifications, image_url, price,
	brand_id, category_id, is_active, featured, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Specifications,
		&product.ImageURL,
		&product.Price,
		&product.BrandID,
		&product.CategoryID,
		&product.IsActive,
		&product.Featured,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	return product, err
}

// Create inserts a new product and assigns its identifier
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, specifications, image_url, price,
			brand_id, category_id, is_active, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Specifications,
		product.ImageURL,
		product.Price,
		product.BrandID,
		product.CategoryID,
		product.IsActive,
		product.Featured,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products with optional filtering and pagination
func (r *productRepository) List(ctx context.Context, filter ProductFilter, params ListParams) ([]*domain.Product, int, error) {
	params = params.Normalize()

	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	addCondition := func(cond string, value interface{}) {
		if whereClause == "" {
			whereClause = "WHERE "
		} else {
			whereClause += " AND "
		}
		whereClause += fmt.Sprintf(cond, argIndex)
		args = append(args, value)
		argIndex++
	}

	if filter.BrandID != nil {
		addCondition("brand_id = $%d", *filter.BrandID)
	}
	if filter.CategoryID != nil {
		addCondition("category_id = $%d", *filter.CategoryID)
	}
	if filter.Featured != nil {
		addCondition("featured = $%d", *filter.Featured)
	}
	if filter.ActiveOnly {
		addCondition("is_active = $%d", true)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, argIndex, argIndex+1)

	args = append(args, params.Limit(), params.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// Update overwrites an existing product and stamps updated_at
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, specifications = $4, image_url = $5,
		    price = $6, brand_id = $7, category_id = $8, is_active = $9,
		    featured = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Specifications,
		product.ImageURL,
		product.Price,
		product.BrandID,
		product.CategoryID,
		product.IsActive,
		product.Featured,
	).Scan(&product.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// CountActive counts active products for dashboard statistics
func (r *productRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active products: %w", err)
	}
	return count, nil
}

// CountByBrand counts products referencing a brand
func (r *productRepository) CountByBrand(ctx context.Context, brandID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE brand_id = $1`, brandID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products by brand: %w", err)
	}
	return count, nil
}

// CountByCategory counts products referencing a category
func (r *productRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}
	return count, nil
}
