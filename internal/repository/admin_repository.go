package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin with this username already exists")
)

// AdminRepository defines the interface for admin account data access
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	FindByID(ctx context.Context, id int64) (*domain.Admin, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	UpdateCredentials(ctx context.Context, admin *domain.Admin) error
}

type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new instance of AdminRepository
func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{db: db}
}

const adminColumns = `id, username, password_hash, email, role, is_active, last_login, created_at`

// Create inserts a new admin account and assigns its identifier
func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (username, password_hash, email, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		admin.Username,
		admin.PasswordHash,
		admin.Email,
		admin.Role,
		admin.IsActive,
	).Scan(&admin.ID, &admin.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAdminAlreadyExists
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// FindByUsername retrieves an admin by username
func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE username = $1`, adminColumns)

	admin := &domain.Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.Email,
		&admin.Role,
		&admin.IsActive,
		&admin.LastLogin,
		&admin.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin by username: %w", err)
	}

	return admin, nil
}

// FindByID retrieves an admin by ID
func (r *adminRepository) FindByID(ctx context.Context, id int64) (*domain.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admins WHERE id = $1`, adminColumns)

	admin := &domain.Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.Email,
		&admin.Role,
		&admin.IsActive,
		&admin.LastLogin,
		&admin.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin by ID: %w", err)
	}

	return admin, nil
}

// UpdateLastLogin stamps the last successful login time
func (r *adminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE admins SET last_login = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

// UpdateCredentials overwrites the admin's username, password hash and email
func (r *adminRepository) UpdateCredentials(ctx context.Context, admin *domain.Admin) error {
	query := `
		UPDATE admins
		SET username = $2, password_hash = $3, email = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		admin.ID,
		admin.Username,
		admin.PasswordHash,
		admin.Email,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAdminAlreadyExists
		}
		return fmt.Errorf("failed to update admin credentials: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}
