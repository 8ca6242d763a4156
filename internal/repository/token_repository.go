package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
)

var (
	ErrTokenNotFound = errors.New("admin token not found")
	ErrTokenRevoked  = errors.New("admin token has been revoked")
)

// TokenRepository defines the interface for admin session token data access
type TokenRepository interface {
	Create(ctx context.Context, token *domain.AdminToken) error
	FindByToken(ctx context.Context, token string) (*domain.AdminToken, error)
	Revoke(ctx context.Context, token string) error
}

type tokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new instance of TokenRepository
func NewTokenRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Create inserts a new session token
func (r *tokenRepository) Create(ctx context.Context, token *domain.AdminToken) error {
	query := `
		INSERT INTO admin_tokens (admin_id, token, expires_at, revoked)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		token.AdminID,
		token.Token,
		token.ExpiresAt,
		token.Revoked,
	).Scan(&token.ID, &token.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create admin token: %w", err)
	}

	return nil
}

// FindByToken retrieves a session token by its token string
func (r *tokenRepository) FindByToken(ctx context.Context, token string) (*domain.AdminToken, error) {
	query := `
		SELECT id, admin_id, token, expires_at, created_at, revoked
		FROM admin_tokens
		WHERE token = $1
	`

	adminToken := &domain.AdminToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&adminToken.ID,
		&adminToken.AdminID,
		&adminToken.Token,
		&adminToken.ExpiresAt,
		&adminToken.CreatedAt,
		&adminToken.Revoked,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find admin token: %w", err)
	}

	if adminToken.Revoked {
		return nil, ErrTokenRevoked
	}

	return adminToken, nil
}

// Revoke marks a session token as revoked
func (r *tokenRepository) Revoke(ctx context.Context, token string) error {
	query := `
		UPDATE admin_tokens
		SET revoked = TRUE
		WHERE token = $1
	`

	result, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to revoke admin token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrTokenNotFound
	}

	return nil
}
