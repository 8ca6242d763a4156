package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// DefaultPageSize bounds list queries when the caller does not ask for a
// specific page size.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// ListParams carries pagination parameters for list queries
type ListParams struct {
	Page     int
	PageSize int
}

// Normalize clamps the parameters to sane bounds
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Limit returns the SQL LIMIT value
func (p ListParams) Limit() int {
	return p.PageSize
}

// Offset returns the SQL OFFSET value
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
