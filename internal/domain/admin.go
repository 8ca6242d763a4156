package domain

import "time"

// Admin is the single privileged actor that manages the catalog and
// triages form submissions.
type Admin struct {
	ID           int64      `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Email        string     `json:"email" db:"email"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLogin    *time.Time `json:"last_login" db:"last_login"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// AdminToken is a revocable server-side session token issued at login.
// Access tokens are short-lived JWTs; this row exists so logout can
// invalidate a session before the JWT expires.
type AdminToken struct {
	ID        int64     `json:"id" db:"id"`
	AdminID   int64     `json:"admin_id" db:"admin_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
}
