package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session has expired")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Claims represents the JWT claims carried by an admin access token. The
// SessionToken claim ties the JWT to a revocable server-side session so
// logout takes effect before the JWT expires.
type Claims struct {
	AdminID      int64  `json:"admin_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	SessionToken string `json:"sid"`
	jwt.RegisteredClaims
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, admin *domain.Admin, err error)
	Logout(ctx context.Context, sessionToken string) error
	Authenticate(ctx context.Context, tokenString string) (*Claims, error)
	GetAdminByID(ctx context.Context, id int64) (*domain.Admin, error)
	UpdateCredentials(ctx context.Context, adminID int64, input UpdateCredentialsInput) (*domain.Admin, error)
	EnsureDefaultAdmin(ctx context.Context, username, password, email string) error
}

// UpdateCredentialsInput carries a credential rotation request. The
// current password must verify before any change is accepted.
type UpdateCredentialsInput struct {
	CurrentPassword string  `json:"current_password" validate:"required"`
	NewUsername     *string `json:"new_username"`
	NewPassword     *string `json:"new_password" validate:"omitempty,min=8"`
	Email           *string `json:"email" validate:"omitempty,email"`
}

type authService struct {
	adminRepo     repository.AdminRepository
	tokenRepo     repository.TokenRepository
	jwtSecret     string
	accessExpiry  time.Duration
	sessionExpiry time.Duration
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	adminRepo repository.AdminRepository,
	tokenRepo repository.TokenRepository,
	jwtSecret string,
	accessExpiryMinutes int,
	sessionExpiryDays int,
) AuthService {
	return &authService{
		adminRepo:     adminRepo,
		tokenRepo:     tokenRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  time.Duration(accessExpiryMinutes) * time.Minute,
		sessionExpiry: time.Duration(sessionExpiryDays) * 24 * time.Hour,
	}
}

// Login authenticates an admin and returns a signed access token. Unknown
// usernames, wrong passwords and inactive accounts all map to the same
// error so the response does not reveal which one failed.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == repository.ErrAdminNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if !admin.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	sessionToken := &domain.AdminToken{
		AdminID:   admin.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.sessionExpiry),
	}
	if err := s.tokenRepo.Create(ctx, sessionToken); err != nil {
		return "", nil, fmt.Errorf("failed to create session token: %w", err)
	}

	token, err := s.generateAccessToken(admin, sessionToken.Token)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		return "", nil, fmt.Errorf("failed to update last login: %w", err)
	}

	now := time.Now()
	admin.LastLogin = &now

	return token, admin, nil
}

// Logout revokes the session token, invalidating every access token that
// references it. Idempotent: revoking an unknown token is not an error.
func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	if err := s.tokenRepo.Revoke(ctx, sessionToken); err != nil {
		if err == repository.ErrTokenNotFound {
			return nil
		}
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	return nil
}

// Authenticate validates an access token and its backing session
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	session, err := s.tokenRepo.FindByToken(ctx, claims.SessionToken)
	if err != nil {
		if err == repository.ErrTokenNotFound || err == repository.ErrTokenRevoked {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find session token: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	return claims, nil
}

// GetAdminByID retrieves an admin by ID
func (s *authService) GetAdminByID(ctx context.Context, id int64) (*domain.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrAdminNotFound {
			return nil, repository.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return admin, nil
}

// UpdateCredentials rotates the admin's username, password and/or email
// after verifying the current password.
func (s *authService) UpdateCredentials(ctx context.Context, adminID int64, input UpdateCredentialsInput) (*domain.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if err == repository.ErrAdminNotFound {
			return nil, repository.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return nil, ErrWrongPassword
	}

	if input.NewUsername != nil {
		admin.Username = *input.NewUsername
	}
	if input.NewPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.NewPassword), BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		admin.PasswordHash = string(hash)
	}
	if input.Email != nil {
		admin.Email = *input.Email
	}

	if err := s.adminRepo.UpdateCredentials(ctx, admin); err != nil {
		return nil, err
	}

	return admin, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account if no account
// with the given username exists. Called once at startup.
func (s *authService) EnsureDefaultAdmin(ctx context.Context, username, password, email string) error {
	_, err := s.adminRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if err != repository.ErrAdminNotFound {
		return fmt.Errorf("failed to check default admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         "admin",
		IsActive:     true,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	return nil
}

func (s *authService) generateAccessToken(admin *domain.Admin, sessionToken string) (string, error) {
	expirationTime := time.Now().Add(s.accessExpiry)
	claims := &Claims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		Role:         admin.Role,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
