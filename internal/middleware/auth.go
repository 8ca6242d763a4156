package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ashimthegreat/techbucket-website/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const (
	AdminIDKey       contextKey = "admin_id"
	AdminUsernameKey contextKey = "admin_username"
	AdminRoleKey     contextKey = "admin_role"
	SessionTokenKey  contextKey = "session_token"
)

// Authenticator validates a bearer token and returns its claims
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*service.Claims, error)
}

// AuthMiddleware validates bearer tokens and injects the admin identity
// into the request context. Tokens whose backing session has been
// revoked are rejected even if the JWT itself is still valid.
func AuthMiddleware(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				logger.Debug("Missing or malformed authorization header")
				RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := auth.Authenticate(r.Context(), tokenString)
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				switch err {
				case service.ErrSessionExpired:
					RespondWithError(w, http.StatusUnauthorized, "session expired")
				default:
					RespondWithError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDKey, claims.AdminID)
			ctx = context.WithValue(ctx, AdminUsernameKey, claims.Username)
			ctx = context.WithValue(ctx, AdminRoleKey, claims.Role)
			ctx = context.WithValue(ctx, SessionTokenKey, claims.SessionToken)

			logger.Debug("Admin authenticated",
				zap.Int64("admin_id", claims.AdminID),
				zap.String("username", claims.Username),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization header
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// GetAdminID extracts the admin ID from request context
func GetAdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AdminIDKey).(int64)
	return id, ok
}

// GetAdminUsername extracts the admin username from request context
func GetAdminUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(AdminUsernameKey).(string)
	return username, ok
}

// GetAdminRole extracts the admin role from request context
func GetAdminRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(AdminRoleKey).(string)
	return role, ok
}

// GetSessionToken extracts the session token from request context
func GetSessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenKey).(string)
	return token, ok
}
