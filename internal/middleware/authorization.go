package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireRole rejects authenticated requests whose session role is not
// in the allowed set. Must sit behind AuthMiddleware, which puts the
// role into the request context.
func RequireRole(logger *zap.Logger, allowedRoles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetAdminRole(r.Context())
			if !ok {
				logger.Warn("Role missing from request context", zap.String("path", r.URL.Path))
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if _, ok := allowed[role]; !ok {
				logger.Warn("Account role not authorized for endpoint",
					zap.String("role", role),
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards the management endpoints: only full admin
// accounts may touch catalog content and submissions.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, "admin")
}
