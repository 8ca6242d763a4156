package transport

import (
	"net/http"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/middleware"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
	"github.com/ashimthegreat/techbucket-website/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the admin login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the admin login response
type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}

// CheckAuthResponse reports whether the request carries a valid session
type CheckAuthResponse struct {
	Authenticated bool          `json:"authenticated"`
	Admin         *AdminProfile `json:"admin,omitempty"`
}

// AdminProfile represents admin account data exposed over the API
type AdminProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	LastLogin string `json:"last_login,omitempty"`
}

// AuthHandler handles HTTP requests for admin authentication
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers the authentication routes onto the admin
// subrouter. Login is wrapped with the rate limiting middleware to slow
// down credential guessing.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware, loginRateLimit func(http.Handler) http.Handler) {
	r.With(loginRateLimit).Post("/login", h.Login)
	r.Get("/check-auth", h.CheckAuth)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/logout", h.Logout)
		r.Put("/settings/admin-credentials", h.UpdateCredentials)
	})
}

// Login handles admin authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, admin, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))

		if err == service.ErrInvalidCredentials {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}

		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("Admin logged in", zap.Int64("admin_id", admin.ID), zap.String("username", admin.Username))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		Admin: newAdminProfile(admin),
	})
}

// Logout revokes the session behind the presented token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionToken, ok := middleware.GetSessionToken(r.Context())
	if !ok {
		h.logger.Error("Session token not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.authService.Logout(r.Context(), sessionToken); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	h.logger.Info("Admin logged out")
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "logged out successfully"})
}

// CheckAuth reports session validity. This endpoint never returns an
// error status: a missing or invalid token yields authenticated=false.
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.BearerToken(r)
	if !ok {
		middleware.RespondWithJSON(w, http.StatusOK, CheckAuthResponse{Authenticated: false})
		return
	}

	claims, err := h.authService.Authenticate(r.Context(), tokenString)
	if err != nil {
		middleware.RespondWithJSON(w, http.StatusOK, CheckAuthResponse{Authenticated: false})
		return
	}

	admin, err := h.authService.GetAdminByID(r.Context(), claims.AdminID)
	if err != nil {
		middleware.RespondWithJSON(w, http.StatusOK, CheckAuthResponse{Authenticated: false})
		return
	}

	profile := newAdminProfile(admin)
	middleware.RespondWithJSON(w, http.StatusOK, CheckAuthResponse{Authenticated: true, Admin: &profile})
}

// UpdateCredentials rotates the admin's username, password and/or email
func (h *AuthHandler) UpdateCredentials(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Error("Admin ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input service.UpdateCredentialsInput
	if err := middleware.DecodeAndValidate(r, &input); err != nil {
		h.logger.Debug("Credentials update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	admin, err := h.authService.UpdateCredentials(r.Context(), adminID, input)
	if err != nil {
		switch err {
		case service.ErrWrongPassword:
			middleware.RespondWithError(w, http.StatusUnauthorized, "current password is incorrect")
		case repository.ErrAdminAlreadyExists:
			middleware.RespondWithError(w, http.StatusConflict, "username is already taken")
		case repository.ErrAdminNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "admin not found")
		default:
			h.logger.Error("Credentials update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update credentials")
		}
		return
	}

	h.logger.Info("Admin credentials updated", zap.Int64("admin_id", admin.ID))
	middleware.RespondWithJSON(w, http.StatusOK, newAdminProfile(admin))
}

func newAdminProfile(admin *domain.Admin) AdminProfile {
	profile := AdminProfile{
		ID:       admin.ID,
		Username: admin.Username,
		Email:    admin.Email,
		Role:     admin.Role,
	}
	if admin.LastLogin != nil {
		profile.LastLogin = admin.LastLogin.UTC().Format(time.RFC3339)
	}
	return profile
}
