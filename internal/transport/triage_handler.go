package transport

import (
	"net/http"

	"github.com/ashimthegreat/techbucket-website/internal/middleware"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
	"github.com/ashimthegreat/techbucket-website/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TriageHandler handles the admin endpoints for reviewing public form
// submissions and the dashboard snapshot.
type TriageHandler struct {
	triageService    service.TriageService
	dashboardService service.DashboardService
	logger           *zap.Logger
}

// NewTriageHandler creates a new TriageHandler
func NewTriageHandler(triageService service.TriageService, dashboardService service.DashboardService, logger *zap.Logger) *TriageHandler {
	return &TriageHandler{
		triageService:    triageService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// RegisterRoutes registers the admin triage routes. The router passed
// in must already carry the auth middleware.
func (h *TriageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.GetDashboard)

	r.Route("/quote-requests", func(r chi.Router) {
		r.Get("/", h.ListQuoteRequests)
		r.Get("/{id}", h.GetQuoteRequest)
		r.Put("/{id}/status", h.UpdateQuoteRequest)
	})

	r.Route("/support-cases", func(r chi.Router) {
		r.Get("/", h.ListSupportCases)
		r.Get("/{id}", h.GetSupportCase)
		r.Put("/{id}/status", h.UpdateSupportCase)
	})

	r.Route("/inquiries", func(r chi.Router) {
		r.Get("/", h.ListInquiries)
		r.Get("/{id}", h.GetInquiry)
		r.Put("/{id}/status", h.UpdateInquiry)
	})

	r.Route("/event-registrations", func(r chi.Router) {
		r.Get("/", h.ListEventRegistrations)
		r.Get("/{id}", h.GetEventRegistration)
		r.Put("/{id}/status", h.UpdateEventRegistration)
	})
}

// respondTriageError maps the triage sentinel errors to status codes
func (h *TriageHandler) respondTriageError(w http.ResponseWriter, err error, action string) {
	switch err {
	case repository.ErrQuoteRequestNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "quote request not found")
	case repository.ErrSupportCaseNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "support case not found")
	case repository.ErrInquiryNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "inquiry not found")
	case repository.ErrEventRegistrationNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "event registration not found")
	case service.ErrInvalidStatus:
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid status value")
	case service.ErrInvalidTransition:
		middleware.RespondWithError(w, http.StatusConflict, "status transition not allowed")
	default:
		h.logger.Error("Triage operation failed", zap.String("action", action), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// decodeUpdate decodes a status update payload
func (h *TriageHandler) decodeUpdate(w http.ResponseWriter, r *http.Request, update *service.TriageUpdate) bool {
	if err := middleware.DecodeAndValidate(r, update); err != nil {
		h.logger.Debug("Triage update validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// GetDashboard returns the admin dashboard snapshot
func (h *TriageHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		h.logger.Error("Failed to build dashboard", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, dashboard)
}

// ---- Quote requests ----

func (h *TriageHandler) ListQuoteRequests(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	quotes, total, err := h.triageService.ListQuoteRequests(r.Context(), params)
	if err != nil {
		h.respondTriageError(w, err, "list quote requests")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(quotes, total, params))
}

func (h *TriageHandler) GetQuoteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid quote request ID")
		return
	}

	quote, err := h.triageService.GetQuoteRequest(r.Context(), id)
	if err != nil {
		h.respondTriageError(w, err, "get quote request")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, quote)
}

func (h *TriageHandler) UpdateQuoteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid quote request ID")
		return
	}

	var update service.TriageUpdate
	if !h.decodeUpdate(w, r, &update) {
		return
	}

	quote, err := h.triageService.UpdateQuoteRequest(r.Context(), id, update)
	if err != nil {
		h.respondTriageError(w, err, "update quote request")
		return
	}

	h.logger.Info("Quote request updated", zap.Int64("quote_id", id), zap.String("status", quote.Status))
	middleware.RespondWithJSON(w, http.StatusOK, quote)
}

// ---- Support cases ----

func (h *TriageHandler) ListSupportCases(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	cases, total, err := h.triageService.ListSupportCases(r.Context(), params)
	if err != nil {
		h.respondTriageError(w, err, "list support cases")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(cases, total, params))
}

func (h *TriageHandler) GetSupportCase(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid support case ID")
		return
	}

	sc, err := h.triageService.GetSupportCase(r.Context(), id)
	if err != nil {
		h.respondTriageError(w, err, "get support case")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sc)
}

func (h *TriageHandler) UpdateSupportCase(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid support case ID")
		return
	}

	var update service.TriageUpdate
	if !h.decodeUpdate(w, r, &update) {
		return
	}

	sc, err := h.triageService.UpdateSupportCase(r.Context(), id, update)
	if err != nil {
		h.respondTriageError(w, err, "update support case")
		return
	}

	h.logger.Info("Support case updated", zap.Int64("case_id", id), zap.String("status", sc.Status))
	middleware.RespondWithJSON(w, http.StatusOK, sc)
}

// ---- Inquiries ----

func (h *TriageHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	inquiries, total, err := h.triageService.ListInquiries(r.Context(), params)
	if err != nil {
		h.respondTriageError(w, err, "list inquiries")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(inquiries, total, params))
}

func (h *TriageHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid inquiry ID")
		return
	}

	inquiry, err := h.triageService.GetInquiry(r.Context(), id)
	if err != nil {
		h.respondTriageError(w, err, "get inquiry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, inquiry)
}

func (h *TriageHandler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid inquiry ID")
		return
	}

	var update service.TriageUpdate
	if !h.decodeUpdate(w, r, &update) {
		return
	}

	inquiry, err := h.triageService.UpdateInquiry(r.Context(), id, update)
	if err != nil {
		h.respondTriageError(w, err, "update inquiry")
		return
	}

	h.logger.Info("Inquiry updated", zap.Int64("inquiry_id", id), zap.String("status", inquiry.Status))
	middleware.RespondWithJSON(w, http.StatusOK, inquiry)
}

// ---- Event registrations ----

func (h *TriageHandler) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	regs, total, err := h.triageService.ListEventRegistrations(r.Context(), params)
	if err != nil {
		h.respondTriageError(w, err, "list event registrations")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(regs, total, params))
}

func (h *TriageHandler) GetEventRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid event registration ID")
		return
	}

	reg, err := h.triageService.GetEventRegistration(r.Context(), id)
	if err != nil {
		h.respondTriageError(w, err, "get event registration")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reg)
}

func (h *TriageHandler) UpdateEventRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid event registration ID")
		return
	}

	var update service.TriageUpdate
	if !h.decodeUpdate(w, r, &update) {
		return
	}

	reg, err := h.triageService.UpdateEventRegistration(r.Context(), id, update)
	if err != nil {
		h.respondTriageError(w, err, "update event registration")
		return
	}

	h.logger.Info("Event registration updated", zap.Int64("registration_id", id), zap.String("status", reg.Status))
	middleware.RespondWithJSON(w, http.StatusOK, reg)
}
