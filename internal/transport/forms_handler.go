package transport

import (
	"net/http"

	"github.com/ashimthegreat/techbucket-website/internal/middleware"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
	"github.com/ashimthegreat/techbucket-website/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Submission confirmations carry the new row id under the field name the
// frontend reads for that form.
type quoteSubmissionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	QuoteID int64  `json:"quote_id"`
}

type supportSubmissionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	CaseID  int64  `json:"case_id"`
}

type inquirySubmissionResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	InquiryID int64  `json:"inquiry_id"`
}

type registrationSubmissionResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	RegistrationID int64  `json:"registration_id"`
}

// FormsHandler handles the public form submission endpoints
type FormsHandler struct {
	formsService service.FormsService
	logger       *zap.Logger
}

// NewFormsHandler creates a new FormsHandler
func NewFormsHandler(formsService service.FormsService, logger *zap.Logger) *FormsHandler {
	return &FormsHandler{
		formsService: formsService,
		logger:       logger,
	}
}

// RegisterRoutes registers the public form routes
func (h *FormsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/quote-request", h.SubmitQuoteRequest)
	r.Post("/api/support-case", h.SubmitSupportCase)
	r.Post("/api/inquiry", h.SubmitInquiry)
	r.Post("/api/event-registration", h.SubmitEventRegistration)
}

// decodeForm decodes and validates a form payload, writing the error
// response itself. Returns false when the request was rejected.
func (h *FormsHandler) decodeForm(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		h.logger.Debug("Form validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// SubmitQuoteRequest handles a public quote request submission
func (h *FormsHandler) SubmitQuoteRequest(w http.ResponseWriter, r *http.Request) {
	var input service.QuoteRequestInput
	if !h.decodeForm(w, r, &input) {
		return
	}

	quote, err := h.formsService.SubmitQuoteRequest(r.Context(), input)
	if err != nil {
		h.logger.Error("Quote request submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit quote request")
		return
	}

	h.logger.Info("Quote request submitted", zap.Int64("quote_id", quote.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, quoteSubmissionResponse{
		Success: true,
		Message: "quote request submitted successfully",
		QuoteID: quote.ID,
	})
}

// SubmitSupportCase handles a public support case submission
func (h *FormsHandler) SubmitSupportCase(w http.ResponseWriter, r *http.Request) {
	var input service.SupportCaseInput
	if !h.decodeForm(w, r, &input) {
		return
	}

	sc, err := h.formsService.SubmitSupportCase(r.Context(), input)
	if err != nil {
		h.logger.Error("Support case submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit support case")
		return
	}

	h.logger.Info("Support case submitted", zap.Int64("case_id", sc.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, supportSubmissionResponse{
		Success: true,
		Message: "support case submitted successfully",
		CaseID:  sc.ID,
	})
}

// SubmitInquiry handles a public inquiry submission
func (h *FormsHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var input service.InquiryInput
	if !h.decodeForm(w, r, &input) {
		return
	}

	inquiry, err := h.formsService.SubmitInquiry(r.Context(), input)
	if err != nil {
		h.logger.Error("Inquiry submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit inquiry")
		return
	}

	h.logger.Info("Inquiry submitted", zap.Int64("inquiry_id", inquiry.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, inquirySubmissionResponse{
		Success:   true,
		Message:   "inquiry submitted successfully",
		InquiryID: inquiry.ID,
	})
}

// SubmitEventRegistration handles a public event registration submission
func (h *FormsHandler) SubmitEventRegistration(w http.ResponseWriter, r *http.Request) {
	var input service.EventRegistrationInput
	if !h.decodeForm(w, r, &input) {
		return
	}

	reg, err := h.formsService.SubmitEventRegistration(r.Context(), input)
	if err != nil {
		if err == repository.ErrEventNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "event not found")
			return
		}

		h.logger.Error("Event registration submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit event registration")
		return
	}

	h.logger.Info("Event registration submitted", zap.Int64("registration_id", reg.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, registrationSubmissionResponse{
		Success:        true,
		Message:        "event registration submitted successfully",
		RegistrationID: reg.ID,
	})
}
