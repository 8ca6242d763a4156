package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Auth enforcement is covered by the auth handler tests; the triage
// routes are mounted here without the middleware so each case drives
// the handler directly.
type triageTestEnv struct {
	router       *chi.Mux
	quoteRepo    *mockQuoteRequestRepository
	supportRepo  *mockSupportCaseRepository
	inquiryRepo  *mockInquiryRepository
	registerRepo *mockEventRegistrationRepository
	brandRepo    *mockBrandRepository
	productRepo  *mockProductRepository
}

func newTriageTestEnv() *triageTestEnv {
	env := &triageTestEnv{
		quoteRepo:    newMockQuoteRequestRepository(),
		supportRepo:  newMockSupportCaseRepository(),
		inquiryRepo:  newMockInquiryRepository(),
		registerRepo: newMockEventRegistrationRepository(),
		brandRepo:    newMockBrandRepository(),
		productRepo:  newMockProductRepository(),
	}

	triageService := service.NewTriageService(env.quoteRepo, env.supportRepo, env.inquiryRepo, env.registerRepo)
	dashboardService := service.NewDashboardService(
		env.brandRepo,
		newMockCategoryRepository(),
		env.productRepo,
		newMockServiceRepository(),
		newMockEventRepository(),
		env.quoteRepo,
		env.supportRepo,
		env.inquiryRepo,
		env.registerRepo,
	)

	env.router = chi.NewRouter()
	handler := NewTriageHandler(triageService, dashboardService, zap.NewNop())
	env.router.Route("/api/admin", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return env
}

func (env *triageTestEnv) seedQuote(t *testing.T, status string) *domain.QuoteRequest {
	t.Helper()
	quote := &domain.QuoteRequest{
		ProductName: "Dell Latitude 5440",
		Quantity:    3,
		Name:        "Ram Shrestha",
		Contact:     "9841000000",
		Email:       "ram@example.com",
		Status:      status,
	}
	if err := env.quoteRepo.Create(context.Background(), quote); err != nil {
		t.Fatalf("failed to seed quote request: %v", err)
	}
	return quote
}

func getJSON(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func putJSON(t *testing.T, router http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return authedRequest(t, router, http.MethodPut, path, "", payload)
}

func TestListQuoteRequestsPaginated(t *testing.T) {
	env := newTriageTestEnv()
	for i := 0; i < 3; i++ {
		env.seedQuote(t, domain.QuoteStatusPending)
	}

	rec := getJSON(t, env.router, "/api/admin/quote-requests?page=1&page_size=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp PaginatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Total)
	}
	if resp.Page != 1 || resp.PageSize != 2 {
		t.Errorf("expected page 1 size 2 echoed back, got page %d size %d", resp.Page, resp.PageSize)
	}
}

func TestGetQuoteRequestNotFound(t *testing.T) {
	env := newTriageTestEnv()

	rec := getJSON(t, env.router, "/api/admin/quote-requests/99")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestGetQuoteRequestInvalidID(t *testing.T) {
	env := newTriageTestEnv()

	rec := getJSON(t, env.router, "/api/admin/quote-requests/abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for a non-numeric id, got %d", rec.Code)
	}
}

func TestUpdateQuoteRequestStatus(t *testing.T) {
	env := newTriageTestEnv()
	quote := env.seedQuote(t, domain.QuoteStatusPending)

	status := domain.QuoteStatusQuoted
	notes := "Quoted NPR 1,20,000 per unit"
	rec := putJSON(t, env.router, "/api/admin/quote-requests/1/status", service.TriageUpdate{
		Status:     &status,
		AdminNotes: &notes,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated domain.QuoteRequest
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Status != domain.QuoteStatusQuoted {
		t.Errorf("expected status %q, got %q", domain.QuoteStatusQuoted, updated.Status)
	}
	if env.quoteRepo.quotes[quote.ID].AdminNotes != notes {
		t.Error("admin notes were not persisted")
	}
}

func TestUpdateQuoteRequestUnknownStatus(t *testing.T) {
	env := newTriageTestEnv()
	env.seedQuote(t, domain.QuoteStatusPending)

	status := "escalated"
	rec := putJSON(t, env.router, "/api/admin/quote-requests/1/status", service.TriageUpdate{Status: &status})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for an unknown status, got %d", rec.Code)
	}
}

func TestUpdateQuoteRequestDisallowedTransition(t *testing.T) {
	env := newTriageTestEnv()
	env.seedQuote(t, domain.QuoteStatusClosed)

	status := domain.QuoteStatusPending
	rec := putJSON(t, env.router, "/api/admin/quote-requests/1/status", service.TriageUpdate{Status: &status})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409 for a disallowed transition, got %d", rec.Code)
	}
	if env.quoteRepo.quotes[1].Status != domain.QuoteStatusClosed {
		t.Error("rejected transition must not change the stored status")
	}
}

func TestUpdateSupportCaseStatus(t *testing.T) {
	env := newTriageTestEnv()
	sc := &domain.SupportCase{
		Name:              "Sita Karki",
		OrganizationName:  "Karki Suppliers",
		Contact:           "9851000000",
		OrganizationEmail: "sita@karki.com.np",
		IssueType:         "hardware",
		Priority:          "high",
		Subject:           "Printer not powering on",
		Description:       "Stopped turning on this morning.",
	}
	if err := env.supportRepo.Create(context.Background(), sc); err != nil {
		t.Fatalf("failed to seed support case: %v", err)
	}

	status := domain.SupportStatusInProgress
	rec := putJSON(t, env.router, "/api/admin/support-cases/1/status", service.TriageUpdate{Status: &status})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.supportRepo.cases[1].Status != domain.SupportStatusInProgress {
		t.Errorf("expected stored status %q, got %q", domain.SupportStatusInProgress, env.supportRepo.cases[1].Status)
	}
}

func TestUpdateInquiryNotFound(t *testing.T) {
	env := newTriageTestEnv()

	status := domain.InquiryStatusRead
	rec := putJSON(t, env.router, "/api/admin/inquiries/7/status", service.TriageUpdate{Status: &status})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for a missing inquiry, got %d", rec.Code)
	}
}

func TestListEventRegistrations(t *testing.T) {
	env := newTriageTestEnv()
	reg := &domain.EventRegistration{
		EventName: "TechBucket Expo",
		Name:      "Gita Rai",
		Contact:   "9871000000",
		Email:     "gita@example.com",
	}
	if err := env.registerRepo.Create(context.Background(), reg); err != nil {
		t.Fatalf("failed to seed registration: %v", err)
	}

	rec := getJSON(t, env.router, "/api/admin/event-registrations")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp PaginatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected total 1, got %d", resp.Total)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	env := newTriageTestEnv()
	env.seedQuote(t, domain.QuoteStatusPending)
	env.seedQuote(t, domain.QuoteStatusQuoted)
	if err := env.brandRepo.Create(context.Background(), &domain.Brand{Name: "Dell", IsActive: true}); err != nil {
		t.Fatalf("failed to seed brand: %v", err)
	}

	rec := getJSON(t, env.router, "/api/admin/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var dashboard service.Dashboard
	if err := json.NewDecoder(rec.Body).Decode(&dashboard); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if dashboard.Stats.TotalBrands != 1 {
		t.Errorf("expected 1 brand, got %d", dashboard.Stats.TotalBrands)
	}
	if dashboard.Stats.PendingQuotes != 1 {
		t.Errorf("expected 1 pending quote, got %d", dashboard.Stats.PendingQuotes)
	}
	if len(dashboard.RecentActivity.QuoteRequests) != 2 {
		t.Errorf("expected 2 recent quote requests, got %d", len(dashboard.RecentActivity.QuoteRequests))
	}
}
