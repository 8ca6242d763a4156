package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
)

var (
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Allowed forward transitions per submission type. A status may always
// stay where it is (setting the current status again just updates the
// admin notes).
var (
	quoteTransitions = map[string][]string{
		domain.QuoteStatusPending:  {domain.QuoteStatusQuoted, domain.QuoteStatusRejected, domain.QuoteStatusClosed},
		domain.QuoteStatusQuoted:   {domain.QuoteStatusApproved, domain.QuoteStatusRejected, domain.QuoteStatusClosed},
		domain.QuoteStatusApproved: {domain.QuoteStatusClosed},
		domain.QuoteStatusRejected: {domain.QuoteStatusClosed},
		domain.QuoteStatusClosed:   {},
	}

	supportTransitions = map[string][]string{
		domain.SupportStatusOpen:       {domain.SupportStatusInProgress, domain.SupportStatusResolved, domain.SupportStatusClosed},
		domain.SupportStatusInProgress: {domain.SupportStatusResolved, domain.SupportStatusClosed},
		domain.SupportStatusResolved:   {domain.SupportStatusClosed, domain.SupportStatusInProgress},
		domain.SupportStatusClosed:     {},
	}

	inquiryTransitions = map[string][]string{
		domain.InquiryStatusUnread:    {domain.InquiryStatusRead, domain.InquiryStatusResponded, domain.InquiryStatusClosed},
		domain.InquiryStatusRead:      {domain.InquiryStatusResponded, domain.InquiryStatusClosed},
		domain.InquiryStatusResponded: {domain.InquiryStatusClosed},
		domain.InquiryStatusClosed:    {},
	}

	registrationTransitions = map[string][]string{
		domain.RegistrationStatusRegistered: {domain.RegistrationStatusConfirmed, domain.RegistrationStatusCancelled},
		domain.RegistrationStatusConfirmed:  {domain.RegistrationStatusAttended, domain.RegistrationStatusCancelled},
		domain.RegistrationStatusAttended:   {},
		domain.RegistrationStatusCancelled:  {},
	}
)

// TriageUpdate carries a status change request from the admin panel.
// Nil fields are left unchanged; at least the notes are always stampable.
type TriageUpdate struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// TriageService lets admins review and progress public form submissions
type TriageService interface {
	ListQuoteRequests(ctx context.Context, params repository.ListParams) ([]*domain.QuoteRequest, int, error)
	GetQuoteRequest(ctx context.Context, id int64) (*domain.QuoteRequest, error)
	UpdateQuoteRequest(ctx context.Context, id int64, update TriageUpdate) (*domain.QuoteRequest, error)

	ListSupportCases(ctx context.Context, params repository.ListParams) ([]*domain.SupportCase, int, error)
	GetSupportCase(ctx context.Context, id int64) (*domain.SupportCase, error)
	UpdateSupportCase(ctx context.Context, id int64, update TriageUpdate) (*domain.SupportCase, error)

	ListInquiries(ctx context.Context, params repository.ListParams) ([]*domain.Inquiry, int, error)
	GetInquiry(ctx context.Context, id int64) (*domain.Inquiry, error)
	UpdateInquiry(ctx context.Context, id int64, update TriageUpdate) (*domain.Inquiry, error)

	ListEventRegistrations(ctx context.Context, params repository.ListParams) ([]*domain.EventRegistration, int, error)
	GetEventRegistration(ctx context.Context, id int64) (*domain.EventRegistration, error)
	UpdateEventRegistration(ctx context.Context, id int64, update TriageUpdate) (*domain.EventRegistration, error)
}

type triageService struct {
	quoteRepo    repository.QuoteRequestRepository
	supportRepo  repository.SupportCaseRepository
	inquiryRepo  repository.InquiryRepository
	registerRepo repository.EventRegistrationRepository
}

// NewTriageService creates a new instance of TriageService
func NewTriageService(
	quoteRepo repository.QuoteRequestRepository,
	supportRepo repository.SupportCaseRepository,
	inquiryRepo repository.InquiryRepository,
	registerRepo repository.EventRegistrationRepository,
) TriageService {
	return &triageService{
		quoteRepo:    quoteRepo,
		supportRepo:  supportRepo,
		inquiryRepo:  inquiryRepo,
		registerRepo: registerRepo,
	}
}

// resolveStatus validates a requested status change against the
// transition table and returns the status to persist.
func resolveStatus(current string, requested *string, transitions map[string][]string) (string, error) {
	if requested == nil {
		return current, nil
	}

	next := *requested
	if _, known := transitions[next]; !known {
		return "", ErrInvalidStatus
	}
	if next == current {
		return current, nil
	}
	for _, allowed := range transitions[current] {
		if allowed == next {
			return next, nil
		}
	}
	return "", ErrInvalidTransition
}

func resolveNotes(current string, requested *string) string {
	if requested == nil {
		return current
	}
	return *requested
}

// ---- Quote requests ----

func (s *triageService) ListQuoteRequests(ctx context.Context, params repository.ListParams) ([]*domain.QuoteRequest, int, error) {
	return s.quoteRepo.List(ctx, params)
}

func (s *triageService) GetQuoteRequest(ctx context.Context, id int64) (*domain.QuoteRequest, error) {
	return s.quoteRepo.FindByID(ctx, id)
}

func (s *triageService) UpdateQuoteRequest(ctx context.Context, id int64, update TriageUpdate) (*domain.QuoteRequest, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := resolveStatus(quote.Status, update.Status, quoteTransitions)
	if err != nil {
		return nil, err
	}
	notes := resolveNotes(quote.AdminNotes, update.AdminNotes)

	if err := s.quoteRepo.UpdateStatus(ctx, id, status, notes); err != nil {
		return nil, fmt.Errorf("failed to update quote request: %w", err)
	}

	quote.Status = status
	quote.AdminNotes = notes
	return quote, nil
}

// ---- Support cases ----

func (s *triageService) ListSupportCases(ctx context.Context, params repository.ListParams) ([]*domain.SupportCase, int, error) {
	return s.supportRepo.List(ctx, params)
}

func (s *triageService) GetSupportCase(ctx context.Context, id int64) (*domain.SupportCase, error) {
	return s.supportRepo.FindByID(ctx, id)
}

func (s *triageService) UpdateSupportCase(ctx context.Context, id int64, update TriageUpdate) (*domain.SupportCase, error) {
	sc, err := s.supportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := resolveStatus(sc.Status, update.Status, supportTransitions)
	if err != nil {
		return nil, err
	}
	notes := resolveNotes(sc.AdminNotes, update.AdminNotes)

	if err := s.supportRepo.UpdateStatus(ctx, id, status, notes); err != nil {
		return nil, fmt.Errorf("failed to update support case: %w", err)
	}

	sc.Status = status
	sc.AdminNotes = notes
	return sc, nil
}

// ---- Inquiries ----

func (s *triageService) ListInquiries(ctx context.Context, params repository.ListParams) ([]*domain.Inquiry, int, error) {
	return s.inquiryRepo.List(ctx, params)
}

func (s *triageService) GetInquiry(ctx context.Context, id int64) (*domain.Inquiry, error) {
	return s.inquiryRepo.FindByID(ctx, id)
}

func (s *triageService) UpdateInquiry(ctx context.Context, id int64, update TriageUpdate) (*domain.Inquiry, error) {
	inquiry, err := s.inquiryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := resolveStatus(inquiry.Status, update.Status, inquiryTransitions)
	if err != nil {
		return nil, err
	}
	notes := resolveNotes(inquiry.AdminNotes, update.AdminNotes)

	if err := s.inquiryRepo.UpdateStatus(ctx, id, status, notes); err != nil {
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}

	inquiry.Status = status
	inquiry.AdminNotes = notes
	return inquiry, nil
}

// ---- Event registrations ----

func (s *triageService) ListEventRegistrations(ctx context.Context, params repository.ListParams) ([]*domain.EventRegistration, int, error) {
	return s.registerRepo.List(ctx, params)
}

func (s *triageService) GetEventRegistration(ctx context.Context, id int64) (*domain.EventRegistration, error) {
	return s.registerRepo.FindByID(ctx, id)
}

func (s *triageService) UpdateEventRegistration(ctx context.Context, id int64, update TriageUpdate) (*domain.EventRegistration, error) {
	reg, err := s.registerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := resolveStatus(reg.Status, update.Status, registrationTransitions)
	if err != nil {
		return nil, err
	}
	notes := resolveNotes(reg.AdminNotes, update.AdminNotes)

	if err := s.registerRepo.UpdateStatus(ctx, id, status, notes); err != nil {
		return nil, fmt.Errorf("failed to update event registration: %w", err)
	}

	reg.Status = status
	reg.AdminNotes = notes
	return reg, nil
}
