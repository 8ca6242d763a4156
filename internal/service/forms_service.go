package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ashimthegreat/techbucket-website/internal/config"
	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/repository"

	"go.uber.org/zap"
)

// FormsService accepts public form submissions. Each submission is stored
// first; the notification email is enqueued afterwards and a failure to
// enqueue never fails the submission.
type FormsService interface {
	SubmitQuoteRequest(ctx context.Context, input QuoteRequestInput) (*domain.QuoteRequest, error)
	SubmitSupportCase(ctx context.Context, input SupportCaseInput) (*domain.SupportCase, error)
	SubmitInquiry(ctx context.Context, input InquiryInput) (*domain.Inquiry, error)
	SubmitEventRegistration(ctx context.Context, input EventRegistrationInput) (*domain.EventRegistration, error)
}

// QuoteRequestInput carries a public quote request form submission
type QuoteRequestInput struct {
	ProductName  string `json:"productName" validate:"required,max=200"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	Name         string `json:"name" validate:"required,max=100"`
	Contact      string `json:"contact" validate:"required,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Company      string `json:"company" validate:"max=200"`
	Requirements string `json:"requirements"`
}

// SupportCaseInput carries a public technical support form submission
type SupportCaseInput struct {
	Name              string `json:"name" validate:"required,max=100"`
	OrganizationName  string `json:"organizationName" validate:"required,max=200"`
	Contact           string `json:"contact" validate:"required,max=50"`
	OrganizationEmail string `json:"organizationEmail" validate:"required,email"`
	IssueType         string `json:"issueType" validate:"required,max=100"`
	Priority          string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Subject           string `json:"subject" validate:"required,max=200"`
	Description       string `json:"description" validate:"required"`
}

// InquiryInput carries a public general inquiry form submission
type InquiryInput struct {
	Name              string `json:"name" validate:"required,max=100"`
	OrganizationName  string `json:"organizationName" validate:"max=200"`
	Contact           string `json:"contact" validate:"required,max=50"`
	OrganizationEmail string `json:"organizationEmail" validate:"required,email"`
	Subject           string `json:"subject" validate:"required,max=200"`
	Message           string `json:"message" validate:"required"`
}

// EventRegistrationInput carries a public event registration form
// submission. When EventID is given, the event details are copied from
// the stored event; otherwise the client must supply all four copies.
type EventRegistrationInput struct {
	EventID        *int64 `json:"eventId"`
	EventName      string `json:"eventName" validate:"required_without=EventID,max=200"`
	EventDate      string `json:"eventDate" validate:"required_without=EventID,max=50"`
	EventTime      string `json:"eventTime" validate:"required_without=EventID,max=50"`
	EventPrice     string `json:"eventPrice" validate:"required_without=EventID,max=50"`
	Name           string `json:"name" validate:"required,max=100"`
	Contact        string `json:"contact" validate:"required,max=50"`
	Email          string `json:"email" validate:"required,email"`
	AdditionalInfo string `json:"additionalInfo"`
}

type formsService struct {
	quoteRepo    repository.QuoteRequestRepository
	supportRepo  repository.SupportCaseRepository
	inquiryRepo  repository.InquiryRepository
	registerRepo repository.EventRegistrationRepository
	eventRepo    repository.EventRepository
	outboxRepo   repository.OutboxRepository
	recipients   config.NotificationConfig
	logger       *zap.Logger
}

// NewFormsService creates a new instance of FormsService
func NewFormsService(
	quoteRepo repository.QuoteRequestRepository,
	supportRepo repository.SupportCaseRepository,
	inquiryRepo repository.InquiryRepository,
	registerRepo repository.EventRegistrationRepository,
	eventRepo repository.EventRepository,
	outboxRepo repository.OutboxRepository,
	recipients config.NotificationConfig,
	logger *zap.Logger,
) FormsService {
	return &formsService{
		quoteRepo:    quoteRepo,
		supportRepo:  supportRepo,
		inquiryRepo:  inquiryRepo,
		registerRepo: registerRepo,
		eventRepo:    eventRepo,
		outboxRepo:   outboxRepo,
		recipients:   recipients,
		logger:       logger,
	}
}

// SubmitQuoteRequest stores a quote request and notifies the sales team
func (s *formsService) SubmitQuoteRequest(ctx context.Context, input QuoteRequestInput) (*domain.QuoteRequest, error) {
	quote := &domain.QuoteRequest{
		ProductName:  input.ProductName,
		Quantity:     input.Quantity,
		Name:         input.Name,
		Contact:      input.Contact,
		Email:        input.Email,
		Company:      input.Company,
		Requirements: input.Requirements,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to store quote request: %w", err)
	}

	subject := fmt.Sprintf("New Quote Request - %s", quote.ProductName)
	body := buildEmailBody(
		"New Quote Request Received",
		field("Product", quote.ProductName),
		field("Quantity", fmt.Sprintf("%d", quote.Quantity)),
		field("Name", quote.Name),
		field("Contact", quote.Contact),
		field("Email", quote.Email),
		field("Company", quote.Company),
		field("Requirements", quote.Requirements),
	)
	s.enqueueNotification(ctx, s.recipients.QuoteRecipients, subject, body, "quote_request", quote.ID)

	return quote, nil
}

// SubmitSupportCase stores a support case and notifies the support team
func (s *formsService) SubmitSupportCase(ctx context.Context, input SupportCaseInput) (*domain.SupportCase, error) {
	sc := &domain.SupportCase{
		Name:              input.Name,
		OrganizationName:  input.OrganizationName,
		Contact:           input.Contact,
		OrganizationEmail: input.OrganizationEmail,
		IssueType:         input.IssueType,
		Priority:          input.Priority,
		Description:       input.Description,
		Subject:           input.Subject,
	}
	if sc.Priority == "" {
		sc.Priority = "medium"
	}

	if err := s.supportRepo.Create(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to store support case: %w", err)
	}

	subject := fmt.Sprintf("New Support Case [%s] - %s", strings.ToUpper(sc.Priority), sc.Subject)
	body := buildEmailBody(
		"New Support Case Received",
		field("Name", sc.Name),
		field("Organization", sc.OrganizationName),
		field("Contact", sc.Contact),
		field("Email", sc.OrganizationEmail),
		field("Issue Type", sc.IssueType),
		field("Priority", sc.Priority),
		field("Subject", sc.Subject),
		field("Description", sc.Description),
	)
	s.enqueueNotification(ctx, s.recipients.SupportRecipients, subject, body, "support_case", sc.ID)

	return sc, nil
}

// SubmitInquiry stores a general inquiry and notifies the sales and
// info inboxes
func (s *formsService) SubmitInquiry(ctx context.Context, input InquiryInput) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{
		Name:              input.Name,
		OrganizationName:  input.OrganizationName,
		Contact:           input.Contact,
		OrganizationEmail: input.OrganizationEmail,
		Subject:           input.Subject,
		Message:           input.Message,
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to store inquiry: %w", err)
	}

	subject := fmt.Sprintf("New Inquiry - %s", inquiry.Subject)
	body := buildEmailBody(
		"New Inquiry Received",
		field("Name", inquiry.Name),
		field("Organization", inquiry.OrganizationName),
		field("Contact", inquiry.Contact),
		field("Email", inquiry.OrganizationEmail),
		field("Subject", inquiry.Subject),
		field("Message", inquiry.Message),
	)
	s.enqueueNotification(ctx, s.recipients.InquiryRecipients, subject, body, "inquiry", inquiry.ID)

	return inquiry, nil
}

// SubmitEventRegistration stores an event registration and notifies the
// info inbox. Event details are denormalized at submission time so the
// registration stays readable even if the event is later deleted.
func (s *formsService) SubmitEventRegistration(ctx context.Context, input EventRegistrationInput) (*domain.EventRegistration, error) {
	reg := &domain.EventRegistration{
		EventID:        input.EventID,
		EventName:      input.EventName,
		EventDate:      input.EventDate,
		EventTime:      input.EventTime,
		EventPrice:     input.EventPrice,
		Name:           input.Name,
		Contact:        input.Contact,
		Email:          input.Email,
		AdditionalInfo: input.AdditionalInfo,
	}

	if input.EventID != nil {
		event, err := s.eventRepo.FindByID(ctx, *input.EventID)
		if err != nil {
			if err == repository.ErrEventNotFound {
				return nil, repository.ErrEventNotFound
			}
			return nil, fmt.Errorf("failed to look up event: %w", err)
		}
		reg.EventName = event.Title
		reg.EventDate = event.Date.String()
		reg.EventTime = event.Time
		reg.EventPrice = fmt.Sprintf("%g", event.Price)
	}

	if err := s.registerRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to store event registration: %w", err)
	}

	subject := fmt.Sprintf("New Event Registration - %s", reg.EventName)
	body := buildEmailBody(
		"New Event Registration Received",
		field("Event", reg.EventName),
		field("Date", reg.EventDate),
		field("Time", reg.EventTime),
		field("Price", reg.EventPrice),
		field("Name", reg.Name),
		field("Contact", reg.Contact),
		field("Email", reg.Email),
		field("Additional Info", reg.AdditionalInfo),
	)
	s.enqueueNotification(ctx, s.recipients.RegistrationRecipients, subject, body, "event_registration", reg.ID)

	return reg, nil
}

// enqueueNotification adds an email to the outbox. Failures are logged
// and swallowed: the submission is already stored and must not be lost
// because the mail queue is unavailable.
func (s *formsService) enqueueNotification(ctx context.Context, recipients []string, subject, body, kind string, submissionID int64) {
	if len(recipients) == 0 {
		s.logger.Warn("no notification recipients configured",
			zap.String("submission_type", kind),
			zap.Int64("submission_id", submissionID),
		)
		return
	}

	email := &domain.OutboxEmail{
		Recipients: domain.StringList(recipients),
		Subject:    subject,
		Body:       body,
	}

	if err := s.outboxRepo.Enqueue(ctx, email); err != nil {
		s.logger.Error("failed to enqueue notification email",
			zap.String("submission_type", kind),
			zap.Int64("submission_id", submissionID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("notification email enqueued",
		zap.String("submission_type", kind),
		zap.Int64("submission_id", submissionID),
		zap.Int64("email_id", email.ID),
	)
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s: %s", label, value)
}

func buildEmailBody(heading string, fields ...string) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(heading)))
	b.WriteString("\n\n")
	for _, f := range fields {
		b.WriteString(f)
		b.WriteString("\n")
	}
	return b.String()
}
