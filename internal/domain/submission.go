package domain

import "time"

// Submission status vocabularies. Each submission type has a closed set
// of allowed values; transitions between them are enforced by the triage
// service.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusQuoted   = "quoted"
	QuoteStatusApproved = "approved"
	QuoteStatusRejected = "rejected"
	QuoteStatusClosed   = "closed"

	SupportStatusOpen       = "open"
	SupportStatusInProgress = "in_progress"
	SupportStatusResolved   = "resolved"
	SupportStatusClosed     = "closed"

	InquiryStatusUnread    = "unread"
	InquiryStatusRead      = "read"
	InquiryStatusResponded = "responded"
	InquiryStatusClosed    = "closed"

	RegistrationStatusRegistered = "registered"
	RegistrationStatusConfirmed  = "confirmed"
	RegistrationStatusAttended   = "attended"
	RegistrationStatusCancelled  = "cancelled"
)

// QuoteRequest is a public request for a product quotation
type QuoteRequest struct {
	ID           int64     `json:"id" db:"id"`
	ProductName  string    `json:"product_name" db:"product_name"`
	Quantity     int       `json:"quantity" db:"quantity"`
	Name         string    `json:"name" db:"name"`
	Contact      string    `json:"contact" db:"contact"`
	Email        string    `json:"email" db:"email"`
	Company      string    `json:"company" db:"company"`
	Requirements string    `json:"requirements" db:"requirements"`
	Status       string    `json:"status" db:"status"`
	AdminNotes   string    `json:"admin_notes" db:"admin_notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SupportCase is a public technical support request
type SupportCase struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	OrganizationName  string    `json:"organization_name" db:"organization_name"`
	Contact           string    `json:"contact" db:"contact"`
	OrganizationEmail string    `json:"organization_email" db:"organization_email"`
	IssueType         string    `json:"issue_type" db:"issue_type"`
	Priority          string    `json:"priority" db:"priority"`
	Subject           string    `json:"subject" db:"subject"`
	Description       string    `json:"description" db:"description"`
	Status            string    `json:"status" db:"status"`
	AdminNotes        string    `json:"admin_notes" db:"admin_notes"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Inquiry is a general public inquiry
type Inquiry struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	OrganizationName  string    `json:"organization_name" db:"organization_name"`
	Contact           string    `json:"contact" db:"contact"`
	OrganizationEmail string    `json:"organization_email" db:"organization_email"`
	Subject           string    `json:"subject" db:"subject"`
	Message           string    `json:"message" db:"message"`
	Status            string    `json:"status" db:"status"`
	AdminNotes        string    `json:"admin_notes" db:"admin_notes"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// EventRegistration is a public registration for an event. EventID is a
// weak reference; event name, date, time and price are denormalized
// copies taken at submission time.
type EventRegistration struct {
	ID             int64     `json:"id" db:"id"`
	EventID        *int64    `json:"event_id" db:"event_id"`
	EventName      string    `json:"event_name" db:"event_name"`
	EventDate      string    `json:"event_date" db:"event_date"`
	EventTime      string    `json:"event_time" db:"event_time"`
	EventPrice     string    `json:"event_price" db:"event_price"`
	Name           string    `json:"name" db:"name"`
	Contact        string    `json:"contact" db:"contact"`
	Email          string    `json:"email" db:"email"`
	AdditionalInfo string    `json:"additional_info" db:"additional_info"`
	Status         string    `json:"status" db:"status"`
	AdminNotes     string    `json:"admin_notes" db:"admin_notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
