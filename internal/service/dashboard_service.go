package service

import (
	"context"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
)

const recentActivityLimit = 5

// DashboardStats is the aggregate snapshot shown on the admin dashboard
type DashboardStats struct {
	TotalBrands         int `json:"total_brands"`
	TotalCategories     int `json:"total_categories"`
	TotalProducts       int `json:"total_products"`
	TotalServices       int `json:"total_services"`
	TotalEvents         int `json:"total_events"`
	PendingQuotes       int `json:"pending_quotes"`
	OpenSupportCases    int `json:"open_support_cases"`
	UnreadInquiries     int `json:"unread_inquiries"`
	RecentRegistrations int `json:"recent_registrations"`
}

// RecentActivity lists the newest submissions of each type
type RecentActivity struct {
	QuoteRequests      []*domain.QuoteRequest      `json:"quote_requests"`
	SupportCases       []*domain.SupportCase       `json:"support_cases"`
	Inquiries          []*domain.Inquiry           `json:"inquiries"`
	EventRegistrations []*domain.EventRegistration `json:"event_registrations"`
}

// Dashboard bundles the stats and the recent activity feed
type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	RecentActivity RecentActivity `json:"recent_activity"`
}

// DashboardService assembles the admin dashboard snapshot
type DashboardService interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	serviceRepo  repository.ServiceRepository
	eventRepo    repository.EventRepository
	quoteRepo    repository.QuoteRequestRepository
	supportRepo  repository.SupportCaseRepository
	inquiryRepo  repository.InquiryRepository
	registerRepo repository.EventRegistrationRepository
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	eventRepo repository.EventRepository,
	quoteRepo repository.QuoteRequestRepository,
	supportRepo repository.SupportCaseRepository,
	inquiryRepo repository.InquiryRepository,
	registerRepo repository.EventRegistrationRepository,
) DashboardService {
	return &dashboardService{
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		eventRepo:    eventRepo,
		quoteRepo:    quoteRepo,
		supportRepo:  supportRepo,
		inquiryRepo:  inquiryRepo,
		registerRepo: registerRepo,
	}
}

// GetDashboard collects counts of active catalog content, submissions
// awaiting triage, and the five most recent submissions of each type.
func (s *dashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		dash Dashboard
		err  error
	)

	if dash.Stats.TotalBrands, err = s.brandRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count brands: %w", err)
	}
	if dash.Stats.TotalCategories, err = s.categoryRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if dash.Stats.TotalProducts, err = s.productRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if dash.Stats.TotalServices, err = s.serviceRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}
	if dash.Stats.TotalEvents, err = s.eventRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	if dash.Stats.PendingQuotes, err = s.quoteRepo.CountByStatus(ctx, domain.QuoteStatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending quotes: %w", err)
	}
	if dash.Stats.OpenSupportCases, err = s.supportRepo.CountByStatus(ctx, domain.SupportStatusOpen); err != nil {
		return nil, fmt.Errorf("failed to count open support cases: %w", err)
	}
	if dash.Stats.UnreadInquiries, err = s.inquiryRepo.CountByStatus(ctx, domain.InquiryStatusUnread); err != nil {
		return nil, fmt.Errorf("failed to count unread inquiries: %w", err)
	}
	if dash.Stats.RecentRegistrations, err = s.registerRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count event registrations: %w", err)
	}

	if dash.RecentActivity.QuoteRequests, err = s.quoteRepo.ListRecent(ctx, recentActivityLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent quote requests: %w", err)
	}
	if dash.RecentActivity.SupportCases, err = s.supportRepo.ListRecent(ctx, recentActivityLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent support cases: %w", err)
	}
	if dash.RecentActivity.Inquiries, err = s.inquiryRepo.ListRecent(ctx, recentActivityLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent inquiries: %w", err)
	}
	if dash.RecentActivity.EventRegistrations, err = s.registerRepo.ListRecent(ctx, recentActivityLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent event registrations: %w", err)
	}

	return &dash, nil
}
