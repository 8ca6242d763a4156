package transport

import (
	"context"
	"sort"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
)

// Map-backed mock repositories shared across the handler tests. Handlers
// are exercised end to end through real services wired onto these.

type mockAdminRepository struct {
	admins map[int64]*domain.Admin
	nextID int64
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{admins: make(map[int64]*domain.Admin), nextID: 1}
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	for _, existing := range m.admins {
		if existing.Username == admin.Username {
			return repository.ErrAdminAlreadyExists
		}
	}
	admin.ID = m.nextID
	m.nextID++
	admin.CreatedAt = time.Now()
	m.admins[admin.ID] = admin
	return nil
}

func (m *mockAdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	for _, admin := range m.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return nil, repository.ErrAdminNotFound
}

func (m *mockAdminRepository) FindByID(ctx context.Context, id int64) (*domain.Admin, error) {
	admin, exists := m.admins[id]
	if !exists {
		return nil, repository.ErrAdminNotFound
	}
	return admin, nil
}

func (m *mockAdminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	admin, exists := m.admins[id]
	if !exists {
		return repository.ErrAdminNotFound
	}
	now := time.Now()
	admin.LastLogin = &now
	return nil
}

func (m *mockAdminRepository) UpdateCredentials(ctx context.Context, admin *domain.Admin) error {
	existing, exists := m.admins[admin.ID]
	if !exists {
		return repository.ErrAdminNotFound
	}
	for id, other := range m.admins {
		if id != admin.ID && other.Username == admin.Username {
			return repository.ErrAdminAlreadyExists
		}
	}
	*existing = *admin
	return nil
}

type mockTokenRepository struct {
	tokens map[string]*domain.AdminToken
	nextID int64
}

func newMockTokenRepository() *mockTokenRepository {
	return &mockTokenRepository{tokens: make(map[string]*domain.AdminToken), nextID: 1}
}

func (m *mockTokenRepository) Create(ctx context.Context, token *domain.AdminToken) error {
	token.ID = m.nextID
	m.nextID++
	token.CreatedAt = time.Now()
	m.tokens[token.Token] = token
	return nil
}

func (m *mockTokenRepository) FindByToken(ctx context.Context, token string) (*domain.AdminToken, error) {
	adminToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrTokenNotFound
	}
	if adminToken.Revoked {
		return nil, repository.ErrTokenRevoked
	}
	return adminToken, nil
}

func (m *mockTokenRepository) Revoke(ctx context.Context, token string) error {
	adminToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrTokenNotFound
	}
	adminToken.Revoked = true
	return nil
}

type mockBrandRepository struct {
	brands map[int64]*domain.Brand
	nextID int64
}

func newMockBrandRepository() *mockBrandRepository {
	return &mockBrandRepository{brands: make(map[int64]*domain.Brand), nextID: 1}
}

func (m *mockBrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	brand.ID = m.nextID
	m.nextID++
	m.brands[brand.ID] = brand
	return nil
}

func (m *mockBrandRepository) FindByID(ctx context.Context, id int64) (*domain.Brand, error) {
	brand, exists := m.brands[id]
	if !exists {
		return nil, repository.ErrBrandNotFound
	}
	return brand, nil
}

func (m *mockBrandRepository) List(ctx context.Context, params repository.ListParams) ([]*domain.Brand, int, error) {
	all := make([]*domain.Brand, 0, len(m.brands))
	for _, brand := range m.brands {
		all = append(all, brand)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (m *mockBrandRepository) ListActive(ctx context.Context) ([]*domain.Brand, error) {
	all, _, _ := m.List(ctx, repository.ListParams{})
	active := make([]*domain.Brand, 0, len(all))
	for _, brand := range all {
		if brand.IsActive {
			active = append(active, brand)
		}
	}
	return active, nil
}

func (m *mockBrandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	if _, exists := m.brands[brand.ID]; !exists {
		return repository.ErrBrandNotFound
	}
	m.brands[brand.ID] = brand
	return nil
}

func (m *mockBrandRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.brands[id]; !exists {
		return repository.ErrBrandNotFound
	}
	delete(m.brands, id)
	return nil
}

func (m *mockBrandRepository) CountActive(ctx context.Context) (int, error) {
	active, _ := m.ListActive(ctx)
	return len(active), nil
}

type mockCategoryRepository struct {
	categories map[int64]*domain.Category
	nextID     int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[int64]*domain.Category), nextID: 1}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) List(ctx context.Context, params repository.ListParams) ([]*domain.Category, int, error) {
	all := make([]*domain.Category, 0, len(m.categories))
	for _, category := range m.categories {
		all = append(all, category)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (m *mockCategoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	all, _, _ := m.List(ctx, repository.ListParams{})
	active := make([]*domain.Category, 0, len(all))
	for _, category := range all {
		if category.IsActive {
			active = append(active, category)
		}
	}
	return active, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, exists := m.categories[category.ID]; !exists {
		return repository.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.categories[id]; !exists {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) CountActive(ctx context.Context) (int, error) {
	active, _ := m.ListActive(ctx)
	return len(active), nil
}

type mockProductRepository struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[int64]*domain.Product), nextID: 1}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter, params repository.ListParams) ([]*domain.Product, int, error) {
	matched := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		if filter.ActiveOnly && !product.IsActive {
			continue
		}
		if filter.BrandID != nil && (product.BrandID == nil || *product.BrandID != *filter.BrandID) {
			continue
		}
		if filter.CategoryID != nil && (product.CategoryID == nil || *product.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Featured != nil && product.Featured != *filter.Featured {
			continue
		}
		matched = append(matched, product)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, len(matched), nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) CountActive(ctx context.Context) (int, error) {
	count := 0
	for _, product := range m.products {
		if product.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *mockProductRepository) CountByBrand(ctx context.Context, brandID int64) (int, error) {
	count := 0
	for _, product := range m.products {
		if product.BrandID != nil && *product.BrandID == brandID {
			count++
		}
	}
	return count, nil
}

func (m *mockProductRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	count := 0
	for _, product := range m.products {
		if product.CategoryID != nil && *product.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

type mockServiceRepository struct {
	services map[int64]*domain.Service
	nextID   int64
}

func newMockServiceRepository() *mockServiceRepository {
	return &mockServiceRepository{services: make(map[int64]*domain.Service), nextID: 1}
}

func (m *mockServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	svc.ID = m.nextID
	m.nextID++
	m.services[svc.ID] = svc
	return nil
}

func (m *mockServiceRepository) FindByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, exists := m.services[id]
	if !exists {
		return nil, repository.ErrServiceNotFound
	}
	return svc, nil
}

func (m *mockServiceRepository) List(ctx context.Context, params repository.ListParams) ([]*domain.Service, int, error) {
	all := make([]*domain.Service, 0, len(m.services))
	for _, svc := range m.services {
		all = append(all, svc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (m *mockServiceRepository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	all, _, _ := m.List(ctx, repository.ListParams{})
	active := make([]*domain.Service, 0, len(all))
	for _, svc := range all {
		if svc.IsActive {
			active = append(active, svc)
		}
	}
	return active, nil
}

func (m *mockServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	if _, exists := m.services[svc.ID]; !exists {
		return repository.ErrServiceNotFound
	}
	m.services[svc.ID] = svc
	return nil
}

func (m *mockServiceRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.services[id]; !exists {
		return repository.ErrServiceNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *mockServiceRepository) CountActive(ctx context.Context) (int, error) {
	active, _ := m.ListActive(ctx)
	return len(active), nil
}

type mockEventRepository struct {
	events map[int64]*domain.Event
	nextID int64
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{events: make(map[int64]*domain.Event), nextID: 1}
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	event.ID = m.nextID
	m.nextID++
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	event, exists := m.events[id]
	if !exists {
		return nil, repository.ErrEventNotFound
	}
	return event, nil
}

func (m *mockEventRepository) List(ctx context.Context, params repository.ListParams) ([]*domain.Event, int, error) {
	all := make([]*domain.Event, 0, len(m.events))
	for _, event := range m.events {
		all = append(all, event)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (m *mockEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	all, _, _ := m.List(ctx, repository.ListParams{})
	active := make([]*domain.Event, 0, len(all))
	for _, event := range all {
		if event.IsActive {
			active = append(active, event)
		}
	}
	return active, nil
}

func (m *mockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if _, exists := m.events[event.ID]; !exists {
		return repository.ErrEventNotFound
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.events[id]; !exists {
		return repository.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) CountActive(ctx context.Context) (int, error) {
	active, _ := m.ListActive(ctx)
	return len(active), nil
}

type mockQuoteRequestRepository struct {
	quotes map[int64]*domain.QuoteRequest
	nextID int64
}

func newMockQuoteRequestRepository() *mockQuoteRequestRepository {
	return &mockQuoteRequestRepository{quotes: make(map[int64]*domain.QuoteRequest), nextID: 1}
}

func (m *mockQuoteRequestRepository) Create(ctx context.Context, quote *domain.QuoteRequest) error {
	quote.ID = m.nextID
	m.nextID++
	if quote.Status == "" {
		quote.Status = domain.QuoteStatusPending
	}
	quote.CreatedAt = time.Now()
	m.quotes[quote.ID] = quote
	return nil
}

func (m *mockQuoteRequestRepository) FindByID(ctx context.Context, id int64) (*domain.QuoteRequest, error) {
	quote, exists := m.quotes[id]
	if !exists {
		return nil, repository.ErrQuoteRequestNotFound
	}
	return quote, nil
}

func (m *mockQuoteRequestRepository) List(ctx context.Context, params repository.ListParams) ([]*domain.QuoteRequest, int, error) {
	all := make([]*domain.QuoteRequest, 0, len(m.quotes))
	for _, quote := range m.quotes {
		all = append(all, quote)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, len(all), nil
}

func (m *mockQuoteRequestRepository) ListRecent(ctx context.Context, limit int) ([]*domain.QuoteRequest, error) {
	all, _, _ := m.List(ctx, repository.ListParams{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockQuoteRequestRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error {
	quote, exists := m.quotes[id]
	if !exists {
		return repository.ErrQuoteRequestNotFound
	}
	quote.Status = status
	quote.AdminNotes = adminNotes
	return nil
}

func (m *mockQuoteRequestRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	count := 0
	for _, quote := range m.quotes {
		if quote.Status == status {
			count++
		}
	}
	return count, nil
}

type mockSupportCaseRepository struct {
	cases  map[int64]*domain.SupportCase
	nextID int64
}

func newMockSupportCaseRepository() *mockSupportCaseRepository {
	return &mockSupportCaseRepository{cases: make(map[int64]*domain.SupportCase), nextID: 1}
}

func (m *mockSupportCaseRepository) Create(ctx context.Context, sc *domain.SupportCase) error {
	sc.ID = m.nextID
	m.nextID++
	if sc.Status == "" {
		sc.Status = domain.SupportStatusOpen
	}
	sc.CreatedAt = time.Now()
	m.cases[sc.ID] = sc
	return nil
}

func (m *mockSupportCaseRepository) FindByID(ctx context.Context, id int64) (*domain.SupportCase, error) {
	sc, exists := m.cases[id]
	if !exists {
		return nil, repository.ErrSupportCaseNotFound
	}
	return sc, nil
}

func (m *mockSupportCaseRepository) List(ctx context.Context, params repository.ListParams) ([]*domain.SupportCase, int, error) {
	all := make([]*domain.SupportCase, 0, len(m.cases))
	for _, sc := range m.cases {
		all = append(all, sc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, len(all), nil
}

func (m *mockSupportCaseRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SupportCase, error) {
	all, _, _ := m.List(ctx, repository.ListParams{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockSupportCaseRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error {
	sc, exists := m.cases[id]
	if !exists {
		return repository.ErrSupportCaseNotFound
	}
	sc.Status = status
	sc.AdminNotes = adminNotes
	return nil
}

func (m *mockSupportCaseRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	count := 0
	for _, sc := range m.cases {
		if sc.Status == status {
			count++
		}
	}
	return count, nil
}

type mockInquiryRepository struct {
	inquiries map[int64]*domain.Inquiry
	nextID    int64
}

func newMockInquiryRepository() *mockInquiryRepository {
	return &mockInquiryRepository{inquiries: make(map[int64]*domain.Inquiry), nextID: 1}
}

func (m *mockInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	inquiry.ID = m.nextID
	m.nextID++
	if inquiry.Status == "" {
		inquiry.Status = domain.InquiryStatusUnread
	}
	inquiry.CreatedAt = time.Now()
	m.inquiries[inquiry.ID] = inquiry
	return nil
}

func (m *mockInquiryRepository) FindByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	inquiry, exists := m.inquiries[id]
	if !exists {
		return nil, repository.ErrInquiryNotFound
	}
	return inquiry, nil
}

func (m *mockInquiryRepository) List(ctx context.Context, params repository.ListParams) ([]*domain.Inquiry, int, error) {
	all := make([]*domain.Inquiry, 0, len(m.inquiries))
	for _, inquiry := range m.inquiries {
		all = append(all, inquiry)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, len(all), nil
}

func (m *mockInquiryRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Inquiry, error) {
	all, _, _ := m.List(ctx, repository.ListParams{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockInquiryRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error {
	inquiry, exists := m.inquiries[id]
	if !exists {
		return repository.ErrInquiryNotFound
	}
	inquiry.Status = status
	inquiry.AdminNotes = adminNotes
	return nil
}

func (m *mockInquiryRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	count := 0
	for _, inquiry := range m.inquiries {
		if inquiry.Status == status {
			count++
		}
	}
	return count, nil
}

type mockEventRegistrationRepository struct {
	registrations map[int64]*domain.EventRegistration
	nextID        int64
}

func newMockEventRegistrationRepository() *mockEventRegistrationRepository {
	return &mockEventRegistrationRepository{registrations: make(map[int64]*domain.EventRegistration), nextID: 1}
}

func (m *mockEventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	reg.ID = m.nextID
	m.nextID++
	if reg.Status == "" {
		reg.Status = domain.RegistrationStatusRegistered
	}
	reg.CreatedAt = time.Now()
	m.registrations[reg.ID] = reg
	return nil
}

func (m *mockEventRegistrationRepository) FindByID(ctx context.Context, id int64) (*domain.EventRegistration, error) {
	reg, exists := m.registrations[id]
	if !exists {
		return nil, repository.ErrEventRegistrationNotFound
	}
	return reg, nil
}

func (m *mockEventRegistrationRepository) List(ctx context.Context, params repository.ListParams) ([]*domain.EventRegistration, int, error) {
	all := make([]*domain.EventRegistration, 0, len(m.registrations))
	for _, reg := range m.registrations {
		all = append(all, reg)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, len(all), nil
}

func (m *mockEventRegistrationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.EventRegistration, error) {
	all, _, _ := m.List(ctx, repository.ListParams{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockEventRegistrationRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) error {
	reg, exists := m.registrations[id]
	if !exists {
		return repository.ErrEventRegistrationNotFound
	}
	reg.Status = status
	reg.AdminNotes = adminNotes
	return nil
}

func (m *mockEventRegistrationRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	count := 0
	for _, reg := range m.registrations {
		if reg.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockEventRegistrationRepository) Count(ctx context.Context) (int, error) {
	return len(m.registrations), nil
}

type mockOutboxRepository struct {
	emails map[int64]*domain.OutboxEmail
	nextID int64
}

func newMockOutboxRepository() *mockOutboxRepository {
	return &mockOutboxRepository{emails: make(map[int64]*domain.OutboxEmail), nextID: 1}
}

func (m *mockOutboxRepository) Enqueue(ctx context.Context, email *domain.OutboxEmail) error {
	email.ID = m.nextID
	m.nextID++
	email.Status = domain.EmailStatusPending
	email.NextAttemptAt = time.Now()
	email.CreatedAt = time.Now()
	m.emails[email.ID] = email
	return nil
}

func (m *mockOutboxRepository) ClaimDue(ctx context.Context, limit int) ([]*domain.OutboxEmail, error) {
	due := make([]*domain.OutboxEmail, 0)
	for _, email := range m.emails {
		if email.Status == domain.EmailStatusPending && len(due) < limit {
			due = append(due, email)
		}
	}
	return due, nil
}

func (m *mockOutboxRepository) MarkSent(ctx context.Context, id int64) error {
	email, exists := m.emails[id]
	if !exists {
		return repository.ErrOutboxEmailNotFound
	}
	now := time.Now()
	email.Status = domain.EmailStatusSent
	email.SentAt = &now
	return nil
}

func (m *mockOutboxRepository) MarkFailed(ctx context.Context, id int64, lastError string, nextAttemptAt time.Time, final bool) error {
	email, exists := m.emails[id]
	if !exists {
		return repository.ErrOutboxEmailNotFound
	}
	email.Attempts++
	email.LastError = lastError
	email.NextAttemptAt = nextAttemptAt
	if final {
		email.Status = domain.EmailStatusFailed
	}
	return nil
}
