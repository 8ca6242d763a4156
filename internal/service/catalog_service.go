package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ashimthegreat/techbucket-website/internal/domain"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
)

var (
	ErrInvalidEventDate   = errors.New("event date must be in YYYY-MM-DD format")
	ErrInvalidEventTime   = errors.New("event time must be in HH:MM format")
	ErrInvalidEventStatus = errors.New("invalid event status")
)

// Allowed event lifecycle states
var eventStatuses = map[string]bool{
	"upcoming":  true,
	"ongoing":   true,
	"completed": true,
	"cancelled": true,
}

// CatalogService manages the content shown on the public website: brands,
// categories, products, services and events.
type CatalogService interface {
	CreateBrand(ctx context.Context, input CreateBrandInput) (*domain.Brand, error)
	GetBrand(ctx context.Context, id int64) (*domain.Brand, error)
	ListBrands(ctx context.Context, params repository.ListParams) ([]*domain.Brand, int, error)
	ListActiveBrands(ctx context.Context) ([]*domain.Brand, error)
	UpdateBrand(ctx context.Context, id int64, input UpdateBrandInput) (*domain.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, params repository.ListParams) ([]*domain.Category, int, error)
	ListActiveCategories(ctx context.Context) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter, params repository.ListParams) ([]*domain.Product, int, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateService(ctx context.Context, input CreateServiceInput) (*domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, params repository.ListParams) ([]*domain.Service, int, error)
	ListActiveServices(ctx context.Context) ([]*domain.Service, error)
	UpdateService(ctx context.Context, id int64, input UpdateServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, id int64) error

	CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	ListEvents(ctx context.Context, params repository.ListParams) ([]*domain.Event, int, error)
	ListActiveEvents(ctx context.Context) ([]*domain.Event, error)
	UpdateEvent(ctx context.Context, id int64, input UpdateEventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// CreateBrandInput carries a brand creation request
type CreateBrandInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	Website     string `json:"website" validate:"omitempty,url"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateBrandInput carries a partial brand update. Nil fields are left
// unchanged.
type UpdateBrandInput struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
	Website     *string `json:"website" validate:"omitempty,url"`
	IsActive    *bool   `json:"is_active"`
}

type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"is_active"`
}

type CreateProductInput struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Description    string   `json:"description"`
	Specifications []string `json:"specifications"`
	ImageURL       string   `json:"image_url" validate:"omitempty,url"`
	Price          float64  `json:"price" validate:"gte=0"`
	BrandID        *int64   `json:"brand_id"`
	CategoryID     *int64   `json:"category_id"`
	IsActive       *bool    `json:"is_active"`
	Featured       *bool    `json:"featured"`
}

type UpdateProductInput struct {
	Name           *string   `json:"name" validate:"omitempty,max=200"`
	Description    *string   `json:"description"`
	Specifications *[]string `json:"specifications"`
	ImageURL       *string   `json:"image_url" validate:"omitempty,url"`
	Price          *float64  `json:"price" validate:"omitempty,gte=0"`
	BrandID        *int64    `json:"brand_id"`
	CategoryID     *int64    `json:"category_id"`
	IsActive       *bool     `json:"is_active"`
	Featured       *bool     `json:"featured"`
}

type CreateServiceInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Benefits    []string `json:"benefits"`
	Process     []string `json:"process"`
	Icon        string   `json:"icon"`
	IsActive    *bool    `json:"is_active"`
	Featured    *bool    `json:"featured"`
}

type UpdateServiceInput struct {
	Title       *string   `json:"title" validate:"omitempty,max=200"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
	Benefits    *[]string `json:"benefits"`
	Process     *[]string `json:"process"`
	Icon        *string   `json:"icon"`
	IsActive    *bool     `json:"is_active"`
	Featured    *bool     `json:"featured"`
}

type CreateEventInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	EventType   string   `json:"event_type"`
	Status      string   `json:"status"`
	Agenda      []string `json:"agenda"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateEventInput struct {
	Title       *string   `json:"title" validate:"omitempty,max=200"`
	Description *string   `json:"description"`
	Date        *string   `json:"date"`
	Time        *string   `json:"time"`
	Location    *string   `json:"location"`
	Capacity    *int      `json:"capacity" validate:"omitempty,gte=0"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	EventType   *string   `json:"event_type"`
	Status      *string   `json:"status"`
	Agenda      *[]string `json:"agenda"`
	IsActive    *bool     `json:"is_active"`
}

type catalogService struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	serviceRepo  repository.ServiceRepository
	eventRepo    repository.EventRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	eventRepo repository.EventRepository,
) CatalogService {
	return &catalogService{
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		eventRepo:    eventRepo,
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

// ---- Brands ----

func (s *catalogService) CreateBrand(ctx context.Context, input CreateBrandInput) (*domain.Brand, error) {
	brand := &domain.Brand{
		Name:        input.Name,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		Website:     input.Website,
		IsActive:    boolOr(input.IsActive, true),
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

func (s *catalogService) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	return s.brandRepo.FindByID(ctx, id)
}

func (s *catalogService) ListBrands(ctx context.Context, params repository.ListParams) ([]*domain.Brand, int, error) {
	return s.brandRepo.List(ctx, params)
}

func (s *catalogService) ListActiveBrands(ctx context.Context) ([]*domain.Brand, error) {
	return s.brandRepo.ListActive(ctx)
}

func (s *catalogService) UpdateBrand(ctx context.Context, id int64, input UpdateBrandInput) (*domain.Brand, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		brand.Name = *input.Name
	}
	if input.Description != nil {
		brand.Description = *input.Description
	}
	if input.LogoURL != nil {
		brand.LogoURL = *input.LogoURL
	}
	if input.Website != nil {
		brand.Website = *input.Website
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// DeleteBrand removes a brand. Brands referenced by products cannot be
// deleted; callers receive ErrBrandInUse.
func (s *catalogService) DeleteBrand(ctx context.Context, id int64) error {
	return s.brandRepo.Delete(ctx, id)
}

// ---- Categories ----

func (s *catalogService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		IsActive:    boolOr(input.IsActive, true),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context, params repository.ListParams) ([]*domain.Category, int, error) {
	return s.categoryRepo.List(ctx, params)
}

func (s *catalogService) ListActiveCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

func (s *catalogService) UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}

// ---- Products ----

// checkProductRefs verifies that referenced brand and category rows exist
// so the caller gets a named error instead of a raw constraint violation.
func (s *catalogService) checkProductRefs(ctx context.Context, brandID, categoryID *int64) error {
	if brandID != nil {
		if _, err := s.brandRepo.FindByID(ctx, *brandID); err != nil {
			if err == repository.ErrBrandNotFound {
				return repository.ErrBrandNotFound
			}
			return fmt.Errorf("failed to check brand reference: %w", err)
		}
	}
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
			if err == repository.ErrCategoryNotFound {
				return repository.ErrCategoryNotFound
			}
			return fmt.Errorf("failed to check category reference: %w", err)
		}
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if err := s.checkProductRefs(ctx, input.BrandID, input.CategoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:           input.Name,
		Description:    input.Description,
		Specifications: domain.StringList(input.Specifications),
		ImageURL:       input.ImageURL,
		Price:          input.Price,
		BrandID:        input.BrandID,
		CategoryID:     input.CategoryID,
		IsActive:       boolOr(input.IsActive, true),
		Featured:       boolOr(input.Featured, false),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter, params repository.ListParams) ([]*domain.Product, int, error) {
	return s.productRepo.List(ctx, filter, params)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkProductRefs(ctx, input.BrandID, input.CategoryID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Specifications != nil {
		product.Specifications = domain.StringList(*input.Specifications)
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.BrandID != nil {
		product.BrandID = input.BrandID
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

// ---- Services ----

func (s *catalogService) CreateService(ctx context.Context, input CreateServiceInput) (*domain.Service, error) {
	svc := &domain.Service{
		Title:       input.Title,
		Description: input.Description,
		Features:    domain.StringList(input.Features),
		Benefits:    domain.StringList(input.Benefits),
		Process:     domain.StringList(input.Process),
		Icon:        input.Icon,
		IsActive:    boolOr(input.IsActive, true),
		Featured:    boolOr(input.Featured, false),
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (s *catalogService) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	return s.serviceRepo.FindByID(ctx, id)
}

func (s *catalogService) ListServices(ctx context.Context, params repository.ListParams) ([]*domain.Service, int, error) {
	return s.serviceRepo.List(ctx, params)
}

func (s *catalogService) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	return s.serviceRepo.ListActive(ctx)
}

func (s *catalogService) UpdateService(ctx context.Context, id int64, input UpdateServiceInput) (*domain.Service, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		svc.Title = *input.Title
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.Features != nil {
		svc.Features = domain.StringList(*input.Features)
	}
	if input.Benefits != nil {
		svc.Benefits = domain.StringList(*input.Benefits)
	}
	if input.Process != nil {
		svc.Process = domain.StringList(*input.Process)
	}
	if input.Icon != nil {
		svc.Icon = *input.Icon
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if input.Featured != nil {
		svc.Featured = *input.Featured
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id int64) error {
	return s.serviceRepo.Delete(ctx, id)
}

// ---- Events ----

func (s *catalogService) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	date, err := domain.ParseDateOnly(input.Date)
	if err != nil {
		return nil, ErrInvalidEventDate
	}

	clock, err := domain.ParseClockTime(input.Time)
	if err != nil {
		return nil, ErrInvalidEventTime
	}

	status := input.Status
	if status == "" {
		status = "upcoming"
	}
	if !eventStatuses[status] {
		return nil, ErrInvalidEventStatus
	}

	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		Time:        clock,
		Location:    input.Location,
		Capacity:    input.Capacity,
		Price:       input.Price,
		EventType:   input.EventType,
		Status:      status,
		Agenda:      domain.StringList(input.Agenda),
		IsActive:    boolOr(input.IsActive, true),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *catalogService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *catalogService) ListEvents(ctx context.Context, params repository.ListParams) ([]*domain.Event, int, error) {
	return s.eventRepo.List(ctx, params)
}

func (s *catalogService) ListActiveEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.eventRepo.ListActive(ctx)
}

func (s *catalogService) UpdateEvent(ctx context.Context, id int64, input UpdateEventInput) (*domain.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Date != nil {
		date, err := domain.ParseDateOnly(*input.Date)
		if err != nil {
			return nil, ErrInvalidEventDate
		}
		event.Date = date
	}
	if input.Time != nil {
		clock, err := domain.ParseClockTime(*input.Time)
		if err != nil {
			return nil, ErrInvalidEventTime
		}
		event.Time = clock
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Capacity != nil {
		event.Capacity = *input.Capacity
	}
	if input.Price != nil {
		event.Price = *input.Price
	}
	if input.EventType != nil {
		event.EventType = *input.EventType
	}
	if input.Status != nil {
		if !eventStatuses[*input.Status] {
			return nil, ErrInvalidEventStatus
		}
		event.Status = *input.Status
	}
	if input.Agenda != nil {
		event.Agenda = domain.StringList(*input.Agenda)
	}
	if input.IsActive != nil {
		event.IsActive = *input.IsActive
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *catalogService) DeleteEvent(ctx context.Context, id int64) error {
	return s.eventRepo.Delete(ctx, id)
}
