package transport

import (
	"net/http"

	"github.com/ashimthegreat/techbucket-website/internal/middleware"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
	"github.com/ashimthegreat/techbucket-website/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogAdminHandler handles the admin CRUD endpoints for catalog
// content: brands, categories, products, services and events.
type CatalogAdminHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogAdminHandler creates a new CatalogAdminHandler
func NewCatalogAdminHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogAdminHandler {
	return &CatalogAdminHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the admin catalog routes. The router passed
// in must already carry the auth middleware.
func (h *CatalogAdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/brands", func(r chi.Router) {
		r.Get("/", h.ListBrands)
		r.Post("/", h.CreateBrand)
		r.Get("/{id}", h.GetBrand)
		r.Put("/{id}", h.UpdateBrand)
		r.Delete("/{id}", h.DeleteBrand)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{id}", h.GetCategory)
		r.Put("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.ListServices)
		r.Post("/", h.CreateService)
		r.Get("/{id}", h.GetService)
		r.Put("/{id}", h.UpdateService)
		r.Delete("/{id}", h.DeleteService)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Get("/{id}", h.GetEvent)
		r.Put("/{id}", h.UpdateEvent)
		r.Delete("/{id}", h.DeleteEvent)
	})
}

// decodeBody decodes and validates a request payload, writing the error
// response itself. Returns false when the request was rejected.
func (h *CatalogAdminHandler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		h.logger.Debug("Catalog request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// respondCatalogError maps the catalog sentinel errors to status codes
func (h *CatalogAdminHandler) respondCatalogError(w http.ResponseWriter, err error, action string) {
	switch err {
	case repository.ErrBrandNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "brand not found")
	case repository.ErrCategoryNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
	case repository.ErrProductNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case repository.ErrServiceNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "service not found")
	case repository.ErrEventNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "event not found")
	case repository.ErrBrandInUse:
		middleware.RespondWithError(w, http.StatusConflict, "brand is referenced by existing products")
	case repository.ErrCategoryInUse:
		middleware.RespondWithError(w, http.StatusConflict, "category is referenced by existing products")
	case service.ErrInvalidEventDate:
		middleware.RespondWithError(w, http.StatusBadRequest, "event date must be in YYYY-MM-DD format")
	case service.ErrInvalidEventTime:
		middleware.RespondWithError(w, http.StatusBadRequest, "event time must be in HH:MM format")
	case service.ErrInvalidEventStatus:
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid event status")
	default:
		h.logger.Error("Catalog operation failed", zap.String("action", action), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// ---- Brands ----

func (h *CatalogAdminHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	brands, total, err := h.catalogService.ListBrands(r.Context(), params)
	if err != nil {
		h.respondCatalogError(w, err, "list brands")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(brands, total, params))
}

func (h *CatalogAdminHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var input service.CreateBrandInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	brand, err := h.catalogService.CreateBrand(r.Context(), input)
	if err != nil {
		h.respondCatalogError(w, err, "create brand")
		return
	}

	h.logger.Info("Brand created", zap.Int64("brand_id", brand.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, brand)
}

func (h *CatalogAdminHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	brand, err := h.catalogService.GetBrand(r.Context(), id)
	if err != nil {
		h.respondCatalogError(w, err, "get brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

func (h *CatalogAdminHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	var input service.UpdateBrandInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	brand, err := h.catalogService.UpdateBrand(r.Context(), id, input)
	if err != nil {
		h.respondCatalogError(w, err, "update brand")
		return
	}

	h.logger.Info("Brand updated", zap.Int64("brand_id", brand.ID))
	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

func (h *CatalogAdminHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand ID")
		return
	}

	if err := h.catalogService.DeleteBrand(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "delete brand")
		return
	}

	h.logger.Info("Brand deleted", zap.Int64("brand_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "brand deleted"})
}

// ---- Categories ----

func (h *CatalogAdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	categories, total, err := h.catalogService.ListCategories(r.Context(), params)
	if err != nil {
		h.respondCatalogError(w, err, "list categories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(categories, total, params))
}

func (h *CatalogAdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCategoryInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), input)
	if err != nil {
		h.respondCatalogError(w, err, "create category")
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

func (h *CatalogAdminHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := h.catalogService.GetCategory(r.Context(), id)
	if err != nil {
		h.respondCatalogError(w, err, "get category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CatalogAdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var input service.UpdateCategoryInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	category, err := h.catalogService.UpdateCategory(r.Context(), id, input)
	if err != nil {
		h.respondCatalogError(w, err, "update category")
		return
	}

	h.logger.Info("Category updated", zap.Int64("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CatalogAdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "delete category")
		return
	}

	h.logger.Info("Category deleted", zap.Int64("category_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "category deleted"})
}

// ---- Products ----

func (h *CatalogAdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	products, total, err := h.catalogService.ListProducts(r.Context(), repository.ProductFilter{}, params)
	if err != nil {
		h.respondCatalogError(w, err, "list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(products, total, params))
}

func (h *CatalogAdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProductInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), input)
	if err != nil {
		h.respondCatalogError(w, err, "create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *CatalogAdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		h.respondCatalogError(w, err, "get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *CatalogAdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var input service.UpdateProductInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, input)
	if err != nil {
		h.respondCatalogError(w, err, "update product")
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *CatalogAdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "product deleted"})
}

// ---- Services ----

func (h *CatalogAdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	services, total, err := h.catalogService.ListServices(r.Context(), params)
	if err != nil {
		h.respondCatalogError(w, err, "list services")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(services, total, params))
}

func (h *CatalogAdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var input service.CreateServiceInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	svc, err := h.catalogService.CreateService(r.Context(), input)
	if err != nil {
		h.respondCatalogError(w, err, "create service")
		return
	}

	h.logger.Info("Service created", zap.Int64("service_id", svc.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, svc)
}

func (h *CatalogAdminHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(r.Context(), id)
	if err != nil {
		h.respondCatalogError(w, err, "get service")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, svc)
}

func (h *CatalogAdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid service ID")
		return
	}

	var input service.UpdateServiceInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	svc, err := h.catalogService.UpdateService(r.Context(), id, input)
	if err != nil {
		h.respondCatalogError(w, err, "update service")
		return
	}

	h.logger.Info("Service updated", zap.Int64("service_id", svc.ID))
	middleware.RespondWithJSON(w, http.StatusOK, svc)
}

func (h *CatalogAdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid service ID")
		return
	}

	if err := h.catalogService.DeleteService(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "delete service")
		return
	}

	h.logger.Info("Service deleted", zap.Int64("service_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "service deleted"})
}

// ---- Events ----

func (h *CatalogAdminHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	events, total, err := h.catalogService.ListEvents(r.Context(), params)
	if err != nil {
		h.respondCatalogError(w, err, "list events")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(events, total, params))
}

func (h *CatalogAdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input service.CreateEventInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	event, err := h.catalogService.CreateEvent(r.Context(), input)
	if err != nil {
		h.respondCatalogError(w, err, "create event")
		return
	}

	h.logger.Info("Event created", zap.Int64("event_id", event.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, event)
}

func (h *CatalogAdminHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	event, err := h.catalogService.GetEvent(r.Context(), id)
	if err != nil {
		h.respondCatalogError(w, err, "get event")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, event)
}

func (h *CatalogAdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var input service.UpdateEventInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	event, err := h.catalogService.UpdateEvent(r.Context(), id, input)
	if err != nil {
		h.respondCatalogError(w, err, "update event")
		return
	}

	h.logger.Info("Event updated", zap.Int64("event_id", event.ID))
	middleware.RespondWithJSON(w, http.StatusOK, event)
}

func (h *CatalogAdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	if err := h.catalogService.DeleteEvent(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "delete event")
		return
	}

	h.logger.Info("Event deleted", zap.Int64("event_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "event deleted"})
}
