package transport

import (
	"net/http"
	"strconv"

	"github.com/ashimthegreat/techbucket-website/internal/middleware"
	"github.com/ashimthegreat/techbucket-website/internal/repository"
	"github.com/ashimthegreat/techbucket-website/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PublicHandler serves the read-only catalog endpoints used by the
// public website. Only active content is returned.
type PublicHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(catalogService service.CatalogService, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public catalog routes
func (h *PublicHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/brands", h.ListBrands)
	r.Get("/api/categories", h.ListCategories)
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/services", h.ListServices)
	r.Get("/api/events", h.ListEvents)
}

// ListBrands returns all active brands
func (h *PublicHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalogService.ListActiveBrands(r.Context())
	if err != nil {
		h.logger.Error("Failed to list brands", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brands)
}

// ListCategories returns all active categories
func (h *PublicHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListActiveCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// ListProducts returns active products, optionally filtered by brand,
// category or featured flag.
func (h *PublicHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{ActiveOnly: true}

	if v := r.URL.Query().Get("brand_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand_id")
			return
		}
		filter.BrandID = &id
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		filter.CategoryID = &id
	}
	if v := r.URL.Query().Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid featured flag")
			return
		}
		filter.Featured = &featured
	}

	params := listParams(r)
	products, total, err := h.catalogService.ListProducts(r.Context(), filter, params)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, newPaginatedResponse(products, total, params))
}

// ListServices returns all active services
func (h *PublicHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.ListActiveServices(r.Context())
	if err != nil {
		h.logger.Error("Failed to list services", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list services")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, services)
}

// ListEvents returns all active events ordered by date
func (h *PublicHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.catalogService.ListActiveEvents(r.Context())
	if err != nil {
		h.logger.Error("Failed to list events", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, events)
}
