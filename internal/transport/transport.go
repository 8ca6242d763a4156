package transport

import (
	"net/http"
	"strconv"

	"github.com/ashimthegreat/techbucket-website/internal/repository"

	"github.com/go-chi/chi/v5"
)

// PaginatedResponse wraps a list payload with its paging metadata
type PaginatedResponse struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// MessageResponse is a simple confirmation payload
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// idParam parses the {id} URL parameter
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// listParams reads page and page_size query parameters. Invalid or
// missing values fall back to the defaults during normalization.
func listParams(r *http.Request) repository.ListParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return repository.ListParams{Page: page, PageSize: pageSize}
}

func newPaginatedResponse(items interface{}, total int, params repository.ListParams) PaginatedResponse {
	params = params.Normalize()
	return PaginatedResponse{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
}
