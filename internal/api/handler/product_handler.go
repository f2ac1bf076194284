package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"marketplace/internal/api/middleware"
	"marketplace/internal/app/service"
	"marketplace/internal/common"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(ps *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{productService: ps, logger: logger}
}

// RegisterRoutes expects r to sit behind the authentication gate.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Post("/list", h.listProduct)           // POST /api/product/list
	r.Get("/user", h.userProducts)           // GET /api/product/user
	r.Get("/all", h.allProducts)             // GET /api/product/all
	r.Get("/filter", h.filterSearch)         // GET /api/product/filter
	r.Get("/filter/{query}", h.filterSearch) // GET /api/product/filter/shirt
}

func (h *ProductHandler) listProduct(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.ListProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	product, err := h.productService.List(r.Context(), identity.UserID, req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondOK(w, product, "Product listed successfully")
}

func (h *ProductHandler) userProducts(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	products, err := h.productService.UserProducts(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondOK(w, products, "Product fetched successfully")
}

func (h *ProductHandler) allProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.AllProducts(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondOK(w, products, "Product fetched successfully")
}

func (h *ProductHandler) filterSearch(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.FilterSearch(r.Context(), searchQuery(r))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondOK(w, products, "Product fetched successfully")
}

// searchQuery returns the decoded {query} path segment, or "" on /filter.
func searchQuery(r *http.Request) string {
	query := chi.URLParam(r, "query")
	// chi matches against RawPath when it is set, leaving escapes in place.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(query); err == nil {
			return unescaped
		}
	}
	return query
}
