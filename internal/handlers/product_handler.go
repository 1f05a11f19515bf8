package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/catalog"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/view"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	catalog *catalog.Store
	views   *view.Controller
	logger  *slog.Logger

	mu             sync.RWMutex
	activeCategory string
}

// NewProductHandler creates a new product handler and registers the
// products view's entry renderer. The renderer applies the active category
// filter, which listing requests update.
func NewProductHandler(catalog *catalog.Store, views *view.Controller, logger *slog.Logger) *ProductHandler {
	h := &ProductHandler{
		catalog:        catalog,
		views:          views,
		logger:         logger,
		activeCategory: models.DefaultCategory,
	}
	views.OnEnter(view.Products, func() interface{} {
		h.mu.RLock()
		category := h.activeCategory
		h.mu.RUnlock()
		return h.catalog.Filter(category)
	})
	return h
}

// ListProducts handles GET /api/product
// The optional category query parameter filters by exact match and becomes
// the active filter; "All" (or no parameter) returns the full catalog.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = models.DefaultCategory
	}

	h.mu.Lock()
	h.activeCategory = category
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, h.catalog.Filter(category), h.logger)
}

// ListCategories handles GET /api/categories
// Returns the distinct categories for the filter tabs.
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories(), h.logger)
}

// GetProduct handles GET /api/product/{productId}
// Returns a single product and moves the active view to the detail screen:
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", productID, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, ok := h.catalog.FindByID(id)
	if !ok {
		h.logger.Info("product not found", "productId", id)
		writeError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}

	if _, err := h.views.Show(view.ProductDetail); err != nil {
		h.logger.Error("failed to show product detail view", "error", err)
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}
