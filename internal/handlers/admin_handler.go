package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/admin"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/catalog"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/view"
)

// Shown when a catalog mutation survived in memory but the durable write
// degraded to the local key-value snapshot.
const degradedPersistenceWarning = "Could not save the catalog file. Changes were saved to local storage instead."

// AdminHandler handles product CRUD requests from the admin panel
type AdminHandler struct {
	workflow *admin.Workflow
	catalog  *catalog.Store
	logger   *slog.Logger
}

// NewAdminHandler creates a new admin handler and registers the admin
// view's entry renderer (the unfiltered catalog).
func NewAdminHandler(workflow *admin.Workflow, catalog *catalog.Store, views *view.Controller, logger *slog.Logger) *AdminHandler {
	h := &AdminHandler{
		workflow: workflow,
		catalog:  catalog,
		logger:   logger,
	}
	views.OnEnter(view.Admin, func() interface{} {
		return h.catalog.All()
	})
	return h
}

// ListProducts handles GET /api/admin/products
// The admin list is always the full, unfiltered catalog.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.All(), h.logger)
}

// adminResponse reports a successful admin operation. Warning is set when
// persistence degraded to local-only storage.
type adminResponse struct {
	Product *models.Product `json:"product,omitempty"`
	Message string          `json:"message"`
	Warning string          `json:"warning,omitempty"`
}

// CreateProduct handles POST /api/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input admin.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.workflow.Create(r.Context(), input)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.logger.Info("product created", "productId", result.Product.ID, "persisted", result.Persisted)
	writeJSON(w, http.StatusCreated, h.response(result, "Product added"), h.logger)
}

// UpdateProduct handles PUT /api/admin/products/{productId}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var input admin.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.workflow.Update(r.Context(), id, input)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.logger.Info("product updated", "productId", id, "persisted", result.Persisted)
	writeJSON(w, http.StatusOK, h.response(result, "Product updated"), h.logger)
}

// DeleteProduct handles DELETE /api/admin/products/{productId}
// Deleting an unknown id succeeds: removal is idempotent.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	result := h.workflow.Delete(r.Context(), id)

	h.logger.Info("product deleted", "productId", id, "persisted", result.Persisted)
	writeJSON(w, http.StatusOK, h.response(result, "Product deleted"), h.logger)
}

func (h *AdminHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", raw, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	var validation *admin.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message, h.logger)
	case errors.Is(err, admin.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found", h.logger)
	default:
		h.logger.Error("admin operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}

func (h *AdminHandler) response(result admin.Result, message string) adminResponse {
	resp := adminResponse{Message: message}
	if result.Product.ID != 0 {
		product := result.Product
		resp.Product = &product
	}
	if !result.Persisted {
		resp.Warning = degradedPersistenceWarning
	}
	return resp
}
