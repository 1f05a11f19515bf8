package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/cart"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/view"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cart   *cart.Store
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler and registers the cart view's
// entry renderer, so entering the cart view always reflects current store
// state.
func NewCartHandler(cart *cart.Store, views *view.Controller, logger *slog.Logger) *CartHandler {
	h := &CartHandler{
		cart:   cart,
		logger: logger,
	}
	views.OnEnter(view.Cart, func() interface{} {
		return h.render()
	})
	return h
}

// cartView is the rendered cart: lines in insertion order plus totals and
// the badge count.
type cartView struct {
	Lines     []models.CartLine `json:"lines"`
	Subtotal  float64           `json:"subtotal"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

// addItemRequest is the add-to-cart payload.
type addItemRequest struct {
	ProductID int64  `json:"productId"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
}

// changeQuantityRequest adjusts a line's quantity by a signed delta.
type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.render(), h.logger)
}

// AddItem handles POST /api/cart/items
// Adds quantity units of a product variant, merging with an existing line
// for the same (product, variant) pair.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.cart.Add(r.Context(), req.ProductID, req.Variant, req.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "Quantity must be at least 1", h.logger)
		case errors.Is(err, cart.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "Product not found", h.logger)
		default:
			h.logger.Error("failed to add cart item", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, h.render(), h.logger)
}

// ChangeQuantity handles PATCH /api/cart/items/{index}
// A delta that drops the quantity below 1 removes the line.
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	index, ok := h.lineIndex(w, r)
	if !ok {
		return
	}

	var req changeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.cart.ChangeQuantity(r.Context(), index, req.Delta); err != nil {
		writeError(w, http.StatusNotFound, "Cart line not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.render(), h.logger)
}

// RemoveItem handles DELETE /api/cart/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, ok := h.lineIndex(w, r)
	if !ok {
		return
	}

	if err := h.cart.Remove(r.Context(), index); err != nil {
		writeError(w, http.StatusNotFound, "Cart line not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.render(), h.logger)
}

func (h *CartHandler) lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.Warn("invalid cart line index", "index", raw, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid line index", h.logger)
		return 0, false
	}
	return index, true
}

func (h *CartHandler) render() cartView {
	subtotal := h.cart.Subtotal()
	return cartView{
		Lines:     h.cart.Lines(),
		Subtotal:  subtotal,
		Total:     subtotal,
		ItemCount: h.cart.ItemCount(),
	}
}
