package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/checkout"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/view"
)

// CheckoutHandler handles order placement
type CheckoutHandler struct {
	service *checkout.Service
	views   *view.Controller
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *checkout.Service, views *view.Controller, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		views:   views,
		logger:  logger,
	}
}

// PlaceOrder handles POST /api/checkout
// On success the cart is cleared and the active view moves to the order
// confirmation screen.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Please fill in all required fields", h.logger)
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "Your cart is empty", h.logger)
		default:
			h.logger.Error("failed to place order", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	if _, err := h.views.Show(view.OrderConfirmation); err != nil {
		h.logger.Error("failed to show order confirmation view", "error", err)
	}

	h.logger.Info("order placed",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total,
		"payment_method", order.PaymentMethod,
	)

	writeJSON(w, http.StatusCreated, order, h.logger)
}
