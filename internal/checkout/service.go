// Package checkout places orders from the current cart.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/cart"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
)

var (
	ErrMissingFields = errors.New("please fill in all required fields")
	ErrEmptyCart     = errors.New("cart is empty")
)

// Service turns the current cart into an order.
type Service struct {
	cart *cart.Store
}

// NewService creates a checkout service over the given cart store.
func NewService(cart *cart.Store) *Service {
	return &Service{cart: cart}
}

// PlaceOrder validates the checkout form, snapshots the cart into an
// order, and clears the cart. Name, email and address are required; the
// payment method is cosmetic and only echoed on the order. No payment is
// taken.
func (s *Service) PlaceOrder(ctx context.Context, req models.CheckoutRequest) (*models.Order, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Address) == "" {
		return nil, ErrMissingFields
	}

	items := s.cart.Lines()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		Customer:      req.Customer,
		Items:         items,
		Total:         s.cart.Subtotal(),
		PaymentMethod: req.PaymentMethod,
	}

	s.cart.Clear(ctx)
	return order, nil
}
