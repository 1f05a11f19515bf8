// Package cart holds the shopping cart line items and their operations.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("cart line not found")
)

// ProductFinder resolves product ids against the current catalog.
type ProductFinder interface {
	FindByID(id int64) (models.Product, bool)
}

// Persister writes the cart to the key-value channel after every mutation.
type Persister interface {
	SaveCart(ctx context.Context, lines []models.CartLine) error
	LoadCart(ctx context.Context) ([]models.CartLine, error)
}

// Store owns the ordered cart. Lines are addressed by position; removal
// shifts later positions, so callers must re-fetch indices after any
// mutation.
type Store struct {
	catalog   ProductFinder
	persister Persister
	logger    *slog.Logger

	mu    sync.RWMutex
	lines []models.CartLine
}

// NewStore creates an empty cart store.
func NewStore(catalog ProductFinder, persister Persister, logger *slog.Logger) *Store {
	return &Store{
		catalog:   catalog,
		persister: persister,
		logger:    logger,
		lines:     []models.CartLine{},
	}
}

// Load restores the persisted cart. An absent cart yields an empty one.
func (s *Store) Load(ctx context.Context) {
	lines, err := s.persister.LoadCart(ctx)
	if err != nil {
		s.logger.Warn("cart unreadable, starting empty", "error", err)
		lines = []models.CartLine{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
}

// Add puts quantity units of a product variant into the cart. If a line
// with the same (product, variant) key already exists its quantity is
// incremented; otherwise a new line is appended with a snapshot of the
// product's current price, name and image.
func (s *Store) Add(ctx context.Context, productID int64, variant string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	product, ok := s.catalog.FindByID(productID)
	if !ok {
		return ErrProductNotFound
	}

	s.mu.Lock()
	merged := false
	for i, line := range s.lines {
		if line.ProductID == productID && line.Variant == variant {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, models.CartLine{
			ProductID: productID,
			Variant:   variant,
			Quantity:  quantity,
			Price:     product.Price,
			Name:      product.Name,
			Image:     product.Image,
		})
	}
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// ChangeQuantity adjusts the quantity of the line at index by delta. A
// resulting quantity below 1 removes the line entirely.
func (s *Store) ChangeQuantity(ctx context.Context, index int, delta int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return ErrLineNotFound
	}

	next := s.lines[index].Quantity + delta
	if next < 1 {
		s.lines = append(s.lines[:index], s.lines[index+1:]...)
	} else {
		s.lines[index].Quantity = next
	}
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Remove deletes the line at index.
func (s *Store) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return ErrLineNotFound
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Clear empties the cart. Called on successful order placement.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = []models.CartLine{}
	s.mu.Unlock()

	s.persist(ctx)
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartLine{}, s.lines...)
}

// Subtotal sums price times quantity over all lines. No taxes or shipping
// are modeled, so the subtotal equals the order total.
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var subtotal float64
	for _, line := range s.lines {
		subtotal += line.Total()
	}
	return subtotal
}

// ItemCount sums the quantities over all lines, for the cart badge.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// persist writes the cart to the key-value channel. The channel has no
// alternate backend, so a failed write is logged and the in-memory cart
// stays authoritative for the session.
func (s *Store) persist(ctx context.Context) {
	if err := s.persister.SaveCart(ctx, s.Lines()); err != nil {
		s.logger.Error("cart write failed", "error", err)
	}
}
