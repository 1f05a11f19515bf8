// Package catalog holds the normalized product list and its operations.
package catalog

import (
	"context"
	"sync"

	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
)

// Persister is the durable side of the catalog: every mutation is written
// through it, and its boolean result reports whether durability degraded
// to local-only storage.
type Persister interface {
	Load(ctx context.Context) []models.Product
	Write(ctx context.Context, products []models.Product) bool
}

// Store owns the ordered product catalog.
type Store struct {
	persister Persister

	mu       sync.RWMutex
	products []models.Product
}

// NewStore creates an empty catalog store backed by the given persister.
func NewStore(persister Persister) *Store {
	return &Store{
		persister: persister,
		products:  []models.Product{},
	}
}

// Load replaces the catalog with the persisted one, normalizing each
// record. Load never fails; an unreadable catalog yields an empty one.
func (s *Store) Load(ctx context.Context) {
	products := models.NormalizeCatalog(s.persister.Load(ctx))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// All returns a copy of the full catalog in catalog order.
func (s *Store) All() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product{}, s.products...)
}

// Filter returns the products in the given category. The "All" sentinel
// returns the full catalog unfiltered.
func (s *Store) Filter(category string) []models.Product {
	if category == "" || category == models.DefaultCategory {
		return s.All()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range s.products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FindByID returns the product with the given id.
func (s *Store) FindByID(id int64) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Add appends a product with a freshly assigned id (one greater than the
// largest existing id, or 1 for an empty catalog) and persists the
// catalog. The boolean reports whether the durable write succeeded.
func (s *Store) Add(ctx context.Context, product models.Product) (models.Product, bool) {
	s.mu.Lock()
	product.ID = s.nextID()
	s.products = append(s.products, product)
	snapshot := append([]models.Product{}, s.products...)
	s.mu.Unlock()

	return product, s.persister.Write(ctx, snapshot)
}

// Update replaces the product with the given id in place. A missing id is
// a no-op reported through the first return value; the catalog is not
// persisted in that case.
func (s *Store) Update(ctx context.Context, id int64, product models.Product) (found bool, persisted bool) {
	s.mu.Lock()
	index := -1
	for i, p := range s.products {
		if p.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		s.mu.Unlock()
		return false, false
	}
	product.ID = id
	s.products[index] = product
	snapshot := append([]models.Product{}, s.products...)
	s.mu.Unlock()

	return true, s.persister.Write(ctx, snapshot)
}

// Remove deletes the product with the given id and persists the catalog.
// Removing an absent id is a no-op, not an error; the catalog is still
// persisted so the call remains idempotent for callers.
func (s *Store) Remove(ctx context.Context, id int64) bool {
	s.mu.Lock()
	kept := s.products[:0:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	snapshot := append([]models.Product{}, s.products...)
	s.mu.Unlock()

	return s.persister.Write(ctx, snapshot)
}

// Categories returns the distinct categories in catalog order, for the
// filter tabs.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

func (s *Store) nextID() int64 {
	var max int64
	for _, p := range s.products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
