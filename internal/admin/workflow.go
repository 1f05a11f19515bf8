// Package admin validates and applies product CRUD operations against the
// catalog store.
package admin

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/catalog"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// ValidationError carries the blocking message shown to the admin user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProductInput is the raw admin form: variants arrive as one
// comma-separated string.
type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Variants    string  `json:"variants"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// Result reports the outcome of a successful admin operation. Persisted is
// false when the catalog write degraded to local-only storage; the
// in-memory mutation is kept either way.
type Result struct {
	Product   models.Product
	Persisted bool
}

// Workflow applies validated create/update/delete operations.
type Workflow struct {
	catalog *catalog.Store
}

// NewWorkflow creates an admin workflow over the given catalog store.
func NewWorkflow(catalog *catalog.Store) *Workflow {
	return &Workflow{catalog: catalog}
}

// Create validates the input and adds a new product to the catalog.
func (w *Workflow) Create(ctx context.Context, input ProductInput) (Result, error) {
	product, err := w.validate(input)
	if err != nil {
		return Result{}, err
	}

	added, persisted := w.catalog.Add(ctx, product)
	return Result{Product: added, Persisted: persisted}, nil
}

// Update validates the input and replaces the product with the given id.
// A missing id reports ErrProductNotFound without mutating the catalog.
func (w *Workflow) Update(ctx context.Context, id int64, input ProductInput) (Result, error) {
	product, err := w.validate(input)
	if err != nil {
		return Result{}, err
	}

	found, persisted := w.catalog.Update(ctx, id, product)
	if !found {
		return Result{}, ErrProductNotFound
	}
	product.ID = id
	return Result{Product: product, Persisted: persisted}, nil
}

// Delete removes the product with the given id. Deleting an absent id is
// a no-op; the returned flag reports the persistence outcome.
func (w *Workflow) Delete(ctx context.Context, id int64) Result {
	persisted := w.catalog.Remove(ctx, id)
	return Result{Persisted: persisted}
}

// validate applies the form rules in order, stopping at the first failure.
func (w *Workflow) validate(input ProductInput) (models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return models.Product{}, &ValidationError{Message: "Product name must be at least 2 characters"}
	}
	if math.IsNaN(input.Price) || input.Price <= 0 {
		return models.Product{}, &ValidationError{Message: "Please enter a valid price"}
	}
	if strings.TrimSpace(input.Image) == "" {
		return models.Product{}, &ValidationError{Message: "Please provide an image URL"}
	}
	variants := splitVariants(input.Variants)
	if len(variants) == 0 {
		return models.Product{}, &ValidationError{Message: "Please add at least one variant"}
	}
	description := strings.TrimSpace(input.Description)
	if len(description) < 10 {
		return models.Product{}, &ValidationError{Message: "Description must be at least 10 characters"}
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	return models.Product{
		Name:        name,
		Price:       input.Price,
		Image:       strings.TrimSpace(input.Image),
		Variants:    variants,
		Description: description,
		Category:    category,
	}, nil
}

func splitVariants(raw string) []string {
	variants := []string{}
	for _, v := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			variants = append(variants, trimmed)
		}
	}
	return variants
}
