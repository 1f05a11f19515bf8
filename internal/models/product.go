package models

// Default values applied to incomplete catalog records.
const (
	DefaultProductName  = "Unnamed Product"
	DefaultProductImage = "default-product.jpg"
	DefaultCategory     = "All"
)

// Product represents a storefront product
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Variants    []string `json:"variants"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
}

// Normalize fills in defaults for absent fields on a loaded record.
// index is the record's zero-based position in the source document and is
// used to synthesize an id when the record carries none.
func (p Product) Normalize(index int) Product {
	if p.ID == 0 {
		p.ID = int64(index) + 1
	}
	if p.Name == "" {
		p.Name = DefaultProductName
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Image == "" {
		p.Image = DefaultProductImage
	}
	if p.Variants == nil {
		p.Variants = []string{}
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	return p
}

// NormalizeCatalog normalizes every record in a loaded catalog.
func NormalizeCatalog(products []Product) []Product {
	normalized := make([]Product, len(products))
	for i, p := range products {
		normalized[i] = p.Normalize(i)
	}
	return normalized
}
