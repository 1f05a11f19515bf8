package models

// CartLine represents one entry in the shopping cart.
// Price, name and image are snapshots taken when the line was added, so
// later catalog edits (or deletion of the product) do not affect it.
type CartLine struct {
	ProductID int64   `json:"productId"`
	Variant   string  `json:"variant"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

// Total returns the line total (snapshot price times quantity).
func (l CartLine) Total() float64 {
	return l.Price * float64(l.Quantity)
}

// Customer holds the checkout form fields.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CheckoutRequest represents an incoming order placement request
type CheckoutRequest struct {
	Customer
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// Order represents a confirmed order. Orders are returned to the caller
// for the confirmation screen and are not persisted anywhere.
type Order struct {
	ID            string     `json:"id"`
	Customer      Customer   `json:"customer"`
	Items         []CartLine `json:"items"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
}
