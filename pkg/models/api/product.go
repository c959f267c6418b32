package api

import "time"

// Product is the wire shape of a product, including its cached TCO snapshot.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`

	TCO               *float64   `json:"tco,omitempty"`
	TCOCurrency       string     `json:"tco_currency,omitempty"`
	TCOLastCalculated *time.Time `json:"tco_last_calculated,omitempty"`
}

// CreateProduct is the request body for registering a product.
type CreateProduct struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}
