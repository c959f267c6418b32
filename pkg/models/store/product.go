package store

import "time"

// ProductRecord is the persisted shape of a product row, including the cached
// TCO snapshot columns.
type ProductRecord struct {
	ID       string
	Name     string
	Currency string

	TCO               *float64
	TCOCurrency       string
	TCOLastCalculated *time.Time
	CreatedAt         time.Time
}
