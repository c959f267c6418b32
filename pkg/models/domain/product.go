package domain

import "time"

// Product owns a set of cost records and carries a cached TCO snapshot. The
// snapshot fields are derived data, recomputable at will.
type Product struct {
	ID       string
	Name     string
	Currency string

	TCO               *float64
	TCOCurrency       string
	TCOLastCalculated *time.Time
}
