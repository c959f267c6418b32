package store

import "time"

// CostRecord is the persisted shape of a cost row.
type CostRecord struct {
	ID                 string
	ProductID          string
	Name               string
	Scope              string
	Category           string
	CostType           string
	Recurrence         string
	Amount             float64
	Currency           string
	Description        string
	AmortizationMonths *int

	// ExternalRef identifies the upstream record an imported cost came from,
	// used to dedupe repeated import runs. Empty for manually created costs.
	ExternalRef string
	CreatedAt   time.Time
}
