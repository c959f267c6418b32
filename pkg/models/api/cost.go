package api

// Cost is the wire shape of a cost record.
type Cost struct {
	ID                 string  `json:"id"`
	ProductID          string  `json:"product_id"`
	Name               string  `json:"name,omitempty"`
	Scope              string  `json:"scope"`
	Category           string  `json:"category"`
	CostType           string  `json:"cost_type"`
	Recurrence         string  `json:"recurrence"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	Description        string  `json:"description,omitempty"`
	AmortizationMonths *int    `json:"amortization_period,omitempty"`
}

// CreateCost is the request body for adding a cost to a product.
type CreateCost struct {
	Name               string  `json:"name"`
	Scope              string  `json:"scope"`
	Category           string  `json:"category"`
	CostType           string  `json:"cost_type"`
	Recurrence         string  `json:"recurrence"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	Description        string  `json:"description"`
	AmortizationMonths *int    `json:"amortization_period"`
}
