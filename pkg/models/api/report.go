package api

// CostLineItem is a cost together with its normalized period cost.
type CostLineItem struct {
	Cost       Cost    `json:"cost"`
	PeriodCost float64 `json:"period_cost"`
}

// TCOReport is the aggregation response. Field names and the three
// breakdown-map shape are a stable schema; do not rename.
type TCOReport struct {
	ProductID           string             `json:"product_id"`
	TotalTCO            float64            `json:"total_tco"`
	Currency            string             `json:"currency"`
	TimePeriodMonths    int                `json:"time_period_months"`
	BreakdownByCategory map[string]float64 `json:"breakdown_by_category"`
	BreakdownByScope    map[string]float64 `json:"breakdown_by_scope"`
	BreakdownByCostType map[string]float64 `json:"breakdown_by_cost_type"`
	LineItems           []CostLineItem     `json:"line_items"`
}

// ScopeReport is the scope-restricted aggregation response.
type ScopeReport struct {
	ProductID        string         `json:"product_id"`
	Scope            string         `json:"scope"`
	Total            float64        `json:"total"`
	Currency         string         `json:"currency"`
	TimePeriodMonths int            `json:"time_period_months"`
	LineItems        []CostLineItem `json:"line_items"`
}
