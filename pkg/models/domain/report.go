package domain

// CostLineItem is a cost record annotated with the amount attributable to the
// reporting window.
type CostLineItem struct {
	Cost       Cost
	PeriodCost float64
}

// TCOReport is the full aggregation output for a product: a grand total plus
// three independent breakdowns keyed by lower-cased classification values.
type TCOReport struct {
	ProductID           string
	TotalTCO            float64
	Currency            string
	TimePeriodMonths    int
	BreakdownByCategory map[string]float64
	BreakdownByScope    map[string]float64
	BreakdownByCostType map[string]float64
	LineItems           []CostLineItem
}

// ScopeReport is the narrower aggregation over the costs of a single scope.
type ScopeReport struct {
	ProductID        string
	Scope            string
	Total            float64
	Currency         string
	TimePeriodMonths int
	LineItems        []CostLineItem
}
