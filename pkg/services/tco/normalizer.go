package tco

import (
	"strings"

	"github.com/fin-tools/tco-atlas/pkg/models/domain"
)

// DefaultTimePeriodMonths is the reporting window used when the caller does
// not supply one.
const DefaultTimePeriodMonths = 12

// PeriodCost normalizes a single cost record to the amount attributable to a
// reporting window of timePeriodMonths. It is pure and never errors: unknown
// or empty recurrence values fall back to one-time semantics with no
// amortization, i.e. the full lump sum.
func PeriodCost(cost domain.Cost, timePeriodMonths int) float64 {
	months := float64(timePeriodMonths)

	switch strings.ToLower(strings.TrimSpace(cost.Recurrence)) {
	case domain.RecurrenceMonthly:
		return cost.Amount * months
	case domain.RecurrenceQuarterly:
		return cost.Amount * months / 3
	case domain.RecurrenceAnnual:
		return cost.Amount * months / 12
	case domain.RecurrenceOneTime:
		amort := timePeriodMonths
		if cost.AmortizationMonths != nil && *cost.AmortizationMonths > 0 {
			amort = *cost.AmortizationMonths
		}
		if amort > 0 {
			return cost.Amount / float64(amort) * months
		}
		// Degenerate window with no amortization: full lump sum.
		return cost.Amount
	default:
		return cost.Amount
	}
}
