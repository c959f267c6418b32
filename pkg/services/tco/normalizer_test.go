package tco

import (
	"testing"

	"github.com/fin-tools/tco-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestPeriodCost(t *testing.T) {
	tests := []struct {
		name     string
		cost     domain.Cost
		months   int
		expected float64
	}{
		{
			name:     "monthly scales by window",
			cost:     domain.Cost{Recurrence: "monthly", Amount: 100},
			months:   12,
			expected: 1200,
		},
		{
			name:     "monthly single month",
			cost:     domain.Cost{Recurrence: "monthly", Amount: 100},
			months:   1,
			expected: 100,
		},
		{
			name:     "monthly zero window",
			cost:     domain.Cost{Recurrence: "monthly", Amount: 100},
			months:   0,
			expected: 0,
		},
		{
			name:     "quarterly over a year",
			cost:     domain.Cost{Recurrence: "quarterly", Amount: 300},
			months:   12,
			expected: 1200,
		},
		{
			name:     "annual over a year",
			cost:     domain.Cost{Recurrence: "annual", Amount: 1200},
			months:   12,
			expected: 1200,
		},
		{
			name:     "annual over half a year",
			cost:     domain.Cost{Recurrence: "annual", Amount: 1200},
			months:   6,
			expected: 600,
		},
		{
			name:     "one-time without amortization cancels out",
			cost:     domain.Cost{Recurrence: "one-time", Amount: 6000},
			months:   12,
			expected: 6000,
		},
		{
			name:     "one-time amortized over full window",
			cost:     domain.Cost{Recurrence: "one-time", Amount: 1200, AmortizationMonths: intPtr(12)},
			months:   12,
			expected: 1200,
		},
		{
			name:     "one-time amortized, single month window",
			cost:     domain.Cost{Recurrence: "one-time", Amount: 1200, AmortizationMonths: intPtr(12)},
			months:   1,
			expected: 100,
		},
		{
			name:     "one-time amortized over longer window",
			cost:     domain.Cost{Recurrence: "one-time", Amount: 6000, AmortizationMonths: intPtr(12)},
			months:   24,
			expected: 12000,
		},
		{
			name:     "one-time non-positive amortization falls back to window",
			cost:     domain.Cost{Recurrence: "one-time", Amount: 500, AmortizationMonths: intPtr(0)},
			months:   12,
			expected: 500,
		},
		{
			name:     "unknown recurrence is a lump sum",
			cost:     domain.Cost{Recurrence: "biweekly", Amount: 42},
			months:   12,
			expected: 42,
		},
		{
			name:     "empty recurrence is a lump sum",
			cost:     domain.Cost{Recurrence: "", Amount: 42},
			months:   12,
			expected: 42,
		},
		{
			name:     "recurrence matched case-insensitively",
			cost:     domain.Cost{Recurrence: " Monthly ", Amount: 10},
			months:   3,
			expected: 30,
		},
		{
			name:     "negative amount passes through arithmetic",
			cost:     domain.Cost{Recurrence: "monthly", Amount: -5},
			months:   2,
			expected: -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PeriodCost(tt.cost, tt.months), 1e-9)
		})
	}
}

func TestPeriodCost_IsDeterministic(t *testing.T) {
	cost := domain.Cost{Recurrence: "quarterly", Amount: 333.33}
	first := PeriodCost(cost, 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, PeriodCost(cost, 7))
	}
}
