package adapters

import (
	"maps"
	"time"

	"github.com/fin-tools/tco-atlas/pkg/models/api"
	"github.com/fin-tools/tco-atlas/pkg/models/domain"
)

func MapTCOReportDomainToApi(report domain.TCOReport) api.TCOReport {
	return api.TCOReport{
		ProductID:           report.ProductID,
		TotalTCO:            report.TotalTCO,
		Currency:            report.Currency,
		TimePeriodMonths:    report.TimePeriodMonths,
		BreakdownByCategory: maps.Clone(report.BreakdownByCategory),
		BreakdownByScope:    maps.Clone(report.BreakdownByScope),
		BreakdownByCostType: maps.Clone(report.BreakdownByCostType),
		LineItems:           mapLineItemsDomainToApi(report.LineItems),
	}
}

func MapScopeReportDomainToApi(report domain.ScopeReport) api.ScopeReport {
	return api.ScopeReport{
		ProductID:        report.ProductID,
		Scope:            report.Scope,
		Total:            report.Total,
		Currency:         report.Currency,
		TimePeriodMonths: report.TimePeriodMonths,
		LineItems:        mapLineItemsDomainToApi(report.LineItems),
	}
}

func mapLineItemsDomainToApi(items []domain.CostLineItem) []api.CostLineItem {
	result := make([]api.CostLineItem, 0, len(items))
	for _, item := range items {
		result = append(result, api.CostLineItem{
			Cost:       MapCostDomainToApi(item.Cost),
			PeriodCost: item.PeriodCost,
		})
	}
	return result
}

func copyFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyTimePtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
