package adapters

import (
	"github.com/fin-tools/tco-atlas/pkg/models/api"
	"github.com/fin-tools/tco-atlas/pkg/models/domain"
	"github.com/fin-tools/tco-atlas/pkg/models/store"
)

func MapStoreCostToDomain(record store.CostRecord) domain.Cost {
	return domain.Cost{
		ID:                 record.ID,
		ProductID:          record.ProductID,
		Name:               record.Name,
		Scope:              record.Scope,
		Category:           record.Category,
		CostType:           record.CostType,
		Recurrence:         record.Recurrence,
		Amount:             record.Amount,
		Currency:           record.Currency,
		Description:        record.Description,
		AmortizationMonths: copyIntPtr(record.AmortizationMonths),
	}
}

func MapDomainCostToStore(cost domain.Cost) store.CostRecord {
	return store.CostRecord{
		ID:                 cost.ID,
		ProductID:          cost.ProductID,
		Name:               cost.Name,
		Scope:              cost.Scope,
		Category:           cost.Category,
		CostType:           cost.CostType,
		Recurrence:         cost.Recurrence,
		Amount:             cost.Amount,
		Currency:           cost.Currency,
		Description:        cost.Description,
		AmortizationMonths: copyIntPtr(cost.AmortizationMonths),
	}
}

func MapCostDomainToApi(cost domain.Cost) api.Cost {
	return api.Cost{
		ID:                 cost.ID,
		ProductID:          cost.ProductID,
		Name:               cost.Name,
		Scope:              cost.Scope,
		Category:           cost.Category,
		CostType:           cost.CostType,
		Recurrence:         cost.Recurrence,
		Amount:             cost.Amount,
		Currency:           cost.Currency,
		Description:        cost.Description,
		AmortizationMonths: copyIntPtr(cost.AmortizationMonths),
	}
}

func MapCreateCostApiToDomain(productID string, req api.CreateCost) domain.Cost {
	return domain.Cost{
		ProductID:          productID,
		Name:               req.Name,
		Scope:              req.Scope,
		Category:           req.Category,
		CostType:           req.CostType,
		Recurrence:         req.Recurrence,
		Amount:             req.Amount,
		Currency:           req.Currency,
		Description:        req.Description,
		AmortizationMonths: copyIntPtr(req.AmortizationMonths),
	}
}

func copyIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
