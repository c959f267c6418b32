package tco

import (
	"context"
	"fmt"
	"time"

	"github.com/fin-tools/tco-atlas/pkg/models/domain"
)

// ProductStore extends ProductReader with the write the updater needs.
type ProductStore interface {
	ProductReader
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
}

// Updater persists TCO snapshots onto product entities. The write is a plain
// read-mutate-save of three cached fields; concurrent updaters racing on the
// same product are last-writer-wins, which is fine for derived data.
type Updater struct {
	calculator *Calculator
	products   ProductStore
	now        func() time.Time
}

func NewUpdater(calculator *Calculator, products ProductStore) *Updater {
	return &Updater{
		calculator: calculator,
		products:   products,
		now:        time.Now,
	}
}

// Refresh recalculates the product's TCO over the given window and writes the
// total, currency and calculation timestamp back onto the product, returning
// the updated entity. ErrProductNotFound propagates from the calculation.
func (u *Updater) Refresh(
	ctx context.Context,
	productID string,
	timePeriodMonths int,
) (*domain.Product, error) {
	report, err := u.calculator.CalculateTCO(ctx, productID, timePeriodMonths)
	if err != nil {
		return nil, err
	}

	// Re-fetch right before the write so the snapshot lands on the current row.
	product, err := u.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", productID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %q: %w", productID, ErrProductNotFound)
	}

	total := report.TotalTCO
	calculatedAt := u.now().UTC()
	product.TCO = &total
	product.TCOCurrency = report.Currency
	product.TCOLastCalculated = &calculatedAt

	updated, err := u.products.SaveProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("save product %q: %w", productID, err)
	}
	return updated, nil
}
