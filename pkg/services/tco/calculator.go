package tco

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fin-tools/tco-atlas/pkg/models/domain"
)

// ErrProductNotFound is returned when the requested product does not exist.
// It is surfaced to the caller as-is, never retried.
var ErrProductNotFound = errors.New("product not found")

// DefaultCurrency is used when a product has no currency configured.
const DefaultCurrency = "USD"

// CostReader supplies the raw cost records the engine aggregates over.
type CostReader interface {
	GetProductCosts(ctx context.Context, productID string) ([]domain.Cost, error)
	// GetProductScopeCosts returns the costs whose scope matches the given
	// value case-insensitively.
	GetProductScopeCosts(ctx context.Context, productID, scope string) ([]domain.Cost, error)
}

// ProductReader resolves products. A missing product is reported as (nil, nil).
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

// Calculator aggregates a product's cost records into period-normalized TCO
// reports. It is stateless; any number of calculations may run concurrently.
type Calculator struct {
	costs    CostReader
	products ProductReader
}

func NewCalculator(costs CostReader, products ProductReader) *Calculator {
	return &Calculator{
		costs:    costs,
		products: products,
	}
}

// CalculateTCO builds the full TCO report for a product over a window of
// timePeriodMonths (DefaultTimePeriodMonths when <= 0). Only strictly positive
// period costs are folded into the breakdowns and line items; zero or negative
// period costs are excluded entirely.
func (c *Calculator) CalculateTCO(
	ctx context.Context,
	productID string,
	timePeriodMonths int,
) (*domain.TCOReport, error) {
	if timePeriodMonths <= 0 {
		timePeriodMonths = DefaultTimePeriodMonths
	}

	product, err := c.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	costs, err := c.costs.GetProductCosts(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get costs for product %q: %w", productID, err)
	}

	report := &domain.TCOReport{
		ProductID:           productID,
		Currency:            resolveCurrency(product),
		TimePeriodMonths:    timePeriodMonths,
		BreakdownByCategory: seedBuckets(defaultCategories),
		BreakdownByScope:    seedBuckets(defaultScopes),
		BreakdownByCostType: map[string]float64{},
		LineItems:           []domain.CostLineItem{},
	}

	for _, cost := range costs {
		periodCost := PeriodCost(cost, timePeriodMonths)
		if periodCost <= 0 {
			continue
		}

		addToBucket(report.BreakdownByCategory, cost.Category, periodCost)
		addToBucket(report.BreakdownByScope, cost.Scope, periodCost)
		addToBucket(report.BreakdownByCostType, cost.CostType, periodCost)
		report.LineItems = append(report.LineItems, domain.CostLineItem{
			Cost:       cost,
			PeriodCost: periodCost,
		})
	}

	for _, amount := range report.BreakdownByCategory {
		report.TotalTCO += amount
	}

	return report, nil
}

// CalculateScopeTCO aggregates only the costs tagged with one scope value.
// Unlike CalculateTCO it applies no period-cost filter: every cost the store
// returns contributes to the total and the line items, zero and negative
// period costs included.
func (c *Calculator) CalculateScopeTCO(
	ctx context.Context,
	productID string,
	scope string,
	timePeriodMonths int,
) (*domain.ScopeReport, error) {
	if timePeriodMonths <= 0 {
		timePeriodMonths = DefaultTimePeriodMonths
	}

	product, err := c.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	costs, err := c.costs.GetProductScopeCosts(ctx, productID, scope)
	if err != nil {
		return nil, fmt.Errorf("get costs for product %q scope %q: %w", productID, scope, err)
	}

	report := &domain.ScopeReport{
		ProductID:        productID,
		Scope:            strings.ToLower(scope),
		Currency:         resolveCurrency(product),
		TimePeriodMonths: timePeriodMonths,
		LineItems:        []domain.CostLineItem{},
	}

	for _, cost := range costs {
		periodCost := PeriodCost(cost, timePeriodMonths)
		report.Total += periodCost
		report.LineItems = append(report.LineItems, domain.CostLineItem{
			Cost:       cost,
			PeriodCost: periodCost,
		})
	}

	return report, nil
}

func (c *Calculator) resolveProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := c.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", productID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %q: %w", productID, ErrProductNotFound)
	}
	return product, nil
}

var defaultCategories = []string{
	domain.CategoryBuild,
	domain.CategoryRun,
	domain.CategoryMaintain,
	domain.CategoryScale,
	domain.CategoryOverhead,
}

var defaultScopes = []string{
	domain.ScopeTask,
	domain.ScopeCapability,
	domain.ScopeProduct,
	domain.ScopeShared,
}

func seedBuckets(keys []string) map[string]float64 {
	buckets := make(map[string]float64, len(keys))
	for _, key := range keys {
		buckets[key] = 0
	}
	return buckets
}

func addToBucket(buckets map[string]float64, key string, amount float64) {
	buckets[strings.ToLower(key)] += amount
}

func resolveCurrency(product *domain.Product) string {
	if product.Currency == "" {
		return DefaultCurrency
	}
	return product.Currency
}
