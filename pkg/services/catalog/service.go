package catalog

import (
	"context"
	"fmt"

	"github.com/fin-tools/tco-atlas/pkg/adapters"
	"github.com/fin-tools/tco-atlas/pkg/models/domain"
	"github.com/fin-tools/tco-atlas/pkg/models/store"
	coststore "github.com/fin-tools/tco-atlas/pkg/store/duckdb/cost"
	productstore "github.com/fin-tools/tco-atlas/pkg/store/duckdb/product"
	"github.com/google/uuid"
)

// Service is the domain-level view over the product and cost stores. It
// implements the read/write interfaces the TCO engine depends on, plus the
// CRUD operations the HTTP layer exposes.
type Service struct {
	costs    coststore.Store
	products productstore.Store
}

func NewService(costs coststore.Store, products productstore.Store) *Service {
	return &Service{
		costs:    costs,
		products: products,
	}
}

func (s *Service) CreateProduct(ctx context.Context, name, currency string) (*domain.Product, error) {
	product := domain.Product{
		ID:       uuid.NewString(),
		Name:     name,
		Currency: currency,
	}
	record := adapters.MapDomainProductToStore(product)
	if err := s.products.Create(ctx, &record); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	records, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, adapters.MapStoreProductToDomain(record))
	}
	return products, nil
}

// GetProduct returns (nil, nil) when the product does not exist.
func (s *Service) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	record, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	product := adapters.MapStoreProductToDomain(*record)
	return &product, nil
}

func (s *Service) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	record := adapters.MapDomainProductToStore(*product)
	saved, err := s.products.Save(ctx, &record)
	if err != nil {
		return nil, err
	}
	updated := adapters.MapStoreProductToDomain(*saved)
	return &updated, nil
}

func (s *Service) AddCost(ctx context.Context, cost domain.Cost) (*domain.Cost, error) {
	if cost.ID == "" {
		cost.ID = uuid.NewString()
	}
	record := adapters.MapDomainCostToStore(cost)
	if err := s.costs.Add(ctx, []store.CostRecord{record}); err != nil {
		return nil, fmt.Errorf("add cost: %w", err)
	}
	return &cost, nil
}

func (s *Service) GetProductCosts(ctx context.Context, productID string) ([]domain.Cost, error) {
	records, err := s.costs.GetProductCosts(ctx, productID)
	if err != nil {
		return nil, err
	}
	return mapCostRecords(records), nil
}

func mapCostRecords(records []store.CostRecord) []domain.Cost {
	costs := make([]domain.Cost, 0, len(records))
	for _, record := range records {
		costs = append(costs, adapters.MapStoreCostToDomain(record))
	}
	return costs
}

func (s *Service) GetProductScopeCosts(
	ctx context.Context,
	productID, scope string,
) ([]domain.Cost, error) {
	records, err := s.costs.GetProductScopeCosts(ctx, productID, scope)
	if err != nil {
		return nil, err
	}
	return mapCostRecords(records), nil
}
