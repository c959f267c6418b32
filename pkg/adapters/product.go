package adapters

import (
	"github.com/fin-tools/tco-atlas/pkg/models/api"
	"github.com/fin-tools/tco-atlas/pkg/models/domain"
	"github.com/fin-tools/tco-atlas/pkg/models/store"
)

func MapStoreProductToDomain(record store.ProductRecord) domain.Product {
	return domain.Product{
		ID:                record.ID,
		Name:              record.Name,
		Currency:          record.Currency,
		TCO:               copyFloatPtr(record.TCO),
		TCOCurrency:       record.TCOCurrency,
		TCOLastCalculated: copyTimePtr(record.TCOLastCalculated),
	}
}

func MapDomainProductToStore(product domain.Product) store.ProductRecord {
	return store.ProductRecord{
		ID:                product.ID,
		Name:              product.Name,
		Currency:          product.Currency,
		TCO:               copyFloatPtr(product.TCO),
		TCOCurrency:       product.TCOCurrency,
		TCOLastCalculated: copyTimePtr(product.TCOLastCalculated),
	}
}

func MapProductDomainToApi(product domain.Product) api.Product {
	return api.Product{
		ID:                product.ID,
		Name:              product.Name,
		Currency:          product.Currency,
		TCO:               copyFloatPtr(product.TCO),
		TCOCurrency:       product.TCOCurrency,
		TCOLastCalculated: copyTimePtr(product.TCOLastCalculated),
	}
}
