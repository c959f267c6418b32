package product

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fin-tools/tco-atlas/pkg/models/api"
	"github.com/fin-tools/tco-atlas/pkg/models/domain"
	"github.com/fin-tools/tco-atlas/pkg/services/tco"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) CreateProduct(ctx context.Context, name, currency string) (*domain.Product, error) {
	args := m.Called(ctx, name, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockCatalog) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalog) AddCost(ctx context.Context, cost domain.Cost) (*domain.Cost, error) {
	args := m.Called(ctx, cost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cost), args.Error(1)
}

func (m *mockCatalog) GetProductCosts(ctx context.Context, productID string) ([]domain.Cost, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cost), args.Error(1)
}

type mockCalculator struct {
	mock.Mock
}

func (m *mockCalculator) CalculateTCO(ctx context.Context, productID string, timePeriodMonths int) (*domain.TCOReport, error) {
	args := m.Called(ctx, productID, timePeriodMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TCOReport), args.Error(1)
}

func (m *mockCalculator) CalculateScopeTCO(ctx context.Context, productID, scope string, timePeriodMonths int) (*domain.ScopeReport, error) {
	args := m.Called(ctx, productID, scope, timePeriodMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScopeReport), args.Error(1)
}

type mockUpdater struct {
	mock.Mock
}

func (m *mockUpdater) Refresh(ctx context.Context, productID string, timePeriodMonths int) (*domain.Product, error) {
	args := m.Called(ctx, productID, timePeriodMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type handlerFixture struct {
	catalog    *mockCatalog
	calculator *mockCalculator
	updater    *mockUpdater
	handler    *Handler
}

func setupHandler(t *testing.T) *handlerFixture {
	f := &handlerFixture{
		catalog:    &mockCatalog{},
		calculator: &mockCalculator{},
		updater:    &mockUpdater{},
	}
	f.handler = NewHandler(f.catalog, f.calculator, f.updater)

	t.Cleanup(func() {
		f.catalog.AssertExpectations(t)
		f.calculator.AssertExpectations(t)
		f.updater.AssertExpectations(t)
	})
	return f
}

func newRequest(t *testing.T, method, target string, body any, params map[string]string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHandler_ListProducts(t *testing.T) {
	f := setupHandler(t)

	f.catalog.On("ListProducts", mock.Anything).Return([]domain.Product{
		{ID: "p1", Name: "Billing API", Currency: "USD"},
		{ID: "p2", Name: "Search", Currency: "EUR"},
	}, nil)

	rec := httptest.NewRecorder()
	f.handler.ListProducts(rec, newRequest(t, http.MethodGet, "/api/v1/products", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	products := decodeBody[[]api.Product](t, rec)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "Search", products[1].Name)
}

func TestHandler_CreateProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupHandler(t)

		f.catalog.On("CreateProduct", mock.Anything, "Billing API", "USD").
			Return(&domain.Product{ID: "p1", Name: "Billing API", Currency: "USD"}, nil)

		rec := httptest.NewRecorder()
		f.handler.CreateProduct(rec, newRequest(t, http.MethodPost, "/api/v1/products",
			api.CreateProduct{Name: "Billing API", Currency: "USD"}, nil))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		product := decodeBody[api.Product](t, rec)
		assert.Equal(t, "p1", product.ID)
	})

	t.Run("missing name", func(t *testing.T) {
		f := setupHandler(t)

		rec := httptest.NewRecorder()
		f.handler.CreateProduct(rec, newRequest(t, http.MethodPost, "/api/v1/products",
			api.CreateProduct{Currency: "USD"}, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.catalog.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandler_AddCost(t *testing.T) {
	params := map[string]string{"product": "p1"}

	t.Run("success", func(t *testing.T) {
		f := setupHandler(t)

		f.catalog.On("GetProduct", mock.Anything, "p1").
			Return(&domain.Product{ID: "p1"}, nil)
		f.catalog.On("AddCost", mock.Anything, mock.MatchedBy(func(c domain.Cost) bool {
			return c.ProductID == "p1" && c.Amount == 100
		})).Return(&domain.Cost{ID: "c1", ProductID: "p1", Amount: 100}, nil)

		rec := httptest.NewRecorder()
		f.handler.AddCost(rec, newRequest(t, http.MethodPost, "/api/v1/products/p1/costs",
			api.CreateCost{Name: "hosting", Scope: "shared", Category: "run", CostType: "infra", Recurrence: "monthly", Amount: 100}, params))

		require.Equal(t, http.StatusCreated, rec.Code)
		cost := decodeBody[api.Cost](t, rec)
		assert.Equal(t, "c1", cost.ID)
	})

	t.Run("negative amount", func(t *testing.T) {
		f := setupHandler(t)

		rec := httptest.NewRecorder()
		f.handler.AddCost(rec, newRequest(t, http.MethodPost, "/api/v1/products/p1/costs",
			api.CreateCost{Amount: -5}, params))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := setupHandler(t)

		f.catalog.On("GetProduct", mock.Anything, "p1").Return(nil, nil)

		rec := httptest.NewRecorder()
		f.handler.AddCost(rec, newRequest(t, http.MethodPost, "/api/v1/products/p1/costs",
			api.CreateCost{Amount: 100}, params))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		f.catalog.AssertNotCalled(t, "AddCost", mock.Anything, mock.Anything)
	})
}

func TestHandler_GetTCOReport(t *testing.T) {
	params := map[string]string{"product": "p1"}

	t.Run("success", func(t *testing.T) {
		f := setupHandler(t)

		f.calculator.On("CalculateTCO", mock.Anything, "p1", 0).
			Return(&domain.TCOReport{
				ProductID:        "p1",
				TotalTCO:         7200,
				Currency:         "USD",
				TimePeriodMonths: 12,
				BreakdownByCategory: map[string]float64{
					"build": 6000, "run": 1200, "maintain": 0, "scale": 0, "overhead": 0,
				},
				BreakdownByScope:    map[string]float64{"product": 6000, "shared": 1200, "task": 0, "capability": 0},
				BreakdownByCostType: map[string]float64{},
			}, nil)

		rec := httptest.NewRecorder()
		f.handler.GetTCOReport(rec, newRequest(t, http.MethodGet, "/api/v1/products/p1/tco", nil, params))

		require.Equal(t, http.StatusOK, rec.Code)
		report := decodeBody[api.TCOReport](t, rec)
		assert.Equal(t, 7200.0, report.TotalTCO)
		assert.Equal(t, 12, report.TimePeriodMonths)
		assert.Equal(t, 6000.0, report.BreakdownByCategory["build"])
	})

	t.Run("months parameter forwarded", func(t *testing.T) {
		f := setupHandler(t)

		f.calculator.On("CalculateTCO", mock.Anything, "p1", 6).
			Return(&domain.TCOReport{ProductID: "p1", TimePeriodMonths: 6}, nil)

		rec := httptest.NewRecorder()
		f.handler.GetTCOReport(rec, newRequest(t, http.MethodGet, "/api/v1/products/p1/tco?months=6", nil, params))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid months parameter", func(t *testing.T) {
		for _, raw := range []string{"0", "-3", "twelve", "1.5"} {
			f := setupHandler(t)

			rec := httptest.NewRecorder()
			f.handler.GetTCOReport(rec, newRequest(t, http.MethodGet, "/api/v1/products/p1/tco?months="+raw, nil, params))

			assert.Equal(t, http.StatusBadRequest, rec.Code, "months=%s", raw)
			f.calculator.AssertNotCalled(t, "CalculateTCO", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		f := setupHandler(t)

		f.calculator.On("CalculateTCO", mock.Anything, "p1", 0).
			Return(nil, tco.ErrProductNotFound)

		rec := httptest.NewRecorder()
		f.handler.GetTCOReport(rec, newRequest(t, http.MethodGet, "/api/v1/products/p1/tco", nil, params))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("calculator failure", func(t *testing.T) {
		f := setupHandler(t)

		f.calculator.On("CalculateTCO", mock.Anything, "p1", 0).
			Return(nil, assert.AnError)

		rec := httptest.NewRecorder()
		f.handler.GetTCOReport(rec, newRequest(t, http.MethodGet, "/api/v1/products/p1/tco", nil, params))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_GetScopeReport(t *testing.T) {
	params := map[string]string{"product": "p1", "scope": "shared"}

	t.Run("success", func(t *testing.T) {
		f := setupHandler(t)

		f.calculator.On("CalculateScopeTCO", mock.Anything, "p1", "shared", 0).
			Return(&domain.ScopeReport{
				ProductID:        "p1",
				Scope:            "shared",
				Total:            1200,
				Currency:         "USD",
				TimePeriodMonths: 12,
			}, nil)

		rec := httptest.NewRecorder()
		f.handler.GetScopeReport(rec, newRequest(t, http.MethodGet, "/api/v1/products/p1/tco/scopes/shared", nil, params))

		require.Equal(t, http.StatusOK, rec.Code)
		report := decodeBody[api.ScopeReport](t, rec)
		assert.Equal(t, "shared", report.Scope)
		assert.Equal(t, 1200.0, report.Total)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := setupHandler(t)

		f.calculator.On("CalculateScopeTCO", mock.Anything, "p1", "shared", 0).
			Return(nil, tco.ErrProductNotFound)

		rec := httptest.NewRecorder()
		f.handler.GetScopeReport(rec, newRequest(t, http.MethodGet, "/api/v1/products/p1/tco/scopes/shared", nil, params))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_RefreshTCO(t *testing.T) {
	params := map[string]string{"product": "p1"}

	t.Run("success", func(t *testing.T) {
		f := setupHandler(t)

		total := 7200.0
		f.updater.On("Refresh", mock.Anything, "p1", 0).
			Return(&domain.Product{ID: "p1", Name: "Billing API", TCO: &total, TCOCurrency: "USD"}, nil)

		rec := httptest.NewRecorder()
		f.handler.RefreshTCO(rec, newRequest(t, http.MethodPost, "/api/v1/products/p1/tco/refresh", nil, params))

		require.Equal(t, http.StatusOK, rec.Code)
		product := decodeBody[api.Product](t, rec)
		require.NotNil(t, product.TCO)
		assert.Equal(t, 7200.0, *product.TCO)
		assert.Equal(t, "USD", product.TCOCurrency)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := setupHandler(t)

		f.updater.On("Refresh", mock.Anything, "p1", 0).
			Return(nil, tco.ErrProductNotFound)

		rec := httptest.NewRecorder()
		f.handler.RefreshTCO(rec, newRequest(t, http.MethodPost, "/api/v1/products/p1/tco/refresh", nil, params))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
