package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fin-tools/tco-atlas/pkg/adapters"
	"github.com/fin-tools/tco-atlas/pkg/models/api"
	"github.com/fin-tools/tco-atlas/pkg/models/domain"
	"github.com/fin-tools/tco-atlas/pkg/services/tco"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Catalog is the product/cost CRUD surface the handler needs.
type Catalog interface {
	CreateProduct(ctx context.Context, name, currency string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	AddCost(ctx context.Context, cost domain.Cost) (*domain.Cost, error)
	GetProductCosts(ctx context.Context, productID string) ([]domain.Cost, error)
}

// TCOCalculator is the reporting surface of the TCO engine.
type TCOCalculator interface {
	CalculateTCO(ctx context.Context, productID string, timePeriodMonths int) (*domain.TCOReport, error)
	CalculateScopeTCO(ctx context.Context, productID, scope string, timePeriodMonths int) (*domain.ScopeReport, error)
}

// TCOUpdater persists a TCO snapshot onto the product.
type TCOUpdater interface {
	Refresh(ctx context.Context, productID string, timePeriodMonths int) (*domain.Product, error)
}

type Handler struct {
	catalog    Catalog
	calculator TCOCalculator
	updater    TCOUpdater
}

func NewHandler(catalog Catalog, calculator TCOCalculator, updater TCOUpdater) *Handler {
	return &Handler{
		catalog:    catalog,
		calculator: calculator,
		updater:    updater,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list products")
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}

	response := make([]api.Product, 0, len(products))
	for _, p := range products {
		response = append(response, adapters.MapProductDomainToApi(p))
	}
	writeJSON(w, logger, response)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "product name is required", http.StatusBadRequest)
		return
	}

	product, err := h.catalog.CreateProduct(ctx, req.Name, req.Currency)
	if err != nil {
		logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}

	writeJSONStatus(w, logger, http.StatusCreated, adapters.MapProductDomainToApi(*product))
}

func (h *Handler) ListCosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	productID := chi.URLParam(r, "product")

	costs, err := h.catalog.GetProductCosts(ctx, productID)
	if err != nil {
		logger.Error().Err(err).Str("product", productID).Msg("failed to list costs")
		http.Error(w, "failed to list costs", http.StatusInternalServerError)
		return
	}

	response := make([]api.Cost, 0, len(costs))
	for _, c := range costs {
		response = append(response, adapters.MapCostDomainToApi(c))
	}
	writeJSON(w, logger, response)
}

func (h *Handler) AddCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	productID := chi.URLParam(r, "product")

	var req api.CreateCost
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount < 0 {
		http.Error(w, "amount must be non-negative", http.StatusBadRequest)
		return
	}

	product, err := h.catalog.GetProduct(ctx, productID)
	if err != nil {
		logger.Error().Err(err).Str("product", productID).Msg("failed to resolve product")
		http.Error(w, "failed to resolve product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	cost, err := h.catalog.AddCost(ctx, adapters.MapCreateCostApiToDomain(productID, req))
	if err != nil {
		logger.Error().Err(err).Str("product", productID).Msg("failed to add cost")
		http.Error(w, "failed to add cost", http.StatusInternalServerError)
		return
	}

	writeJSONStatus(w, logger, http.StatusCreated, adapters.MapCostDomainToApi(*cost))
}

func (h *Handler) GetTCOReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	productID := chi.URLParam(r, "product")

	months, err := parseMonthsParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.calculator.CalculateTCO(ctx, productID, months)
	if err != nil {
		respondTCOError(w, logger, err, productID, "failed to calculate tco")
		return
	}

	writeJSON(w, logger, adapters.MapTCOReportDomainToApi(*report))
}

func (h *Handler) GetScopeReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	productID := chi.URLParam(r, "product")
	scope := chi.URLParam(r, "scope")

	months, err := parseMonthsParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.calculator.CalculateScopeTCO(ctx, productID, scope, months)
	if err != nil {
		respondTCOError(w, logger, err, productID, "failed to calculate scope tco")
		return
	}

	writeJSON(w, logger, adapters.MapScopeReportDomainToApi(*report))
}

func (h *Handler) RefreshTCO(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	productID := chi.URLParam(r, "product")

	months, err := parseMonthsParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.updater.Refresh(ctx, productID, months)
	if err != nil {
		respondTCOError(w, logger, err, productID, "failed to refresh tco")
		return
	}

	writeJSON(w, logger, adapters.MapProductDomainToApi(*product))
}

// parseMonthsParam reads the optional "months" query parameter. 0 means
// unset; the engine applies its default window.
func parseMonthsParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("months")
	if raw == "" {
		return 0, nil
	}
	months, err := strconv.Atoi(raw)
	if err != nil || months <= 0 {
		return 0, errors.New("invalid 'months' parameter. Expected a positive integer")
	}
	return months, nil
}

func respondTCOError(w http.ResponseWriter, logger *zerolog.Logger, err error, productID, msg string) {
	if errors.Is(err, tco.ErrProductNotFound) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	logger.Error().Err(err).Str("product", productID).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	writeJSONStatus(w, logger, http.StatusOK, payload)
}

func writeJSONStatus(w http.ResponseWriter, logger *zerolog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
