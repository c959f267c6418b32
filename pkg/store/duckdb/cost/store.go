package cost

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fin-tools/tco-atlas/pkg/models/store"
	"github.com/fin-tools/tco-atlas/pkg/store/duckdb"
)

// Store supports ingestion (Add) and the two read paths the TCO engine
// consumes: all costs of a product, and the costs of one scope. Scope values
// are matched case-insensitively.
type Store interface {
	Add(ctx context.Context, records []store.CostRecord) error
	GetProductCosts(ctx context.Context, productID string) ([]store.CostRecord, error)
	GetProductScopeCosts(ctx context.Context, productID, scope string) ([]store.CostRecord, error)
	// ListExternalRefs returns the non-empty external references already
	// recorded for a product, used by import pipelines to dedupe.
	ListExternalRefs(ctx context.Context, productID string) (map[string]struct{}, error)
}

type costStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &costStore{db: db}, nil
}

const selectColumns = `id, product_id, name, scope, category, cost_type, recurrence,
		amount, currency, description, amortization_months, external_ref, created_at`

func (s *costStore) Add(ctx context.Context, records []store.CostRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO costs (
			id, product_id, name, scope, category, cost_type, recurrence,
			amount, currency, description, amortization_months, external_ref
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}

	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		var amort sql.NullInt32
		if record.AmortizationMonths != nil {
			amort = sql.NullInt32{Int32: int32(*record.AmortizationMonths), Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			record.ID,
			record.ProductID,
			record.Name,
			record.Scope,
			record.Category,
			record.CostType,
			record.Recurrence,
			record.Amount,
			record.Currency,
			record.Description,
			amort,
			record.ExternalRef,
		)

		if err != nil {
			return fmt.Errorf("insert cost %q: %w", record.ID, err)
		}
	}

	return nil
}

func (s *costStore) GetProductCosts(ctx context.Context, productID string) ([]store.CostRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM costs
		WHERE product_id = ?
		ORDER BY created_at, id
	`, selectColumns)

	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("query product costs: %w", err)
	}
	defer rows.Close()
	return scanCostRows(rows)
}

func (s *costStore) GetProductScopeCosts(
	ctx context.Context,
	productID, scope string,
) ([]store.CostRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM costs
		WHERE product_id = ? AND LOWER(scope) = LOWER(?)
		ORDER BY created_at, id
	`, selectColumns)

	rows, err := s.db.QueryContext(ctx, query, productID, scope)
	if err != nil {
		return nil, fmt.Errorf("query product scope costs: %w", err)
	}
	defer rows.Close()
	return scanCostRows(rows)
}

func (s *costStore) ListExternalRefs(ctx context.Context, productID string) (map[string]struct{}, error) {
	query := `
		SELECT external_ref
		FROM costs
		WHERE product_id = ? AND external_ref IS NOT NULL AND external_ref != ''
	`
	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("query external refs: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]struct{})
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs[ref] = struct{}{}
	}
	return refs, rows.Err()
}

func scanCostRows(rows *sql.Rows) ([]store.CostRecord, error) {
	records := make([]store.CostRecord, 0)
	for rows.Next() {
		var (
			record      store.CostRecord
			name        sql.NullString
			scope       sql.NullString
			category    sql.NullString
			costType    sql.NullString
			recurrence  sql.NullString
			currency    sql.NullString
			description sql.NullString
			amort       sql.NullInt32
			externalRef sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(
			&record.ID,
			&record.ProductID,
			&name,
			&scope,
			&category,
			&costType,
			&recurrence,
			&record.Amount,
			&currency,
			&description,
			&amort,
			&externalRef,
			&createdAt,
		); err != nil {
			return nil, err
		}

		record.Name = name.String
		record.Scope = scope.String
		record.Category = category.String
		record.CostType = costType.String
		record.Recurrence = recurrence.String
		record.Currency = currency.String
		record.Description = description.String
		record.ExternalRef = externalRef.String
		record.CreatedAt = createdAt
		if amort.Valid {
			months := int(amort.Int32)
			record.AmortizationMonths = &months
		}

		records = append(records, record)
	}
	return records, rows.Err()
}
