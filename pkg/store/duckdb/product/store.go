package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fin-tools/tco-atlas/pkg/models/store"
)

// Store persists product rows and their cached TCO snapshot columns. Get
// reports a missing product as (nil, nil); callers decide whether that is an
// error.
type Store interface {
	Create(ctx context.Context, record *store.ProductRecord) error
	Get(ctx context.Context, productID string) (*store.ProductRecord, error)
	List(ctx context.Context) ([]store.ProductRecord, error)
	Save(ctx context.Context, record *store.ProductRecord) (*store.ProductRecord, error)
}

type productStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &productStore{db: db}, nil
}

func (s *productStore) Create(ctx context.Context, record *store.ProductRecord) error {
	query := `
		INSERT INTO products (id, name, currency)
		VALUES (?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, record.ID, record.Name, record.Currency)
	if err != nil {
		return fmt.Errorf("insert product %q: %w", record.ID, err)
	}
	return nil
}

func (s *productStore) Get(ctx context.Context, productID string) (*store.ProductRecord, error) {
	query := `
		SELECT id, name, currency, tco, tco_currency, tco_last_calculated, created_at
		FROM products
		WHERE id = ?`

	record, err := scanProductRow(s.db.QueryRowContext(ctx, query, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product %q: %w", productID, err)
	}
	return record, nil
}

func (s *productStore) List(ctx context.Context) ([]store.ProductRecord, error) {
	query := `
		SELECT id, name, currency, tco, tco_currency, tco_last_calculated, created_at
		FROM products
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	records := make([]store.ProductRecord, 0)
	for rows.Next() {
		record, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (s *productStore) Save(ctx context.Context, record *store.ProductRecord) (*store.ProductRecord, error) {
	query := `
		UPDATE products
		SET name = ?, currency = ?, tco = ?, tco_currency = ?, tco_last_calculated = ?
		WHERE id = ?`

	var tco sql.NullFloat64
	if record.TCO != nil {
		tco = sql.NullFloat64{Float64: *record.TCO, Valid: true}
	}
	var calculatedAt sql.NullTime
	if record.TCOLastCalculated != nil {
		calculatedAt = sql.NullTime{Time: *record.TCOLastCalculated, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		record.Name,
		record.Currency,
		tco,
		record.TCOCurrency,
		calculatedAt,
		record.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update product %q: %w", record.ID, err)
	}

	return s.Get(ctx, record.ID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProductRow(row rowScanner) (*store.ProductRecord, error) {
	var (
		record       store.ProductRecord
		currency     sql.NullString
		tco          sql.NullFloat64
		tcoCurrency  sql.NullString
		calculatedAt sql.NullTime
		createdAt    time.Time
	)
	if err := row.Scan(
		&record.ID,
		&record.Name,
		&currency,
		&tco,
		&tcoCurrency,
		&calculatedAt,
		&createdAt,
	); err != nil {
		return nil, err
	}

	record.Currency = currency.String
	record.TCOCurrency = tcoCurrency.String
	record.CreatedAt = createdAt
	if tco.Valid {
		value := tco.Float64
		record.TCO = &value
	}
	if calculatedAt.Valid {
		t := calculatedAt.Time
		record.TCOLastCalculated = &t
	}
	return &record, nil
}
