package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ProductsTableSchema = `
	CREATE TABLE IF NOT EXISTS products (
		id VARCHAR NOT NULL PRIMARY KEY,
		name VARCHAR NOT NULL,
		currency VARCHAR,
		tco DOUBLE,
		tco_currency VARCHAR,
		tco_last_calculated TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const CostsTableSchema = `
	CREATE TABLE IF NOT EXISTS costs (
		id VARCHAR NOT NULL PRIMARY KEY,
		product_id VARCHAR NOT NULL,
		name VARCHAR,
		scope VARCHAR,
		category VARCHAR,
		cost_type VARCHAR,
		recurrence VARCHAR,
		amount DOUBLE NOT NULL,
		currency VARCHAR,
		description VARCHAR,
		amortization_months INTEGER,
		external_ref VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	ProductsTableSchema,
	CostsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
