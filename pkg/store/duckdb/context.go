package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction stores a transaction in the context so store writes issued
// deeper in the call chain run inside it.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the context transaction, or nil when none is set.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
