package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB and *sql.Tx the storage layer needs, so a
// store can run against either a plain connection or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
