package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// queryer is the subset of sqlx satisfied by both *sqlx.DB and *sqlx.Tx,
// so repository helpers can run standalone or inside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var (
	_ queryer = (*sqlx.DB)(nil)
	_ queryer = (*sqlx.Tx)(nil)
)
