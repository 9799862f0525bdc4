package database

import (
	"context"
	"database/sql"
)

// WithinTx runs fn inside a single database transaction.  The
// transaction commits when fn returns nil and rolls back otherwise.
// The error returned by fn is passed through unchanged so callers can
// keep matching on their own sentinel errors; a rollback failure never
// masks it.  Commit errors are returned as-is.
func WithinTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
