// Package dbutil has helpers for sqlite databases accessed through
// sqlx.
package dbutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Open opens the sqlite database at p, creating it if it does not
// exist.
func Open(p string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	// sqlite supports one writer at a time
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewTestDB returns an in-memory database scoped to the test.
func NewTestDB(t testing.TB) *sqlx.DB {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// Reader is the read half shared by DBs and Txs.
type Reader interface {
	Get(dst interface{}, query string, args ...interface{}) error
	Select(dst interface{}, query string, args ...interface{}) error
}

// DoTx runs fn in a transaction, committing if it returns nil.
func DoTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// DoTx1 is DoTx for fns returning a value.
func DoTx1[T any](ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) (T, error)) (T, error) {
	var ret T
	err := DoTx(ctx, db, func(tx *sqlx.Tx) error {
		var err error
		ret, err = fn(tx)
		return err
	})
	return ret, err
}
