// Package migrations manages the database schema.
package migrations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"myceliumweb.org/lichen/envdb/internal/dbutil"
)

// State is a schema, expressed as the sequence of statements that
// builds it from nothing.
type State struct {
	prev *State
	stmt string
	n    int
}

// InitialState is the empty schema.
func InitialState() *State {
	return &State{}
}

// ApplyStmt returns the State after applying stmt.
func (s *State) ApplyStmt(stmt string) *State {
	return &State{prev: s, stmt: stmt, n: s.n + 1}
}

func (s *State) stmts() []string {
	if s.n == 0 {
		return nil
	}
	return append(s.prev.stmts(), s.stmt)
}

// Migrate brings db up to x.
// Statements a previous call already applied are skipped.
func Migrate(ctx context.Context, db *sqlx.DB, x *State) error {
	stmts := x.stmts()
	return dbutil.DoTx(ctx, db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			stmt TEXT NOT NULL
		)`); err != nil {
			return err
		}
		var applied int
		if err := tx.Get(&applied, `SELECT COUNT(*) FROM migrations`); err != nil {
			return err
		}
		if applied > len(stmts) {
			return fmt.Errorf("database is ahead of the schema HAVE: %d WANT: <= %d", applied, len(stmts))
		}
		for i := applied; i < len(stmts); i++ {
			if _, err := tx.Exec(stmts[i]); err != nil {
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
			if _, err := tx.Exec(`INSERT INTO migrations (id, stmt) VALUES (?, ?)`, i+1, stmts[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
