// Package envdb persists environments: the registered declarations
// and the alias table, keyed by declaration fingerprint.
//
// An environment is rebuilt from the database at session start; the
// registry itself stays in memory and late bound.
package envdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"myceliumweb.org/lichen/envdb/internal/dbutil"
	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/internal/ident"
)

type DB struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *DB {
	return &DB{db: db}
}

type declRow struct {
	FID    ident.ID `db:"fid"`
	Path   string   `db:"path"`
	Name   string   `db:"name"`
	Kind   uint8    `db:"kind"`
	Arity  int      `db:"arity"`
	Parent string   `db:"parent"`
}

func (r declRow) decl() globals.Decl {
	return globals.Decl{
		Path:   globals.ParsePath(r.Path),
		Name:   r.Name,
		Kind:   globals.Kind(r.Kind),
		Arity:  r.Arity,
		Parent: r.Parent,
	}
}

const declCols = `fid, path, name, kind, arity, parent`

// SaveEnv writes env's declarations and aliases.
// Declarations accumulate across saves; the alias table is replaced.
func (s *DB) SaveEnv(ctx context.Context, env *globals.Env) error {
	decls := env.All()
	aliases := env.Aliases()
	return dbutil.DoTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, d := range decls {
			if err := putDecl(tx, d); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(`DELETE FROM aliases`); err != nil {
			return err
		}
		for _, a := range aliases {
			if _, err := tx.Exec(`INSERT INTO aliases (from_path, to_path) VALUES (?, ?)`,
				a.From.String(), a.To.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func putDecl(tx *sqlx.Tx, d globals.Decl) error {
	_, err := tx.Exec(`INSERT INTO decls (`+declCols+`)
		VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(fid) DO NOTHING`,
		d.Fingerprint(), d.Path.String(), d.Name, uint8(d.Kind), d.Arity, d.Parent)
	return err
}

// LoadEnv builds a fresh Env from the database.
func (s *DB) LoadEnv(ctx context.Context) (*globals.Env, error) {
	env := globals.NewEnv()
	if err := dbutil.DoTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var rows []declRow
		if err := tx.Select(&rows, `SELECT `+declCols+` FROM decls ORDER BY path, name`); err != nil {
			return err
		}
		for _, r := range rows {
			ref, err := env.Register(r.decl())
			if err != nil {
				return err
			}
			if !ref.FID().Equals(r.FID) {
				return fmt.Errorf("fingerprint mismatch for %s.%s HAVE: %v WANT: %v", r.Path, r.Name, r.FID, ref.FID())
			}
		}
		var aRows []struct {
			From string `db:"from_path"`
			To   string `db:"to_path"`
		}
		if err := tx.Select(&aRows, `SELECT from_path, to_path FROM aliases ORDER BY id`); err != nil {
			return err
		}
		for _, a := range aRows {
			env.AddAlias(globals.ParsePath(a.From), globals.ParsePath(a.To))
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return env, nil
}

// GetDecl returns the declaration with fingerprint fid.
func (s *DB) GetDecl(ctx context.Context, fid ident.ID) (globals.Decl, error) {
	return dbutil.DoTx1(ctx, s.db, func(tx *sqlx.Tx) (globals.Decl, error) {
		return getDecl(tx, fid)
	})
}

func getDecl(tx dbutil.Reader, fid ident.ID) (globals.Decl, error) {
	var r declRow
	if err := tx.Get(&r, `SELECT `+declCols+` FROM decls WHERE fid = ?`, fid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return globals.Decl{}, ErrDeclNotFound{FID: fid}
		}
		return globals.Decl{}, err
	}
	return r.decl(), nil
}

// ListDecls returns up to limit declarations with fingerprints in
// span, ordered by fingerprint.
func (s *DB) ListDecls(ctx context.Context, span ident.Span, limit int) ([]globals.Decl, error) {
	begin := ident.BeginFromSpan(span)
	return dbutil.DoTx1(ctx, s.db, func(tx *sqlx.Tx) ([]globals.Decl, error) {
		var rows []declRow
		if err := tx.Select(&rows, `SELECT `+declCols+` FROM decls
			WHERE fid >= ? ORDER BY fid LIMIT ?`, begin, limit); err != nil {
			return nil, err
		}
		var ret []globals.Decl
		for _, r := range rows {
			if !ident.ContainsID(span, r.FID) {
				break
			}
			ret = append(ret, r.decl())
		}
		return ret, nil
	})
}

// CountDecls returns the number of stored declarations.
func (s *DB) CountDecls(ctx context.Context) (int, error) {
	return dbutil.DoTx1(ctx, s.db, func(tx *sqlx.Tx) (int, error) {
		var n int
		err := tx.Get(&n, `SELECT COUNT(*) FROM decls`)
		return n, err
	})
}

// ErrDeclNotFound is returned for fingerprints with no stored
// declaration.
type ErrDeclNotFound struct {
	FID ident.ID
}

func (e ErrDeclNotFound) Error() string {
	return fmt.Sprintf("no declaration found for %v", e.FID)
}
