package envdb

import (
	"context"

	"github.com/jmoiron/sqlx"

	"myceliumweb.org/lichen/envdb/internal/dbutil"
	"myceliumweb.org/lichen/envdb/internal/migrations"
)

func OpenDB(p string) (*sqlx.DB, error) {
	return dbutil.Open(p)
}

func SetupDB(ctx context.Context, db *sqlx.DB) error {
	return migrations.Migrate(ctx, db, currentSchema)
}

var currentSchema = func() *migrations.State {
	x := migrations.InitialState()
	x = x.ApplyStmt(`CREATE TABLE decls (
		fid BLOB NOT NULL,
		path TEXT NOT NULL,
		name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		arity INTEGER NOT NULL DEFAULT 0,
		parent TEXT NOT NULL DEFAULT '',

		PRIMARY KEY(fid),
		UNIQUE(path, name)
	) WITHOUT ROWID, STRICT;`)
	x = x.ApplyStmt(`CREATE TABLE aliases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		from_path TEXT NOT NULL,
		to_path TEXT NOT NULL
	);`)
	return x
}()
