package envdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"myceliumweb.org/lichen/envdb/internal/dbutil"
	"myceliumweb.org/lichen/internal/testutil"
)

// NewTestDB returns a migrated in-memory DB scoped to the test.
func NewTestDB(t testing.TB) *DB {
	ctx := testutil.Context(t)
	db := dbutil.NewTestDB(t)
	require.NoError(t, SetupDB(ctx, db))
	return New(db)
}
