package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchemaAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "allbox.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&n)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// running migrations again must not fail
	require.NoError(t, RunMigrations(ctx, db))
}
