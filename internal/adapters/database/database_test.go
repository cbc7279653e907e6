package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "daftar.db")

	db, err := Open(ctx, Options{Driver: DriverSQLite, Path: path})
	require.NoError(t, err)
	defer db.Close()

	v, err := SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	for _, table := range []string{"tasks", "cigarettes", "categories", "settings", "rewards"} {
		var n int
		err := db.Get(&n, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "table %s", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "daftar.db")

	db, err := Open(ctx, Options{Driver: DriverSQLite, Path: path})
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))
	db.Close()

	db, err = Open(ctx, Options{Driver: DriverSQLite, Path: path})
	require.NoError(t, err)
	defer db.Close()

	var rows int
	require.NoError(t, db.Get(&rows, "SELECT COUNT(*) FROM schema_version"))
	assert.Equal(t, len(migrations), rows)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t,
		"postgres://u:p@localhost:5432/daftar?sslmode=disable",
		PostgresDSN("u", "p", "localhost", "5432", "daftar"))
}
