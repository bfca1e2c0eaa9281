package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T, name string) *DB {
	t.Helper()

	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), name+".db"),
		Profile: ProfileStandard,
		Name:    name,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func TestHealthCheck(t *testing.T) {
	db := setupDB(t, "universe")

	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestHealthCheck_ClosedConnection(t *testing.T) {
	db := setupDB(t, "universe")
	require.NoError(t, db.Close())

	assert.Error(t, db.HealthCheck(context.Background()))
}

func TestWALCheckpoint(t *testing.T) {
	db := setupDB(t, "client_data")

	_, err := db.Exec(
		"INSERT INTO asset_records (ticker, data, expires_at, updated_at) VALUES (?, ?, ?, ?)",
		"AAPL", "{}", 0, 0)
	require.NoError(t, err)

	assert.NoError(t, db.WALCheckpoint(""))
	assert.NoError(t, db.WALCheckpoint("FULL"))
}
