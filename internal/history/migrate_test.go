package history

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_NoneBackend(t *testing.T) {
	err := Migrate(&bytes.Buffer{}, schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestMigrate_SQLite(t *testing.T) {
	// Create a temporary database file for testing
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	var out bytes.Buffer

	// Run migration to latest version
	require.NoError(t, Migrate(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "to version 2")

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	out.Reset()
	require.NoError(t, Migrate(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "No migration needed")

	// Step down to version 1, roll back fully, then migrate back up
	assert.NoError(t, Migrate(&out, schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, Migrate(&out, schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, Migrate(&out, schema.SQLiteBackend, dbPath, 2))
}

func TestMigrate_ThenStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, Migrate(&bytes.Buffer{}, schema.SQLiteBackend, dbPath, -1))

	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.BeginRun(schema.RunInfo{Kind: schema.StackChartKind})
	assert.NoError(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		entries, err := migrationsFS.ReadDir("migrations/" + string(backend))
		require.NoError(t, err, backend)
		assert.Len(t, entries, 4, backend)
	}
}
