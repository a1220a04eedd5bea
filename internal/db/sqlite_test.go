package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	var tables []string
	err = database.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)

	assert.Contains(t, tables, "accounts")
	assert.Contains(t, tables, "current_session")
	assert.Contains(t, tables, "files")
	assert.Contains(t, tables, "analysis_results")
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}
