package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSQLite(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "test.db")

	conn, err := Init(dsn)
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.NoError(t, sqlDB.Ping())
}

func TestInitRejectsUnknownScheme(t *testing.T) {
	_, err := Init("mysql://root@localhost/db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid DATABASE_URL")
}
