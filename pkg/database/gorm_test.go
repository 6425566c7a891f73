package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGormDB_SQLiteMigrates(t *testing.T) {
	db, err := NewGormDB(GormConfig{Driver: DriverSQLite})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"users", "games", "roster_players"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestNewGormDB_RejectsUnknownDriver(t *testing.T) {
	_, err := NewGormDB(GormConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}

func TestNewGormDB_PostgresNeedsDSN(t *testing.T) {
	_, err := NewGormDB(GormConfig{Driver: DriverPostgres})
	assert.Error(t, err)
}
