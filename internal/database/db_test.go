package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-editor/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{DBUser: "editor", DBPass: "p@ss", DBHost: "db", DBPort: "3306", DBName: "cinema"})

	mc, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "editor", mc.User)
	assert.Equal(t, "p@ss", mc.Passwd)
	assert.Equal(t, "db:3306", mc.Addr)
	assert.Equal(t, "cinema", mc.DBName)
	assert.True(t, mc.ParseTime)
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestStatements(t *testing.T) {
	stmts := Statements()
	require.Len(t, stmts, 6)
	for _, s := range stmts {
		assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS")
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, s := range Statements() {
		mock.ExpectExec(regexp.QuoteMeta(s)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
