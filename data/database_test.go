package data

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSNMySQL(t *testing.T) {
	dsn, err := buildDSN(DriverMySQL, "betty:secret@tcp(db:3306)/betty")
	require.NoError(t, err)
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ClientFoundRows)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "utf8mb4", cfg.Params["charset"])
	assert.Equal(t, "betty", cfg.DBName)
	assert.Equal(t, "db:3306", cfg.Addr)
}

func TestBuildDSNMySQLInvalid(t *testing.T) {
	_, err := buildDSN(DriverMySQL, "no-slash-here")
	assert.Error(t, err)
}

func TestBuildDSNSQLite(t *testing.T) {
	dsn, err := buildDSN(DriverSQLite, "main.db")
	require.NoError(t, err)
	assert.Equal(t, "main.db?_foreign_keys=on&_loc=auto", dsn)

	dsn, err = buildDSN(DriverSQLite, "file:main.db?cache=shared")
	require.NoError(t, err)
	assert.Equal(t, "file:main.db?cache=shared&_foreign_keys=on&_loc=auto", dsn)
}

func TestBuildDSNUnknownDriver(t *testing.T) {
	_, err := buildDSN("postgres", "host=db")
	assert.Error(t, err)
}
