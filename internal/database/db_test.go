package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog-api/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{
		DBUser: "app", DBPass: "s3cret", DBHost: "db", DBPort: "3306", DBName: "movies",
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "s3cret", parsed.Passwd)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "movies", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}
