package database

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orm-lessons/internal/config"
	"orm-lessons/internal/sqlerr"
)

func unreachableConfig() *config.Config {
	return &config.Config{
		DBDriver:   "postgres",
		DBUser:     "nobody",
		DBPassword: "nothing",
		DBHost:     "127.0.0.1",
		DBPort:     1,
		DBName:     "none",
		DBSSLMode:  "disable",
	}
}

func TestConnectPostgres_Unreachable(t *testing.T) {
	db, err := ConnectPostgres(unreachableConfig(), zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, db)
	assert.ErrorIs(t, err, sqlerr.ErrConnection)
}

func TestConnectPostgres_UnsupportedDriver(t *testing.T) {
	cfg := unreachableConfig()
	cfg.DBDriver = "mysql"

	db, err := ConnectPostgres(cfg, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), `unsupported database driver "mysql"`)
}
