package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDatabaseConfig_DefaultsWhenUnset(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_DEBUG"} {
		t.Setenv(key, "")
	}
	cfg := LoadDatabaseConfig()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "postgres", cfg.User)
	assert.Equal(t, "mealplanner", cfg.Database)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.False(t, cfg.Debug)
}

func TestLoadDatabaseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_DEBUG", "true")
	cfg := LoadDatabaseConfig()
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.True(t, cfg.Debug)
}

func TestLoadDatabaseConfig_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	cfg := LoadDatabaseConfig()
	assert.Equal(t, 5432, cfg.Port)
}

func TestDatabaseConfig_DSNFormatsAllFields(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}
