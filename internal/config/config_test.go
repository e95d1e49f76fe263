package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "wishd.db", cfg.DBDSN)
	assert.Zero(t, cfg.BcryptCost)
	assert.Equal(t, "wishd-images", cfg.MinioBucket)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_DSN", "postgres://localhost/wishd")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ORIGINS", "https://wishd.example")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/wishd", cfg.DBDSN)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"https://wishd.example"}, cfg.CORSOrigins)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not a number")
	assert.Zero(t, Load().BcryptCost)
}
