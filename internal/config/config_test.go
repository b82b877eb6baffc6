package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "postgres")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-sufficiently-long-test-secret")
	t.Setenv("DB_PASSWORD", "postgres")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "coachdesk", cfg.Database.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, time.Duration(0), cfg.Access.AdminScanCacheTTL)
}

func TestLoadAdminScanCacheTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-sufficiently-long-test-secret")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("ADMIN_SCAN_CACHE_TTL", "5m")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Access.AdminScanCacheTTL)
}

func TestProductionRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short-secret-1234")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("ENV", "production")

	_, err := Load()

	assert.Error(t, err)
}
