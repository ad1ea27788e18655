package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "CORS_ALLOWED_ORIGINS", "PUBLIC_DIR", "REPORT_TIMEZONE", "QUERY_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, time.Local, cfg.ReportLocation)
	assert.Zero(t, cfg.Mongo.QueryTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", DriverMemory)
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://pos.local")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, time.UTC, cfg.ReportLocation)
	assert.Equal(t, []string{"http://localhost:5173", "http://pos.local"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", DriverMongo)
	t.Setenv("REPORT_TIMEZONE", "Mars/Olympus")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("POS_CONFIG_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("POS_CONFIG_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("POS_CONFIG_TEST_KEY"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("POS_CONFIG_TEST_KEY"))
}
