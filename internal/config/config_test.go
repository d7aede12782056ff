package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test-defaults")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "synphot-catalog", cfg.AWS.S3Bucket)
	assert.Equal(t, "catalog.yaml", cfg.Catalog.ManifestKey)
	assert.Equal(t, 128, cfg.Catalog.FilterCacheSize)
	assert.Equal(t, 500, cfg.Photometry.Trials)
	assert.Equal(t, 0, cfg.Photometry.Workers)
	assert.Equal(t, uint64(1), cfg.Photometry.Seed)
	assert.Equal(t, "calibration/vega", cfg.Photometry.VegaTag)
	assert.Equal(t, 0.03, cfg.Photometry.VegaMagnitude)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test-overrides")
	t.Setenv("PORT", "9090")
	t.Setenv("MC_TRIALS", "2000")
	t.Setenv("MC_SEED", "42")
	t.Setenv("VEGA_MAGNITUDE", "0")
	t.Setenv("S3_ENDPOINT", "localhost:9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2000, cfg.Photometry.Trials)
	assert.Equal(t, uint64(42), cfg.Photometry.Seed)
	assert.Zero(t, cfg.Photometry.VegaMagnitude)
	assert.Equal(t, "localhost:9000", cfg.AWS.S3Endpoint)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoad_BadLogLevel(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test-bad-level")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}
