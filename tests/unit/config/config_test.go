package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"expodocs/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "ap-south-1", cfg.S3.Region)
	assert.Equal(t, "expodocs-documents", cfg.S3.Bucket)
	assert.Equal(t, "templates", cfg.S3.TemplatePrefix)
	assert.Equal(t, int64(3600), cfg.S3.PresignExpiry)
	assert.Equal(t, "gemini-2.0-flash", cfg.Extract.Provider.Model)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.Equal(t, 4, cfg.Pipeline.UploadWorkers)
	assert.True(t, cfg.Render.Bundle)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EXPODOCS_SERVER_PORT", ":9090")
	t.Setenv("EXPODOCS_S3_BUCKET", "custom-bucket")
	t.Setenv("EXPODOCS_ENRICH_PRIMARY_API_KEY", "test-key")
	t.Setenv("EXPODOCS_PIPELINE_CONCURRENCY", "8")
	t.Setenv("EXPODOCS_RENDER_BUNDLE", "false")
	t.Setenv("EXPODOCS_CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "custom-bucket", cfg.S3.Bucket)
	assert.Equal(t, "test-key", cfg.Enrich.Primary.APIKey)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
	assert.False(t, cfg.Render.Bundle)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7000")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_ExplicitPortBeatsPlatformPort(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("EXPODOCS_SERVER_PORT", ":9090")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	cfg, err := config.Load()
	assert.NoError(t, err)

	dsn := cfg.DB.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "@localhost:5432/expodocs_db")
	assert.Contains(t, dsn, "sslmode=disable")
}
