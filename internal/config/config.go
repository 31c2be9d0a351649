package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Extract  ExtractConfig
	Enrich   EnrichConfig
	Render   RenderConfig
	Pipeline PipelineConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	TemplatePrefix string `mapstructure:"template_prefix"`
	MaxFileSizeMB  int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry  int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractProviderConfig holds settings for the LLM extraction provider.
type ExtractProviderConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExtractConfig holds invoice extraction settings.
type ExtractConfig struct {
	Provider ExtractProviderConfig `mapstructure:"provider"`
}

// EnrichProviderConfig holds settings for a single enrichment provider.
type EnrichProviderConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// EnrichConfig holds compliance-data enrichment settings. The fallback
// provider is optional; the static record always backstops both.
type EnrichConfig struct {
	Primary  EnrichProviderConfig `mapstructure:"primary"`
	Fallback EnrichProviderConfig `mapstructure:"fallback"`
}

// RenderConfig holds document rendering settings.
type RenderConfig struct {
	// Bundle controls whether a zip of all generated documents is produced.
	Bundle bool `mapstructure:"bundle"`
}

// PipelineConfig holds render fan-out settings.
type PipelineConfig struct {
	Concurrency   int `mapstructure:"concurrency"`
	UploadWorkers int `mapstructure:"upload_workers"`
}

// Load reads configuration from environment variables with the EXPODOCS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EXPODOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "expodocs")
	v.SetDefault("db.password", "expodocs_secret")
	v.SetDefault("db.name", "expodocs_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "expodocs-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.template_prefix", "templates")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Extraction defaults
	v.SetDefault("extract.provider.api_key", "")
	v.SetDefault("extract.provider.model", "gemini-2.0-flash")
	v.SetDefault("extract.provider.timeout_secs", 120)

	// Enrichment defaults
	v.SetDefault("enrich.primary.api_key", "")
	v.SetDefault("enrich.primary.model", "gemini-2.0-flash")
	v.SetDefault("enrich.primary.timeout_secs", 60)
	v.SetDefault("enrich.fallback.api_key", "")
	v.SetDefault("enrich.fallback.model", "")
	v.SetDefault("enrich.fallback.timeout_secs", 60)

	// Render defaults
	v.SetDefault("render.bundle", true)

	// Pipeline defaults
	v.SetDefault("pipeline.concurrency", 4)
	v.SetDefault("pipeline.upload_workers", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "EXPODOCS_SERVER_PORT",
		"server.read_timeout":           "EXPODOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "EXPODOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":            "EXPODOCS_SERVER_ENVIRONMENT",
		"db.host":                       "EXPODOCS_DB_HOST",
		"db.port":                       "EXPODOCS_DB_PORT",
		"db.user":                       "EXPODOCS_DB_USER",
		"db.password":                   "EXPODOCS_DB_PASSWORD",
		"db.name":                       "EXPODOCS_DB_NAME",
		"db.sslmode":                    "EXPODOCS_DB_SSLMODE",
		"db.max_open":                   "EXPODOCS_DB_MAX_OPEN",
		"db.max_idle":                   "EXPODOCS_DB_MAX_IDLE",
		"s3.region":                     "EXPODOCS_S3_REGION",
		"s3.bucket":                     "EXPODOCS_S3_BUCKET",
		"s3.endpoint":                   "EXPODOCS_S3_ENDPOINT",
		"s3.access_key":                 "EXPODOCS_S3_ACCESS_KEY",
		"s3.secret_key":                 "EXPODOCS_S3_SECRET_KEY",
		"s3.template_prefix":            "EXPODOCS_S3_TEMPLATE_PREFIX",
		"s3.max_file_size_mb":           "EXPODOCS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":             "EXPODOCS_S3_PRESIGN_EXPIRY",
		"log.level":                     "EXPODOCS_LOG_LEVEL",
		"log.format":                    "EXPODOCS_LOG_FORMAT",
		"cors.allowed_origins":          "EXPODOCS_CORS_ALLOWED_ORIGINS",
		"extract.provider.api_key":      "EXPODOCS_EXTRACT_PROVIDER_API_KEY",
		"extract.provider.model":        "EXPODOCS_EXTRACT_PROVIDER_MODEL",
		"extract.provider.timeout_secs": "EXPODOCS_EXTRACT_PROVIDER_TIMEOUT_SECS",
		"enrich.primary.api_key":        "EXPODOCS_ENRICH_PRIMARY_API_KEY",
		"enrich.primary.model":          "EXPODOCS_ENRICH_PRIMARY_MODEL",
		"enrich.primary.timeout_secs":   "EXPODOCS_ENRICH_PRIMARY_TIMEOUT_SECS",
		"enrich.fallback.api_key":       "EXPODOCS_ENRICH_FALLBACK_API_KEY",
		"enrich.fallback.model":         "EXPODOCS_ENRICH_FALLBACK_MODEL",
		"enrich.fallback.timeout_secs":  "EXPODOCS_ENRICH_FALLBACK_TIMEOUT_SECS",
		"render.bundle":                 "EXPODOCS_RENDER_BUNDLE",
		"pipeline.concurrency":          "EXPODOCS_PIPELINE_CONCURRENCY",
		"pipeline.upload_workers":       "EXPODOCS_PIPELINE_UPLOAD_WORKERS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if EXPODOCS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("EXPODOCS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:         v.GetString("s3.region"),
		Bucket:         v.GetString("s3.bucket"),
		Endpoint:       v.GetString("s3.endpoint"),
		AccessKey:      v.GetString("s3.access_key"),
		SecretKey:      v.GetString("s3.secret_key"),
		TemplatePrefix: v.GetString("s3.template_prefix"),
		MaxFileSizeMB:  v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry:  v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Extract = ExtractConfig{
		Provider: ExtractProviderConfig{
			APIKey:      v.GetString("extract.provider.api_key"),
			Model:       v.GetString("extract.provider.model"),
			TimeoutSecs: v.GetInt("extract.provider.timeout_secs"),
		},
	}
	cfg.Enrich = EnrichConfig{
		Primary: EnrichProviderConfig{
			APIKey:      v.GetString("enrich.primary.api_key"),
			Model:       v.GetString("enrich.primary.model"),
			TimeoutSecs: v.GetInt("enrich.primary.timeout_secs"),
		},
		Fallback: EnrichProviderConfig{
			APIKey:      v.GetString("enrich.fallback.api_key"),
			Model:       v.GetString("enrich.fallback.model"),
			TimeoutSecs: v.GetInt("enrich.fallback.timeout_secs"),
		},
	}
	cfg.Render = RenderConfig{
		Bundle: v.GetBool("render.bundle"),
	}
	cfg.Pipeline = PipelineConfig{
		Concurrency:   v.GetInt("pipeline.concurrency"),
		UploadWorkers: v.GetInt("pipeline.upload_workers"),
	}

	return cfg, nil
}
