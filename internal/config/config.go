package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at startup
// and immutable afterwards.
type Config struct {
	Server    ServerConfig
	Paperless PaperlessConfig
	Ingest    IngestConfig
	Storage   StorageConfig
	Audit     AuditConfig
	LLM       LLMConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// PaperlessConfig holds document server settings.
type PaperlessConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// IngestConfig holds ingestion workflow settings.
type IngestConfig struct {
	PollIntervalMS    int    `mapstructure:"poll_interval_ms"`
	PollMaxAttempts   int    `mapstructure:"poll_max_attempts"`
	DuplicatePhrase   string `mapstructure:"duplicate_phrase"`
	SkipExisting      bool   `mapstructure:"skip_existing"`
	ReprocessExisting bool   `mapstructure:"reprocess_existing"`
}

// PollInterval returns the delay between non-terminal task polls.
func (c *IngestConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// StorageConfig holds artifact staging settings. Backend selects between the
// local filesystem and S3.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Root    string `mapstructure:"root"`
	S3      S3Config
}

// S3Config holds AWS S3 settings for the s3 storage backend.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// AuditConfig holds ingestion audit log settings.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LLMConfig holds completion API settings.
type LLMConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
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

// Load reads configuration from environment variables with the PAPERBRIDGE_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAPERBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Paperless defaults
	v.SetDefault("paperless.base_url", "http://localhost:8000")
	v.SetDefault("paperless.timeout_secs", 60)

	// Ingest defaults. Polling is unbounded by default for compatibility
	// with the legacy behavior; set poll_max_attempts to bound it.
	v.SetDefault("ingest.poll_interval_ms", 5000)
	v.SetDefault("ingest.poll_max_attempts", 0)
	v.SetDefault("ingest.duplicate_phrase", "It is a duplicate of")
	v.SetDefault("ingest.skip_existing", false)
	v.SetDefault("ingest.reprocess_existing", true)

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.root", "data")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket", "paperbridge-artifacts")
	v.SetDefault("storage.s3.endpoint", "")

	// Audit defaults
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.path", "paperbridge.db")

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "claude-sonnet-4-20250514")
	v.SetDefault("llm.timeout_secs", 120)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "PAPERBRIDGE_SERVER_PORT",
		"server.read_timeout":       "PAPERBRIDGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "PAPERBRIDGE_SERVER_WRITE_TIMEOUT",
		"server.environment":        "PAPERBRIDGE_SERVER_ENVIRONMENT",
		"paperless.base_url":        "PAPERBRIDGE_PAPERLESS_BASE_URL",
		"paperless.timeout_secs":    "PAPERBRIDGE_PAPERLESS_TIMEOUT_SECS",
		"ingest.poll_interval_ms":   "PAPERBRIDGE_INGEST_POLL_INTERVAL_MS",
		"ingest.poll_max_attempts":  "PAPERBRIDGE_INGEST_POLL_MAX_ATTEMPTS",
		"ingest.duplicate_phrase":   "PAPERBRIDGE_INGEST_DUPLICATE_PHRASE",
		"ingest.skip_existing":      "PAPERBRIDGE_INGEST_SKIP_EXISTING",
		"ingest.reprocess_existing": "PAPERBRIDGE_INGEST_REPROCESS_EXISTING",
		"storage.backend":           "PAPERBRIDGE_STORAGE_BACKEND",
		"storage.root":              "PAPERBRIDGE_STORAGE_ROOT",
		"storage.s3.region":         "PAPERBRIDGE_STORAGE_S3_REGION",
		"storage.s3.bucket":         "PAPERBRIDGE_STORAGE_S3_BUCKET",
		"storage.s3.endpoint":       "PAPERBRIDGE_STORAGE_S3_ENDPOINT",
		"storage.s3.access_key":     "PAPERBRIDGE_STORAGE_S3_ACCESS_KEY",
		"storage.s3.secret_key":     "PAPERBRIDGE_STORAGE_S3_SECRET_KEY",
		"audit.enabled":             "PAPERBRIDGE_AUDIT_ENABLED",
		"audit.path":                "PAPERBRIDGE_AUDIT_PATH",
		"llm.api_key":               "PAPERBRIDGE_LLM_API_KEY",
		"llm.model":                 "PAPERBRIDGE_LLM_MODEL",
		"llm.timeout_secs":          "PAPERBRIDGE_LLM_TIMEOUT_SECS",
		"log.level":                 "PAPERBRIDGE_LOG_LEVEL",
		"log.format":                "PAPERBRIDGE_LOG_FORMAT",
		"cors.allowed_origins":      "PAPERBRIDGE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PAPERBRIDGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PAPERBRIDGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Paperless = PaperlessConfig{
		BaseURL:     v.GetString("paperless.base_url"),
		TimeoutSecs: v.GetInt("paperless.timeout_secs"),
	}
	cfg.Ingest = IngestConfig{
		PollIntervalMS:    v.GetInt("ingest.poll_interval_ms"),
		PollMaxAttempts:   v.GetInt("ingest.poll_max_attempts"),
		DuplicatePhrase:   v.GetString("ingest.duplicate_phrase"),
		SkipExisting:      v.GetBool("ingest.skip_existing"),
		ReprocessExisting: v.GetBool("ingest.reprocess_existing"),
	}
	cfg.Storage = StorageConfig{
		Backend: v.GetString("storage.backend"),
		Root:    v.GetString("storage.root"),
		S3: S3Config{
			Region:    v.GetString("storage.s3.region"),
			Bucket:    v.GetString("storage.s3.bucket"),
			Endpoint:  v.GetString("storage.s3.endpoint"),
			AccessKey: v.GetString("storage.s3.access_key"),
			SecretKey: v.GetString("storage.s3.secret_key"),
		},
	}
	cfg.Audit = AuditConfig{
		Enabled: v.GetBool("audit.enabled"),
		Path:    v.GetString("audit.path"),
	}
	cfg.LLM = LLMConfig{
		APIKey:      v.GetString("llm.api_key"),
		Model:       v.GetString("llm.model"),
		TimeoutSecs: v.GetInt("llm.timeout_secs"),
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

	return cfg, nil
}
