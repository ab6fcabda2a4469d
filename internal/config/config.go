package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppEnv          string
	Port            string
	APIPrefix       string
	DefaultUserID   string
	DefaultLanguage string
	ShutdownTimeout time.Duration

	// Store driver: "dynamodb" (default), "sqlite" or "pgx"
	StoreDriver  string
	DBConnection string

	// DynamoDB
	DynamoEndpoint     string // Optional: DynamoDB Local or LocalStack
	DynamoRegion       string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoCreateTables bool
	GoalsTableName     string
	RecordsTableName   string

	// HTTP
	CORSOrigins     []string
	RateLimitWrites int
	RateLimitWindow time.Duration

	// Observability (optional)
	SentryDSN string

	// Export archive storage (optional, S3-compatible)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	appEnv := envString("APP_ENV", "development")

	cfg := &Config{
		// Application
		AppEnv:          appEnv,
		Port:            envString("PORT", "8080"),
		APIPrefix:       strings.TrimSuffix(envString("API_PREFIX", "/api/v1"), "/"),
		DefaultUserID:   envString("DEFAULT_USER_ID", "default-user"),
		DefaultLanguage: envString("DEFAULT_LANGUAGE", "ja"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		// Store
		StoreDriver:  envString("STORE_DRIVER", "dynamodb"),
		DBConnection: envString("DB_CONNECTION", "./data/study-tracker.db?_pragma=journal_mode(WAL)"),

		// DynamoDB
		DynamoEndpoint:     envString("DYNAMODB_ENDPOINT", "http://localhost:8000"),
		DynamoRegion:       envString("DYNAMODB_REGION", "ap-northeast-1"),
		AWSAccessKeyID:     envString("AWS_ACCESS_KEY_ID", "dummy"),
		AWSSecretAccessKey: envString("AWS_SECRET_ACCESS_KEY", "dummy"),
		DynamoCreateTables: envBool("DYNAMODB_CREATE_TABLES", appEnv == "development"),
		GoalsTableName:     envString("GOALS_TABLE_NAME", "study-tracker-goals"),
		RecordsTableName:   envString("RECORDS_TABLE_NAME", "study-tracker-records"),

		// HTTP
		CORSOrigins:     envList("CORS_ORIGINS", "http://localhost:5173"),
		RateLimitWrites: envInt("RATE_LIMIT_WRITES", 120),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", time.Minute),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Export storage
		S3Region:        envString("S3_REGION", envString("DYNAMODB_REGION", "ap-northeast-1")),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", time.Hour),
	}

	// Production: refuse local-only defaults
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction rejects settings that only make sense against DynamoDB Local.
func validateProduction(cfg *Config) {
	if cfg.StoreDriver == "dynamodb" && cfg.AWSAccessKeyID == "dummy" {
		slog.Error("production deployment requires real AWS credentials",
			"hint", "set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, or APP_ENV=development for DynamoDB Local")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList splits a comma separated value, dropping blanks.
func envList(key, def string) []string {
	var out []string
	for _, part := range strings.Split(envString(key, def), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesDynamo reports whether the store driver is DynamoDB.
func (c *Config) UsesDynamo() bool {
	return c.StoreDriver == "" || c.StoreDriver == "dynamodb"
}

// ExportStorageEnabled reports whether an archive bucket is configured.
func (c *Config) ExportStorageEnabled() bool {
	return c.S3Bucket != ""
}
