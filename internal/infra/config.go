package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Snapshot backends understood by LoadConfig.
const (
	SnapshotBackendFile     = "file"
	SnapshotBackendMemory   = "memory"
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendRedis    = "redis"
	SnapshotBackendS3       = "s3"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	JWTSecret        string
	DonationAmount   uint64
	SnapshotBackend  string
	SnapshotPath     string
	SnapshotKey      string
	SnapshotInterval time.Duration
	DatabaseURL      string
	RedisURL         string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3Prefix         string
	GeoIPDBPath      string
	DefaultLocale    string
	SettingsAdmins   []string
	AllowedOrigins   []string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		DonationAmount:   getEnvUint64("DONATION_AMOUNT", 100_000_000),
		SnapshotBackend:  strings.ToLower(getEnv("SNAPSHOT_BACKEND", SnapshotBackendFile)),
		SnapshotPath:     getEnv("SNAPSHOT_PATH", "./data"),
		SnapshotKey:      getEnv("SNAPSHOT_KEY", "governance.snapshot.json"),
		SnapshotInterval: time.Second * time.Duration(getEnvInt("SNAPSHOT_INTERVAL_SECONDS", 300)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3Prefix:         os.Getenv("S3_PREFIX"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "en"),
		SettingsAdmins:   splitList(os.Getenv("SETTINGS_ADMINS")),
		AllowedOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DonationAmount == 0 {
		return nil, fmt.Errorf("DONATION_AMOUNT must be greater than zero")
	}

	switch cfg.SnapshotBackend {
	case SnapshotBackendFile, SnapshotBackendMemory, SnapshotBackendRedis:
	case SnapshotBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres snapshot backend")
		}
	case SnapshotBackendS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for the s3 snapshot backend")
		}
	default:
		return nil, fmt.Errorf("unknown SNAPSHOT_BACKEND %q", cfg.SnapshotBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint64(key string, fallback uint64) uint64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
