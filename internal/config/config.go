package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabasePath string
	LogLevel     string
	JWTSecret    string

	// Blob storage: "memory" or "s3"
	StorageBackend    string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Upload limits
	MaxFileSize  int64
	PreviewChars int

	// Multiplier applied to every simulated latency. 0 disables the delays.
	LatencyScale float64
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabasePath:      getEnv("DATABASE_PATH", "data/opticours.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		JWTSecret:         getEnv("JWT_SECRET", "opticours-dev-secret"),
		StorageBackend:    getEnv("STORAGE_BACKEND", "memory"),
		S3Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "course-files"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
	}

	var err error
	if cfg.MaxFileSize, err = strconv.ParseInt(getEnv("MAX_FILE_SIZE", "20971520"), 10, 64); err != nil || cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("MAX_FILE_SIZE must be a positive integer")
	}
	if cfg.PreviewChars, err = strconv.Atoi(getEnv("PREVIEW_CHARS", "1000")); err != nil || cfg.PreviewChars < 0 {
		return nil, fmt.Errorf("PREVIEW_CHARS must be a non-negative integer")
	}
	if cfg.LatencyScale, err = strconv.ParseFloat(getEnv("LATENCY_SCALE", "1"), 64); err != nil || cfg.LatencyScale < 0 {
		return nil, fmt.Errorf("LATENCY_SCALE must be a non-negative number")
	}

	switch cfg.StorageBackend {
	case "memory", "s3":
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
