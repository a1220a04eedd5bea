package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("PREVIEW_CHARS", "")
	t.Setenv("LATENCY_SCALE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 1000, cfg.PreviewChars)
	assert.Equal(t, 1.0, cfg.LatencyScale)
	assert.False(t, cfg.S3UseSSL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("LATENCY_SCALE", "0")
	t.Setenv("MAX_FILE_SIZE", "1024")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.True(t, cfg.S3UseSSL)
	assert.Equal(t, 0.0, cfg.LatencyScale)
	assert.Equal(t, int64(1024), cfg.MaxFileSize)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "STORAGE_BACKEND", "gcs"},
		{"negative latency", "LATENCY_SCALE", "-1"},
		{"bad file size", "MAX_FILE_SIZE", "big"},
		{"bad preview", "PREVIEW_CHARS", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
