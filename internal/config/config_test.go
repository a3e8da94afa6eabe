package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "DATABASE_PATH", "CACHE_SIZE", "CASE_CACHE_TTL", "STORE_TIMEOUT", "JUDGE_HEADER", "IMPORT_MAX_RECORDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "X-Judge-Id", cfg.JudgeHeader)
	assert.Equal(t, 10*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 1000, cfg.ImportMaxRecords)
	assert.False(t, cfg.CacheEnabled(), "case cache is off unless a TTL is set")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CASE_CACHE_TTL", "45")
	t.Setenv("CACHE_SIZE", "20")
	t.Setenv("STORE_TIMEOUT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.CaseCacheTTL)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"CACHE_SIZE", "lots"},
		{"CASE_CACHE_TTL", "-1"},
		{"STORE_TIMEOUT", "0"},
		{"IMPORT_MAX_RECORDS", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
