package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eien_data.json", cfg.DataFile)
	assert.Equal(t, "AireStream Aire & Heat Co.", cfg.CompanyName)
	assert.Contains(t, cfg.CompanyAddress, "Fort Worth")
	assert.NotEmpty(t, cfg.ZelleLine)
	assert.NotEmpty(t, cfg.ZelleQRNote)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "data file",
			env:  map[string]string{"EIEN_DATA_FILE": "/tmp/test-ledger.json"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/test-ledger.json", cfg.DataFile)
			},
		},
		{
			name: "company identity",
			env: map[string]string{
				"EIEN_COMPANY_NAME": "Test Co.",
				"EIEN_ZELLE_LINE":   "Pay however you like.",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Test Co.", cfg.CompanyName)
				assert.Equal(t, "Pay however you like.", cfg.ZelleLine)
			},
		},
		{
			name: "logging",
			env: map[string]string{
				"LOG_LEVEL":  "debug",
				"LOG_FORMAT": "json",
				"LOG_OUTPUT": "stdout",
			},
			check: func(t *testing.T, cfg *Config) {
				lc := cfg.GetLoggerConfig()
				assert.Equal(t, "debug", lc.Level)
				assert.Equal(t, "json", lc.Format)
				assert.Equal(t, "stdout", lc.Output)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
