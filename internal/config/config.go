// Package config loads application configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/PF6771/eien-invoice/internal/logger"
)

// Config holds every runtime setting. All fields have defaults; the tool runs
// with an empty environment.
type Config struct {
	// DataFile is the path of the persisted ledger document.
	DataFile string `env:"EIEN_DATA_FILE" envDefault:"eien_data.json"`

	// Company identity printed on every invoice block.
	CompanyName    string `env:"EIEN_COMPANY_NAME" envDefault:"AireStream Aire & Heat Co."`
	CompanyAddress string `env:"EIEN_COMPANY_ADDRESS" envDefault:"PO Box 24729\nFort Worth, TX 76124\n817-429-1867"`
	ZelleLine      string `env:"EIEN_ZELLE_LINE" envDefault:"No fees — pay directly with Zelle!"`
	ZelleQRNote    string `env:"EIEN_ZELLE_QR_NOTE" envDefault:"(Scan Zelle QR code attached)"`
	LogoPath       string `env:"EIEN_LOGO_PATH" envDefault:"eien_logo.png"`

	// Logging configuration.
	LogLevel      string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"console"`
	LogTimeFormat string `env:"LOG_TIME_FORMAT" envDefault:"2006-01-02T15:04:05Z07:00"`
	LogOutput     string `env:"LOG_OUTPUT" envDefault:"stderr"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if cfg.DataFile == "" {
		return nil, fmt.Errorf("config: EIEN_DATA_FILE must not be empty")
	}
	return &cfg, nil
}

// GetLoggerConfig returns a logger configuration from the main config.
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}
