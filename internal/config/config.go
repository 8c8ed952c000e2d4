package config

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	applog "moneybook/internal/log"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	OutputPlain    = "plain"
	OutputMarkdown = "markdown"
)

type Config struct {
	// Storage
	DataBackend  string
	LedgerFile   string
	SQLiteDBPath string

	// Views
	ExpenseThreshold float64
	OutputFormat     string

	// Logging
	LogLevel string

	// AMQP (optional ledger events)
	AMQPURL            string
	AMQPExchange       string
	AMQPQueue          string
	AMQPPublishTimeout time.Duration
}

func Load() *Config {
	return &Config{
		DataBackend:  getEnv("DATA_BACKEND", BackendJSON),
		LedgerFile:   getEnv("LEDGER_FILE", "transactions.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/moneybook.db"),

		ExpenseThreshold: getEnvFloat("EXPENSE_THRESHOLD", 100),
		OutputFormat:     getEnv("OUTPUT_FORMAT", OutputPlain),

		LogLevel: getEnv("LOG_LEVEL", "warn"),

		AMQPURL:            getEnv("AMQP_URL", ""),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "moneybook"),
		AMQPQueue:          getEnv("AMQP_QUEUE", "ledger_events"),
		AMQPPublishTimeout: getEnvDuration("AMQP_PUBLISH_TIMEOUT", 5*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{BackendJSON, BackendSQLite}
	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendJSON && strings.TrimSpace(c.LedgerFile) == "" {
		errors = append(errors, "ledger file cannot be empty when using json backend")
	}
	if c.DataBackend == BackendSQLite && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if math.IsNaN(c.ExpenseThreshold) || math.IsInf(c.ExpenseThreshold, 0) {
		errors = append(errors, fmt.Sprintf("invalid expense threshold %v: must be a finite number", c.ExpenseThreshold))
	}

	validFormats := []string{OutputPlain, OutputMarkdown}
	if !slices.Contains(validFormats, c.OutputFormat) {
		errors = append(errors, fmt.Sprintf("invalid output format '%s': must be one of %v", c.OutputFormat, validFormats))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	// AMQP is optional; when enabled it must be complete
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPPublishTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("invalid AMQP publish timeout %v: must be positive", c.AMQPPublishTimeout))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// StorageLocation is the path of the configured backend.
func (c *Config) StorageLocation() string {
	if c.DataBackend == BackendSQLite {
		return c.SQLiteDBPath
	}
	return c.LedgerFile
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
