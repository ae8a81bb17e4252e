package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	applog "wealthify/internal/log"
)

// DefaultAPIURL is the hosted finance API, version-prefixed.
const DefaultAPIURL = "https://wealthify-be.onrender.com/api/v1/"

type Config struct {
	// Remote API
	APIURL string

	// Session storage
	SessionBackend string
	SessionFile    string
	SQLiteDBPath   string

	// Logging
	LogLevel string

	// Taxonomy cache
	TaxonomyCacheTTL  time.Duration
	TaxonomyCacheSize int

	// AMQP (report requests)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets (report export)
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Report export fallback when no spreadsheet is configured: "-" for stdout
	// or a directory for CSV files.
	ReportOutput string
}

func Load() *Config {
	dataDir := defaultDataDir()
	return &Config{
		APIURL: getEnv("WEALTHIFY_API_URL", DefaultAPIURL),

		SessionBackend: getEnv("SESSION_BACKEND", "file"),
		SessionFile:    getEnv("SESSION_FILE", filepath.Join(dataDir, "session.json")),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", filepath.Join(dataDir, "wealthify.db")),

		LogLevel: getEnv("LOG_LEVEL", "warn"),

		TaxonomyCacheTTL:  getEnvDuration("TAXONOMY_CACHE_TTL", 5*time.Minute),
		TaxonomyCacheSize: getEnvInt("TAXONOMY_CACHE_SIZE", 64),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "wealthify"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_requests"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),

		ReportOutput: getEnv("REPORT_OUTPUT", "-"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.APIURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	} else if parsed.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': missing host", c.APIURL))
	}

	validBackends := []string{"memory", "file", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.SessionBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid session backend '%s': must be one of %v", c.SessionBackend, validBackends))
	}

	if c.SessionBackend == "file" && c.SessionFile == "" {
		errors = append(errors, "session file path cannot be empty when using file backend")
	}
	if c.SessionBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.TaxonomyCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid taxonomy cache size %d: must be at least 1", c.TaxonomyCacheSize))
	}
	if c.TaxonomyCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid taxonomy cache TTL %v: must not be negative", c.TaxonomyCacheTTL))
	}

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
	}

	if c.GoogleSpreadsheetID != "" {
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided with GOOGLE_SPREADSHEET_ID")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SheetsEnabled reports whether reports go to Google Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// QueueEnabled reports whether report requests go through AMQP.
func (c *Config) QueueEnabled() bool {
	return c.AMQPURL != ""
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "wealthify")
	}
	return "./data"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
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
