package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port      string
	StaticDir string

	// Data files
	DataDir      string
	SnapshotPath string
	SQLiteDBPath string

	// GoCardless
	GoCardlessBaseURL   string
	GoCardlessSecretID  string
	GoCardlessSecretKey string
	GoCardlessTimeout   time.Duration
	GoCardlessAccounts  []string

	// Sync
	SyncInterval     time.Duration
	SyncOnStart      bool
	FetchConcurrency int

	// AMQP (optional; sync-completed events are skipped when unset)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror (optional)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Categorization
	CategoryRulesPath string
}

func Load() *Config {
	dataDir := getEnv("DATA_DIR", "./data")

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		StaticDir: getEnv("STATIC_DIR", "./public"),

		DataDir:      dataDir,
		SnapshotPath: getEnv("SNAPSHOT_PATH", filepath.Join(dataDir, "transactions.json")),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", filepath.Join(dataDir, "dashboard.db")),

		GoCardlessBaseURL:   getEnv("GOCARDLESS_BASE_URL", "https://bankaccountdata.gocardless.com/api/v2"),
		GoCardlessSecretID:  getEnv("GOCARDLESS_SECRET_ID", ""),
		GoCardlessSecretKey: getEnv("GOCARDLESS_SECRET_KEY", ""),
		GoCardlessTimeout:   getEnvDuration("GOCARDLESS_TIMEOUT", 20*time.Second),
		GoCardlessAccounts:  getEnvList("GOCARDLESS_ACCOUNTS"),

		SyncInterval:     getEnvDuration("SYNC_INTERVAL", 6*time.Hour),
		SyncOnStart:      getEnvBool("SYNC_ON_START", false),
		FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 4),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "dashboard"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_completed"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		CategoryRulesPath: getEnv("CATEGORY_RULES_PATH", ""),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Snapshot and database paths must live somewhere writable
	for _, p := range []struct{ name, path string }{
		{"snapshot path", c.SnapshotPath},
		{"SQLite database path", c.SQLiteDBPath},
	} {
		if p.path == "" {
			errors = append(errors, fmt.Sprintf("%s cannot be empty", p.name))
			continue
		}
		dir := filepath.Dir(p.path)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create directory '%s' for %s: %v", dir, p.name, err))
				}
			}
		}
	}

	// Validate GoCardless base URL
	if c.GoCardlessBaseURL == "" {
		errors = append(errors, "GoCardless base URL cannot be empty")
	} else if parsedURL, err := url.Parse(c.GoCardlessBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid GoCardless base URL '%s': %v", c.GoCardlessBaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid GoCardless base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	}

	if c.GoCardlessTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid GoCardless timeout %v: must be at least 1 second", c.GoCardlessTimeout))
	}

	// Validate AMQP URL if provided
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

	// Validate sync configuration
	if c.SyncInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at least 1 minute", c.SyncInterval))
	} else if c.SyncInterval > 7*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at most 7 days", c.SyncInterval))
	}

	if c.FetchConcurrency < 1 {
		errors = append(errors, fmt.Sprintf("invalid fetch concurrency %d: must be at least 1", c.FetchConcurrency))
	} else if c.FetchConcurrency > 32 {
		errors = append(errors, fmt.Sprintf("invalid fetch concurrency %d: must be at most 32", c.FetchConcurrency))
	}

	// Validate rules file if specified
	if c.CategoryRulesPath != "" {
		if _, err := os.Stat(c.CategoryRulesPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("category rules file does not exist: %s", c.CategoryRulesPath))
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// HasCredentials reports whether GoCardless API credentials are configured.
func (c *Config) HasCredentials() bool {
	return c.GoCardlessSecretID != "" && c.GoCardlessSecretKey != ""
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
