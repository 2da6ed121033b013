package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Backends the ledger slot can live in.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	// HTTP server
	Port string

	// Storage
	DataBackend  string
	SQLiteDBPath string
	SlotKey      string

	// Ledger behavior
	PageSize int
	Currency string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		DataBackend:  getEnv("DATA_BACKEND", BackendMemory),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/noteup.db"),
		SlotKey:      getEnv("LEDGER_SLOT_KEY", "noteup_data_v1"),
		PageSize:     getEnvInt("PAGE_SIZE", 20),
		Currency:     getEnv("CURRENCY", "IDR"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration, collecting every problem rather than
// stopping at the first.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendMemory, BackendSQLite:
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend %q: must be %q or %q",
			c.DataBackend, BackendMemory, BackendSQLite))
	}

	if c.DataBackend == BackendSQLite && c.SQLiteDBPath == "" {
		problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.SlotKey == "" {
		problems = append(problems, "ledger slot key cannot be empty")
	}

	if c.PageSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid page size %d: must be at least 1", c.PageSize))
	} else if c.PageSize > 500 {
		problems = append(problems, fmt.Sprintf("invalid page size %d: must be at most 500", c.PageSize))
	}

	if c.Currency != "" && len(c.Currency) != 3 {
		problems = append(problems, fmt.Sprintf("invalid currency %q: must be a 3-letter code or empty", c.Currency))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := envLookup(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := envLookup(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
