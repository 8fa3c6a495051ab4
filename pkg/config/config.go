// Package config provides configuration management for the rental manager.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Data    DataConfig
	History HistoryConfig
	Debug   bool
}

// DataConfig represents the record file locations.
// Empty file paths fall back to defaults under Root.
type DataConfig struct {
	Root           string
	HousesFile     string
	TenantsFile    string
	AgreementsFile string
	PaymentsFile   string
	PolicyFile     string
}

// HistoryConfig represents the booking history database configuration.
type HistoryConfig struct {
	DBPath   string
	Disabled bool
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	historyDisabled, err := parseBoolEnv("RENTAL_HISTORY_DISABLED", false)
	if err != nil {
		return nil, err
	}
	debug, err := parseBoolEnv("DEBUG", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Data: DataConfig{
			Root:           getEnvOrDefault("RENTAL_DATA_ROOT", "./data"),
			HousesFile:     os.Getenv("RENTAL_HOUSES_FILE"),
			TenantsFile:    os.Getenv("RENTAL_TENANTS_FILE"),
			AgreementsFile: os.Getenv("RENTAL_AGREEMENTS_FILE"),
			PaymentsFile:   os.Getenv("RENTAL_PAYMENTS_FILE"),
			PolicyFile:     os.Getenv("RENTAL_POLICY_FILE"),
		},
		History: HistoryConfig{
			DBPath:   os.Getenv("RENTAL_DB_PATH"),
			Disabled: historyDisabled,
		},
		Debug: debug,
	}

	return config, nil
}

// Validate checks that the given dot-separated keys are set,
// e.g. Validate("data.root").
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, key := range required {
		var value string
		switch key {
		case "data.root":
			value = c.Data.Root
		case "data.housesFile":
			value = c.Data.HousesFile
		case "data.tenantsFile":
			value = c.Data.TenantsFile
		case "data.agreementsFile":
			value = c.Data.AgreementsFile
		case "data.paymentsFile":
			value = c.Data.PaymentsFile
		case "data.policyFile":
			value = c.Data.PolicyFile
		case "history.dbPath":
			value = c.History.DBPath
		default:
			return fmt.Errorf("unknown configuration key: %s", key)
		}

		if value == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s\nPlease check your .env file or environment variables", strings.Join(missing, ", "))
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv parses a bool from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}
