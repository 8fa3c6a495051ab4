package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"RENTAL_DATA_ROOT",
	"RENTAL_HOUSES_FILE",
	"RENTAL_TENANTS_FILE",
	"RENTAL_AGREEMENTS_FILE",
	"RENTAL_PAYMENTS_FILE",
	"RENTAL_POLICY_FILE",
	"RENTAL_DB_PATH",
	"RENTAL_HISTORY_DISABLED",
	"DEBUG",
}

// clearEnv blanks every config variable for the test; an empty value counts
// as unset and godotenv does not override variables that already exist.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.Data.Root)
	assert.Empty(t, cfg.Data.HousesFile)
	assert.Empty(t, cfg.History.DBPath)
	assert.False(t, cfg.History.Disabled)
	assert.False(t, cfg.Debug)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RENTAL_DATA_ROOT", "/srv/rental")
	t.Setenv("RENTAL_PAYMENTS_FILE", "/srv/ledger/payments.txt")
	t.Setenv("RENTAL_HISTORY_DISABLED", "true")
	t.Setenv("DEBUG", "1")

	cfg, err := Load(writeEnvFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "/srv/rental", cfg.Data.Root)
	assert.Equal(t, "/srv/ledger/payments.txt", cfg.Data.PaymentsFile)
	assert.True(t, cfg.History.Disabled)
	assert.True(t, cfg.Debug)
}

func TestLoad_InvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("RENTAL_HISTORY_DISABLED", "sometimes")

	_, err := Load(writeEnvFile(t, ""))
	assert.Error(t, err)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Data: DataConfig{Root: "data"}}

	assert.NoError(t, cfg.Validate("data.root"))

	err := cfg.Validate("data.root", "history.dbPath", "data.policyFile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history.dbPath, data.policyFile")

	assert.Error(t, cfg.Validate("data.nope"))
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
