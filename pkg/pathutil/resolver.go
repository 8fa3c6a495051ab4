// Package pathutil provides centralized path management for the rental data files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default file names under the data root.
const (
	DefaultHousesFile     = "houses.txt"
	DefaultTenantsFile    = "tenants.txt"
	DefaultAgreementsFile = "agreements.txt"
	DefaultPaymentsFile   = "payments.txt"
	DefaultPolicyFile     = "policy.yaml"
)

// PathResolver manages paths for the record files, the policy file and the
// booking history database.
type PathResolver struct {
	dataRoot       string
	housesFile     string
	tenantsFile    string
	agreementsFile string
	paymentsFile   string
	policyFile     string
	databasePath   string
}

// Config represents the configuration for PathResolver.
// Empty fields fall back to defaults under DataRoot.
type Config struct {
	// DataRoot is the directory holding all data files (e.g., ./data)
	DataRoot       string
	HousesFile     string
	TenantsFile    string
	AgreementsFile string
	PaymentsFile   string
	PolicyFile     string
	// DatabasePath is the SQLite booking history file
	DatabasePath string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataRoot}/.history/bookings.db
func New(config Config) *PathResolver {
	return &PathResolver{
		dataRoot:       config.DataRoot,
		housesFile:     orDefault(config.HousesFile, filepath.Join(config.DataRoot, DefaultHousesFile)),
		tenantsFile:    orDefault(config.TenantsFile, filepath.Join(config.DataRoot, DefaultTenantsFile)),
		agreementsFile: orDefault(config.AgreementsFile, filepath.Join(config.DataRoot, DefaultAgreementsFile)),
		paymentsFile:   orDefault(config.PaymentsFile, filepath.Join(config.DataRoot, DefaultPaymentsFile)),
		policyFile:     orDefault(config.PolicyFile, filepath.Join(config.DataRoot, DefaultPolicyFile)),
		databasePath:   orDefault(config.DatabasePath, filepath.Join(config.DataRoot, ".history", "bookings.db")),
	}
}

// GetDataRoot returns the data root directory.
func (p *PathResolver) GetDataRoot() string {
	return p.dataRoot
}

// GetHousesFile returns the houses file path.
func (p *PathResolver) GetHousesFile() string {
	return p.housesFile
}

// GetTenantsFile returns the tenants file path.
func (p *PathResolver) GetTenantsFile() string {
	return p.tenantsFile
}

// GetAgreementsFile returns the append-only agreements log path.
func (p *PathResolver) GetAgreementsFile() string {
	return p.agreementsFile
}

// GetPaymentsFile returns the append-only payments log path.
func (p *PathResolver) GetPaymentsFile() string {
	return p.paymentsFile
}

// GetPolicyFile returns the booking policy file path.
func (p *PathResolver) GetPolicyFile() string {
	return p.policyFile
}

// GetDatabasePath returns the booking history database path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func EnsureParentDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
