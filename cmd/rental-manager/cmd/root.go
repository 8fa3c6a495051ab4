// Package cmd provides CLI commands for rental-manager.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	// logLevel is raised to debug by --debug or by DEBUG in the loaded config.
	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rental-manager",
	Short: "Track rental houses, tenants, leases and payments",
	Long: `rental-manager is a single-operator tool for managing rental houses,
tenants, lease agreements and payments stored in plain-text files.

It supports:
- Listing, searching and removing houses
- Registering tenants
- Booking a house (lease agreement + payment obligation)
- Booking history and payment tracking in SQLite
- An interactive menu

Example:
  rental-manager menu
  rental-manager house add --id 5 --location Paris --price 1200 --bedrooms 3 --owner Bob
  rental-manager book --house-id 5 --tenant Alice`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		if debug {
			logLevel.Set(slog.LevelDebug)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(houseCmd)
	rootCmd.AddCommand(tenantCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	return cfgFile
}

// Helper function to report a command failure from RunE.
// Use it instead of exitOnError once a connection is open.
func commandError(err error, msg string) error {
	slog.Error(msg, "error", err)
	return fmt.Errorf("%s: %w", msg, err)
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
