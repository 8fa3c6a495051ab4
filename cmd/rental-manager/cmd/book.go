package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/console"
)

var (
	bookHouseID int
	bookTenant  string
)

// bookCmd represents the book command.
var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a house for a registered tenant",
	Long: `Book a house for a registered tenant.

This command:
1. Looks up the house by ID and the tenant by name (ignoring case)
2. Removes the house from the inventory
3. Appends a lease agreement to the agreements log
4. Appends a payment obligation to the payments log
5. Records the booking in the history database

Nothing is changed if the house or the tenant does not exist.

Example:
  rental-manager book --house-id 5 --tenant Alice`,
	RunE: runBook,
}

func init() {
	bookCmd.Flags().IntVar(&bookHouseID, "house-id", 0, "House ID (required)")
	bookCmd.Flags().StringVar(&bookTenant, "tenant", "", "Tenant name (required)")

	bookCmd.MarkFlagRequired("house-id")
	bookCmd.MarkFlagRequired("tenant")
}

func runBook(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.Close()

	result, err := s.booking.BookHouse(cmd.Context(), bookHouseID, bookTenant)
	if err != nil {
		return commandError(err, "failed to book house")
	}

	fmt.Fprintln(cmd.OutOrStdout(), console.FormatBooking(result))
	return nil
}
