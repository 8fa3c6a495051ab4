package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/db"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display booking statistics",
	Long: `Display statistics about recorded bookings.

Shows:
- Total number of bookings
- Number of paid bookings
- Outstanding payment amount
- Last booking reference and timestamp

Example:
  rental-manager stats`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	conn, history := openHistory(cmd.Context())
	defer conn.Close()

	stats, err := history.GetStats(cmd.Context())
	if err != nil {
		return commandError(err, "failed to get statistics")
	}

	lastRef, err := history.GetMetadata(cmd.Context(), db.MetadataLastBooking)
	if err != nil {
		return commandError(err, "failed to get last booking reference")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n=== Booking Statistics ===")
	fmt.Fprintf(out, "Total bookings:        %d\n", stats.TotalBookings)
	fmt.Fprintf(out, "Paid bookings:         %d\n", stats.PaidBookings)
	fmt.Fprintf(out, "Outstanding amount:    %s\n", rental.FormatDecimal(stats.OutstandingAmount))

	if stats.LastBooking.Valid {
		fmt.Fprintf(out, "Last booking:          %s (%s)\n", stats.LastBooking.String, lastRef)
	} else {
		fmt.Fprintf(out, "Last booking:          (never)\n")
	}

	fmt.Fprintln(out)

	slog.Debug("Statistics displayed", "path", conn.GetPath())
	return nil
}
