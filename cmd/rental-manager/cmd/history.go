package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

var errHistoryDisabled = errors.New("booking history is disabled (RENTAL_HISTORY_DISABLED)")

var historyTenant string

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded bookings",
	Long: `List bookings recorded in the history database, oldest first.

Example:
  rental-manager history
  rental-manager history --tenant alice`,
	RunE: runHistory,
}

// payCmd represents the pay command.
var payCmd = &cobra.Command{
	Use:   "pay REFERENCE",
	Short: "Mark the payment of a booking as paid",
	Long: `Mark the payment of a booking as paid in the history database.

The payments log is append-only and is not rewritten.

Example:
  rental-manager pay 0b7c6a1e-3f4d-4c1b-9a55-2d7f0e8c9b10`,
	Args: cobra.ExactArgs(1),
	RunE: runPay,
}

func init() {
	historyCmd.Flags().StringVar(&historyTenant, "tenant", "", "Only show bookings of this tenant")
}

func runHistory(cmd *cobra.Command, args []string) error {
	conn, history := openHistory(cmd.Context())
	defer conn.Close()

	records, err := history.ListBookings(cmd.Context(), historyTenant)
	if err != nil {
		return commandError(err, "failed to list bookings")
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No bookings recorded.")
		return nil
	}

	for _, r := range records {
		status := "unpaid"
		if r.IsPaid {
			status = "paid"
		}
		fmt.Fprintf(out, "%s  house %d  %s  %s..%s  deposit %s  payment %s due %s (%s)\n",
			r.Reference,
			r.HouseID,
			r.TenantName,
			r.StartDate.Format(rental.DateLayout),
			r.EndDate.Format(rental.DateLayout),
			rental.FormatDecimal(r.Deposit),
			rental.FormatDecimal(r.Amount),
			r.DueDate.Format(rental.DateLayout),
			status,
		)
	}
	return nil
}

func runPay(cmd *cobra.Command, args []string) error {
	reference := args[0]

	conn, history := openHistory(cmd.Context())
	defer conn.Close()

	record, err := history.GetBooking(cmd.Context(), reference)
	if err != nil {
		return commandError(err, "failed to look up booking")
	}
	if record == nil {
		return commandError(fmt.Errorf("booking %s not found", reference), "cannot mark payment")
	}

	updated, err := history.MarkPaid(cmd.Context(), reference)
	if err != nil {
		return commandError(err, "failed to mark payment as paid")
	}

	if !updated {
		fmt.Fprintf(cmd.OutOrStdout(), "Payment for booking %s was already paid.\n", reference)
		return nil
	}

	slog.Info("Payment marked as paid", "reference", reference, "tenant", record.TenantName, "amount", record.Amount)
	fmt.Fprintf(cmd.OutOrStdout(), "Payment of %s by %s marked as paid.\n", rental.FormatDecimal(record.Amount), record.TenantName)
	return nil
}
