package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of c and its subcommands to its default,
// so one invocation's values do not leak into the next.
func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
	for _, sub := range c.Commands() {
		resetFlags(t, sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err)
	return out
}

func setupDataRoot(t *testing.T) string {
	t.Helper()
	dataRoot := t.TempDir()
	t.Chdir(t.TempDir())
	t.Setenv("RENTAL_DATA_ROOT", dataRoot)
	t.Setenv("RENTAL_HISTORY_DISABLED", "")
	t.Setenv("RENTAL_DB_PATH", "")
	t.Setenv("DEBUG", "")
	return dataRoot
}

func TestCommands_BookingFlow(t *testing.T) {
	dataRoot := setupDataRoot(t)

	out := execute(t, "house", "add", "--id", "5", "--location", "Paris", "--price", "1200", "--bedrooms", "3", "--owner", "Bob")
	assert.Contains(t, out, "House added.")

	execute(t, "house", "add", "--id", "6", "--location", "Lyon", "--price", "800", "--bedrooms", "2", "--owner", "Eve")

	out = execute(t, "tenant", "register", "--name", "Alice", "--contact", "555-0100", "--preferred-location", "Paris")
	assert.Contains(t, out, "Tenant registered.")

	out = execute(t, "house", "search", "--location", "PARIS", "--max-price", "1200")
	assert.Contains(t, out, "ID: 5, Location: Paris")
	assert.NotContains(t, out, "Lyon")

	out = execute(t, "book", "--house-id", "5", "--tenant", "alice")
	assert.Contains(t, out, "House 5 booked by Alice.")
	ref := regexp.MustCompile(`Reference: (\S+)`).FindStringSubmatch(out)
	require.Len(t, ref, 2)

	out = execute(t, "house", "list")
	assert.NotContains(t, out, "ID: 5,")
	assert.Contains(t, out, "ID: 6,")

	houses, err := os.ReadFile(filepath.Join(dataRoot, "houses.txt"))
	require.NoError(t, err)
	assert.Equal(t, "6,Lyon,800.0,2,Eve\n", string(houses))
	assert.FileExists(t, filepath.Join(dataRoot, "agreements.txt"))
	assert.FileExists(t, filepath.Join(dataRoot, "payments.txt"))

	out = execute(t, "history", "--tenant", "ALICE")
	assert.Contains(t, out, ref[1])
	assert.Contains(t, out, "(unpaid)")

	out = execute(t, "pay", ref[1])
	assert.Contains(t, out, "Payment of 1200.0 by Alice marked as paid.")

	out = execute(t, "pay", ref[1])
	assert.Contains(t, out, "already paid")

	out = execute(t, "stats")
	assert.Contains(t, out, "Total bookings:        1")
	assert.Contains(t, out, "Paid bookings:         1")
	assert.Contains(t, out, ref[1])

	out = execute(t, "tenant", "list")
	assert.Contains(t, out, "Name: Alice, Contact: 555-0100, Preferred Location: Paris")

	out = execute(t, "house", "remove", "6")
	assert.Contains(t, out, "Removed 1 house(s).")
}

func TestCommands_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	setupDataRoot(t)

	execute(t, "house", "add", "--id", "1", "--location", "Paris", "--price", "1000")
	execute(t, "house", "add", "--id", "2", "--location", "Lyon", "--price", "900")
	execute(t, "tenant", "register", "--name", "Alice")
	execute(t, "tenant", "register", "--name", "Bob")
	execute(t, "book", "--house-id", "1", "--tenant", "Alice")
	execute(t, "book", "--house-id", "2", "--tenant", "Bob")

	out := execute(t, "history", "--tenant", "alice")
	assert.Contains(t, out, "Alice")
	assert.NotContains(t, out, "Bob")

	out = execute(t, "history")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")

	_, err := run(t, "book", "--tenant", "Alice")
	assert.ErrorContains(t, err, "house-id")
}

func TestCommands_FailureReturnsAndClosesHistory(t *testing.T) {
	dataRoot := setupDataRoot(t)
	dbPath := filepath.Join(dataRoot, ".history", "bookings.db")

	_, err := run(t, "book", "--house-id", "42", "--tenant", "Nobody")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to book house")
	assert.FileExists(t, dbPath)
	assert.NoFileExists(t, dbPath+"-wal")

	_, err = run(t, "pay", "unknown-reference")
	assert.ErrorContains(t, err, "booking unknown-reference not found")
	assert.NoFileExists(t, dbPath+"-wal")

	out := execute(t, "stats")
	assert.Contains(t, out, "Total bookings:        0")
}
