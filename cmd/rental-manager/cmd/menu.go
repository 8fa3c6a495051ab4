package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/console"
)

// menuCmd represents the interactive menu command.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	Long: `Run the interactive text menu.

Each command is read from standard input and executed to completion,
including its file writes, before the next one is read. A failing
command is reported and the menu continues. End input or choose Exit
to quit.`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.Close()

	c := console.New(s.repo, s.booking, os.Stdin, cmd.OutOrStdout())
	if err := c.Run(cmd.Context()); err != nil {
		return commandError(err, "menu stopped")
	}
	return nil
}
