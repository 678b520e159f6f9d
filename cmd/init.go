package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newInitCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init <balance>",
		Short: "Initialize the ledger with a starting balance",
		Long:  "Initialize the ledger with a starting balance, discarding any previously recorded sessions.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse balance %q: %w", args[0], err)
			}

			status, err := app.service.InitAccount(cmd.Context(), balance)
			if err != nil {
				return fmt.Errorf("initialize account: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledger with balance %.2f\n", status.Balance)
			return err
		},
	}
}
