package cmd

import (
	"fmt"

	"github.com/bankrkit/bankr/internal/adapters/export/xlsx"
	"github.com/spf13/cobra"
)

func newExportCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full ledger to an Excel workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.service.Ledger(cmd.Context())
			if err != nil {
				return fmt.Errorf("load ledger: %w", err)
			}

			if err := xlsx.Export(out, account); err != nil {
				return fmt.Errorf("export ledger: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported ledger to %s\n", out)
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "bankroll.xlsx", "Path of the workbook to write")

	return cmd
}
