package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bankr",
		Short:         "bankr: percentage-based Martingale bankroll tracker",
		Long:          "bankr tracks a bankroll through loss-doubling betting sessions, sizes the next stake as a percentage of the current balance, simulates flat-stake strategies, and exports the ledger to Excel.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(app),
		newStatusCmd(app),
		newSessionCmd(app),
		newNextCmd(app),
		newRecordCmd(app),
		newSimulateCmd(),
		newExportCmd(app),
	)

	return rootCmd
}
