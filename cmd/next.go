package cmd

import (
	"fmt"

	"github.com/bankrkit/bankr/internal/application"
	"github.com/spf13/cobra"
)

func newNextCmd(app *app) *cobra.Command {
	var (
		basePercent float64
		multiplier  float64
	)

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next stake sized from the current balance",
		Long:  "Show the stake the progression rule would place next: the base percentage of the balance, or the previous percentage multiplied after a loss.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bet, err := app.service.NextBet(cmd.Context(), basePercent, multiplier)
			if err != nil {
				return fmt.Errorf("size next bet: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Next bet: %.2f (%.2f%% of balance)\n", bet.Amount, bet.Percent*100)
			return err
		},
	}

	cmd.Flags().Float64Var(&basePercent, "base-percent", application.DefaultBasePercent, "Base bet size as a fraction of the balance")
	cmd.Flags().Float64Var(&multiplier, "multiplier", application.DefaultMultiplier, "Factor applied to the bet percentage after a loss")

	return cmd
}
