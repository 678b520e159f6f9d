package cmd

import (
	"fmt"

	"github.com/bankrkit/bankr/internal/application"
	"github.com/bankrkit/bankr/internal/domain"
	"github.com/spf13/cobra"
)

func newRecordCmd(app *app) *cobra.Command {
	var (
		pnl         float64
		betPercent  float64
		betAmount   float64
		basePercent float64
		multiplier  float64
	)

	cmd := &cobra.Command{
		Use:       "record <win|loss>",
		Short:     "Record a bet result against the active session",
		Long:      "Record a win or loss against the active session. Unless overridden, the bet size is taken from the progression rule and the profit or loss equals the stake.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.StepWin), string(domain.StepLoss)},
		RunE: func(cmd *cobra.Command, args []string) error {
			result := domain.StepResult(args[0])

			if !cmd.Flags().Changed("bet-percent") || !cmd.Flags().Changed("bet-amount") {
				bet, err := app.service.NextBet(cmd.Context(), basePercent, multiplier)
				if err != nil {
					return fmt.Errorf("size next bet: %w", err)
				}
				if !cmd.Flags().Changed("bet-percent") {
					betPercent = bet.Percent
				}
				if !cmd.Flags().Changed("bet-amount") {
					betAmount = bet.Amount
				}
			}

			if !cmd.Flags().Changed("pnl") {
				pnl = betAmount
				if result == domain.StepLoss {
					pnl = -betAmount
				}
			}

			step, err := app.service.RecordResult(cmd.Context(), application.RecordResultCommand{
				BetPercent: betPercent,
				BetAmount:  betAmount,
				PnL:        pnl,
				Result:     result,
			})
			if err != nil {
				return fmt.Errorf("record result: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Step %d: %s %.2f (%.2f%%), pnl %+.2f, balance %.2f\n",
				step.Index, step.Result, step.BetAmount, step.BetPercent*100, step.PnL, step.BalanceAfter)
			return err
		},
	}

	cmd.Flags().Float64Var(&pnl, "pnl", 0, "Realized profit or loss; defaults to the stake, negated on a loss")
	cmd.Flags().Float64Var(&betPercent, "bet-percent", 0, "Bet size as a fraction of the balance; defaults to the progression rule")
	cmd.Flags().Float64Var(&betAmount, "bet-amount", 0, "Bet amount in currency units; defaults to the progression rule")
	cmd.Flags().Float64Var(&basePercent, "base-percent", application.DefaultBasePercent, "Base bet size used when inferring the stake")
	cmd.Flags().Float64Var(&multiplier, "multiplier", application.DefaultMultiplier, "Loss multiplier used when inferring the stake")

	return cmd
}
