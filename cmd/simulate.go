package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bankrkit/bankr/internal/simulation"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	var (
		balance      float64
		baseBet      float64
		multiplier   float64
		winProb      float64
		payout       float64
		targetProfit float64
		maxBet       float64
		maxRounds    int
		seed         int64
		runs         int
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a flat-stake Martingale strategy",
		Long:  "Simulate a flat-stake Martingale strategy against a bankroll: the stake is an absolute amount multiplied after each loss, independent of the percentage-based ledger.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := simulation.Config{
				StartingBalance: balance,
				BaseBet:         baseBet,
				Multiplier:      multiplier,
				WinProb:         winProb,
				Payout:          payout,
				MaxRounds:       maxRounds,
			}
			if cmd.Flags().Changed("target-profit") {
				cfg.TargetProfit = &targetProfit
			}
			if cmd.Flags().Changed("max-bet") {
				cfg.MaxBet = &maxBet
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = &seed
			}

			if runs > 1 {
				return runSimulationSweep(cmd, cfg, runs, asJSON)
			}

			result, err := simulation.Run(cfg)
			if err != nil {
				return fmt.Errorf("run simulation: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			return writeSimulationResult(cmd, cfg, result)
		},
	}

	cmd.Flags().Float64Var(&balance, "balance", 1000, "Starting balance")
	cmd.Flags().Float64Var(&baseBet, "base-bet", 1, "Initial stake in currency units")
	cmd.Flags().Float64Var(&multiplier, "multiplier", 2, "Factor applied to the stake after a loss")
	cmd.Flags().Float64Var(&winProb, "win-prob", 0.5, "Probability of winning a single round")
	cmd.Flags().Float64Var(&payout, "payout", 2, "Amount returned per unit staked on a win")
	cmd.Flags().Float64Var(&targetProfit, "target-profit", 0, "Stop once profit reaches this amount")
	cmd.Flags().Float64Var(&maxBet, "max-bet", 0, "Stop once the next stake would exceed this cap")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 10000, "Hard cap on the number of rounds")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible runs")
	cmd.Flags().IntVar(&runs, "runs", 1, "Number of independent runs; more than one aggregates into a sweep")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")

	return cmd
}

func writeSimulationResult(cmd *cobra.Command, cfg simulation.Config, result simulation.Result) error {
	out := cmd.OutOrStdout()

	if _, err := fmt.Fprintf(out, "Rounds played: %d\n", result.Rounds); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "Final balance: %.2f (started at %.2f)\n", result.FinalBalance, result.StartingBalance); err != nil {
		return err
	}

	switch result.Terminal() {
	case simulation.OutcomeBankrupt:
		_, err := fmt.Fprintln(out, "Stopped: bankrupt, the next stake could not be covered.")
		return err
	case simulation.OutcomeMaxBetExceeded:
		_, err := fmt.Fprintln(out, "Stopped: the next stake exceeded the bet cap.")
		return err
	}

	if result.TargetReached(cfg) {
		_, err := fmt.Fprintln(out, "Stopped: target profit reached.")
		return err
	}

	_, err := fmt.Fprintln(out, "Stopped: round limit reached.")
	return err
}

func runSimulationSweep(cmd *cobra.Command, cfg simulation.Config, runs int, asJSON bool) error {
	var sweep simulation.SweepResult

	err := runSweepSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Running %d simulations...", runs), func() error {
		var err error
		sweep, err = simulation.RunSweep(cmd.Context(), cfg, runs)
		return err
	})
	if err != nil {
		return fmt.Errorf("run simulation sweep: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(sweep)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Runs: %d\n", sweep.Runs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "Bankruptcies: %d\n", sweep.Bankruptcies); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "Target hits: %d\n", sweep.TargetHits); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Final balance: min %.2f, mean %.2f, max %.2f\n",
		sweep.MinFinalBalance, sweep.MeanFinalBalance, sweep.MaxFinalBalance)
	return err
}
