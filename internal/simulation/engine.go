// Package simulation projects bankroll trajectories for a flat-stake
// Martingale progression: the stake is an absolute amount that is
// multiplied after every loss and reset after a win. This is deliberately
// independent of the account's percentage-of-balance progression; the two
// share the Martingale idea but not the stake-sizing policy.
package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var ErrInvalidConfig = errors.New("invalid simulation config")

type Outcome string

const (
	OutcomeWin            Outcome = "win"
	OutcomeLoss           Outcome = "loss"
	OutcomeBankrupt       Outcome = "bankrupt"
	OutcomeMaxBetExceeded Outcome = "max_bet_exceeded"
)

type Config struct {
	StartingBalance float64  `json:"starting_balance"`
	BaseBet         float64  `json:"base_bet"`
	Multiplier      float64  `json:"multiplier"`
	WinProb         float64  `json:"win_prob"`
	Payout          float64  `json:"payout"`
	TargetProfit    *float64 `json:"target_profit,omitempty"`
	MaxBet          *float64 `json:"max_bet,omitempty"`
	MaxRounds       int      `json:"max_rounds"`
	Seed            *int64   `json:"seed,omitempty"`
}

func (c Config) Validate() error {
	if c.StartingBalance < 0 {
		return fmt.Errorf("%w: starting balance must not be negative", ErrInvalidConfig)
	}
	if c.BaseBet <= 0 {
		return fmt.Errorf("%w: base bet must be positive", ErrInvalidConfig)
	}
	if c.Multiplier <= 0 {
		return fmt.Errorf("%w: multiplier must be positive", ErrInvalidConfig)
	}
	if c.WinProb < 0 || c.WinProb > 1 {
		return fmt.Errorf("%w: win probability must be within [0, 1]", ErrInvalidConfig)
	}
	if c.Payout < 0 {
		return fmt.Errorf("%w: payout must not be negative", ErrInvalidConfig)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("%w: max rounds must be positive", ErrInvalidConfig)
	}

	return nil
}

// Round records one simulated round. Bet is the stake actually placed
// (or, for the bankrupt/max-bet terminal rounds, the stake that could
// not be placed).
type Round struct {
	Round   int     `json:"round"`
	Bet     float64 `json:"bet"`
	Outcome Outcome `json:"outcome"`
	Balance float64 `json:"balance"`
}

type Result struct {
	StartingBalance float64 `json:"starting_balance"`
	FinalBalance    float64 `json:"final_balance"`
	Rounds          int     `json:"rounds"`
	History         []Round `json:"history"`
}

// Terminal returns the outcome of the last round, or "" for an empty
// history. Bankruptcy, max-bet and round exhaustion are expected end
// states of the process, never errors.
func (r Result) Terminal() Outcome {
	if len(r.History) == 0 {
		return ""
	}
	return r.History[len(r.History)-1].Outcome
}

// TargetReached reports whether the run stopped at or above the
// configured profit target.
func (r Result) TargetReached(cfg Config) bool {
	return cfg.TargetProfit != nil && r.FinalBalance-r.StartingBalance >= *cfg.TargetProfit
}

// Run plays the progression until a stop condition fires. With a seed the
// outcome stream is fully reproducible: identical seed and config always
// yield an identical history. The generator is request-scoped, never
// process-wide state.
func Run(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	rng := newRNG(cfg.Seed)
	balance := cfg.StartingBalance
	currentBet := cfg.BaseBet
	rounds := 0
	history := make([]Round, 0, min(cfg.MaxRounds, 1024))

	for rounds < cfg.MaxRounds {
		rounds++

		if currentBet > balance {
			history = append(history, Round{Round: rounds, Bet: currentBet, Outcome: OutcomeBankrupt, Balance: balance})
			break
		}
		if cfg.MaxBet != nil && currentBet > *cfg.MaxBet {
			history = append(history, Round{Round: rounds, Bet: currentBet, Outcome: OutcomeMaxBetExceeded, Balance: balance})
			break
		}

		staked := currentBet
		balance -= staked

		var outcome Outcome
		if rng.Float64() < cfg.WinProb {
			// Payout includes the returned stake, so the net profit per
			// win is staked * (payout - 1).
			balance += staked * cfg.Payout
			currentBet = cfg.BaseBet
			outcome = OutcomeWin
		} else {
			currentBet *= cfg.Multiplier
			outcome = OutcomeLoss
		}

		history = append(history, Round{Round: rounds, Bet: staked, Outcome: outcome, Balance: balance})

		if cfg.TargetProfit != nil && balance-cfg.StartingBalance >= *cfg.TargetProfit {
			break
		}
		if balance <= 0 {
			break
		}
	}

	return Result{
		StartingBalance: cfg.StartingBalance,
		FinalBalance:    balance,
		Rounds:          rounds,
		History:         history,
	}, nil
}

func newRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
