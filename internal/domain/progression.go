package domain

import "math"

// MinBetAmount is the smallest stake the rule will size, one cent.
const MinBetAmount = 0.01

type Bet struct {
	Percent float64
	Amount  float64
}

// NextBet sizes the next stake as a percentage of the current balance.
// The first bet of a session uses basePercent; a loss multiplies the
// previous percentage by multiplier; a win resets to basePercent.
// basePercent must be in (0, 1]. multiplier must be > 1 for the
// progression to grow; neither is enforced here.
func NextBet(steps []Step, basePercent, multiplier, balance float64) Bet {
	percent := basePercent
	if len(steps) > 0 {
		if last := steps[len(steps)-1]; last.Result == StepLoss {
			percent = last.BetPercent * multiplier
		}
	}

	amount := round2(balance * percent)
	if amount < MinBetAmount {
		amount = MinBetAmount
	}

	return Bet{Percent: percent, Amount: amount}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
