package application

import "github.com/bankrkit/bankr/internal/domain"

// Default progression parameters used by callers that do not supply
// their own configuration.
const (
	DefaultBasePercent = 0.02
	DefaultMultiplier  = 2.0
)

type RecordResultCommand struct {
	BetPercent float64
	BetAmount  float64
	PnL        float64
	Result     domain.StepResult
}
