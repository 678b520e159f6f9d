package domain

import "time"

type SessionID string

type StepResult string

const (
	StepWin  StepResult = "win"
	StepLoss StepResult = "loss"
)

func (r StepResult) Valid() bool {
	switch r {
	case StepWin, StepLoss:
		return true
	default:
		return false
	}
}

// Step is one recorded bet inside a session. Immutable once appended.
type Step struct {
	Index        int
	BetPercent   float64
	BetAmount    float64
	Result       StepResult
	PnL          float64
	BalanceAfter float64
	Timestamp    time.Time
}

// Session is one uninterrupted progression attempt. It is owned by an
// Account and becomes immutable once Active flips to false.
type Session struct {
	ID           SessionID
	StartBalance float64
	Active       bool
	Steps        []Step
	CreatedAt    time.Time
}

func (s Session) LastStep() (Step, bool) {
	if len(s.Steps) == 0 {
		return Step{}, false
	}
	return s.Steps[len(s.Steps)-1], true
}
