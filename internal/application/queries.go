package application

import (
	"time"

	"github.com/bankrkit/bankr/internal/domain"
)

// Status is a read-only snapshot of the account. Recovered reports that
// the persisted ledger could not be read and a fresh account was used
// instead.
type Status struct {
	Balance       float64
	TotalSessions int
	Recovered     bool
	ActiveSession *SessionStatus
}

type SessionStatus struct {
	ID           domain.SessionID
	StartBalance float64
	CreatedAt    time.Time
	Steps        []domain.Step
}
