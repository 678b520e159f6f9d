package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankrkit/bankr/internal/domain"
	"github.com/bankrkit/bankr/internal/ports"
	"github.com/google/uuid"
)

// Service drives a single account: every mutating operation loads the
// persisted ledger, applies the change in memory, and writes the full
// state back before returning. A failed write surfaces as an error while
// the in-memory mutation is already applied; callers observe a
// consistent memory/disk pair only after a successful call.
type Service struct {
	repo  ports.LedgerRepository
	clock ports.Clock
	newID func() domain.SessionID
}

func NewService(repo ports.LedgerRepository, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		repo:  repo,
		clock: clock,
		newID: func() domain.SessionID { return domain.SessionID(uuid.NewString()) },
	}
}

// load reads the persisted account, degrading to a fresh empty account
// when the stored state cannot be read. The recovered flag makes that
// fallback observable. Context cancellation still propagates.
func (s *Service) load(ctx context.Context) (domain.Account, bool, error) {
	account, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Account{}, false, err
		}
		return domain.NewAccount(0), true, nil
	}

	return account, false, nil
}

func (s *Service) InitAccount(ctx context.Context, balance float64) (Status, error) {
	if balance < 0 {
		return Status{}, fmt.Errorf("%w: balance must not be negative", domain.ErrInvalidConfig)
	}

	account, _, err := s.load(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("load ledger: %w", err)
	}

	account.Init(balance)

	if err := s.repo.Save(ctx, account); err != nil {
		return Status{}, fmt.Errorf("save ledger: %w", err)
	}

	return statusFromAccount(account, false), nil
}

func (s *Service) StartSession(ctx context.Context) (domain.Session, error) {
	account, _, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load ledger: %w", err)
	}

	session, err := account.StartSession(s.newID(), s.clock.Now())
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.repo.Save(ctx, account); err != nil {
		return domain.Session{}, fmt.Errorf("save ledger: %w", err)
	}

	return session, nil
}

// NextBet sizes the next stake without mutating any state.
func (s *Service) NextBet(ctx context.Context, basePercent, multiplier float64) (domain.Bet, error) {
	if basePercent <= 0 || basePercent > 1 {
		return domain.Bet{}, fmt.Errorf("%w: base percent must be within (0, 1]", domain.ErrInvalidConfig)
	}
	if multiplier <= 0 {
		return domain.Bet{}, fmt.Errorf("%w: multiplier must be positive", domain.ErrInvalidConfig)
	}

	account, _, err := s.load(ctx)
	if err != nil {
		return domain.Bet{}, fmt.Errorf("load ledger: %w", err)
	}

	return account.NextBet(basePercent, multiplier), nil
}

func (s *Service) RecordResult(ctx context.Context, cmd RecordResultCommand) (domain.Step, error) {
	if !cmd.Result.Valid() {
		return domain.Step{}, fmt.Errorf("%w: result must be %q or %q", domain.ErrInvalidConfig, domain.StepWin, domain.StepLoss)
	}

	account, _, err := s.load(ctx)
	if err != nil {
		return domain.Step{}, fmt.Errorf("load ledger: %w", err)
	}

	step, err := account.RecordResult(cmd.BetPercent, cmd.BetAmount, cmd.PnL, cmd.Result, s.clock.Now())
	if err != nil {
		return domain.Step{}, err
	}

	if err := s.repo.Save(ctx, account); err != nil {
		return domain.Step{}, fmt.Errorf("save ledger: %w", err)
	}

	return step, nil
}

// ForceEndSession deactivates the current session and reports whether
// one was active. Ending nothing is not an error and does not persist.
func (s *Service) ForceEndSession(ctx context.Context) (bool, error) {
	account, _, err := s.load(ctx)
	if err != nil {
		return false, fmt.Errorf("load ledger: %w", err)
	}

	if !account.ForceEndSession() {
		return false, nil
	}

	if err := s.repo.Save(ctx, account); err != nil {
		return false, fmt.Errorf("save ledger: %w", err)
	}

	return true, nil
}

func (s *Service) GetStatus(ctx context.Context) (Status, error) {
	account, recovered, err := s.load(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("load ledger: %w", err)
	}

	return statusFromAccount(account, recovered), nil
}

// Ledger exposes the full persisted account for reporting collaborators
// such as the spreadsheet exporter.
func (s *Service) Ledger(ctx context.Context) (domain.Account, error) {
	account, _, err := s.load(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("load ledger: %w", err)
	}

	return account, nil
}

func statusFromAccount(account domain.Account, recovered bool) Status {
	status := Status{
		Balance:       account.Balance,
		TotalSessions: len(account.Sessions),
		Recovered:     recovered,
	}

	if active := account.ActiveSession(); active != nil {
		steps := make([]domain.Step, len(active.Steps))
		copy(steps, active.Steps)
		status.ActiveSession = &SessionStatus{
			ID:           active.ID,
			StartBalance: active.StartBalance,
			CreatedAt:    active.CreatedAt,
			Steps:        steps,
		}
	}

	return status
}
