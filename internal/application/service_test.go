package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bankrkit/bankr/internal/domain"
	"github.com/bankrkit/bankr/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceInitAccountResetsAndPersists(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{account: accountWithOpenSession(t, 50)}
	service := newTestService(repo)

	status, err := service.InitAccount(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, status.Balance)
	assert.Zero(t, status.TotalSessions)
	assert.Nil(t, status.ActiveSession)
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 1000.0, repo.account.Balance)
	assert.Empty(t, repo.account.Sessions)
}

func TestServiceInitAccountRejectsNegativeBalance(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{}
	service := newTestService(repo)

	_, err := service.InitAccount(context.Background(), -1)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Zero(t, repo.saves)
}

func TestServiceStartSessionAssignsIDAndPersists(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{account: domain.NewAccount(1000)}
	service := newTestService(repo)

	session, err := service.StartSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID("sess-1"), session.ID)
	assert.Equal(t, 1000.0, session.StartBalance)
	assert.Equal(t, testNow, session.CreatedAt)
	assert.Equal(t, 1, repo.saves)
}

func TestServiceStartSessionConflict(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{account: accountWithOpenSession(t, 1000)}
	service := newTestService(repo)

	_, err := service.StartSession(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionConflict)
	assert.Zero(t, repo.saves)
}

func TestServiceNextBetValidatesInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		basePercent float64
		multiplier  float64
	}{
		{name: "zero base percent", basePercent: 0, multiplier: 2},
		{name: "negative base percent", basePercent: -0.02, multiplier: 2},
		{name: "base percent above one", basePercent: 1.01, multiplier: 2},
		{name: "zero multiplier", basePercent: 0.02, multiplier: 0},
	}

	service := newTestService(&inMemoryLedgerRepo{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.NextBet(context.Background(), tt.basePercent, tt.multiplier)
			require.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestServiceBetFlowMatchesProgression(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{account: domain.NewAccount(1000)}
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.StartSession(ctx)
	require.NoError(t, err)

	bet, err := service.NextBet(ctx, 0.02, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, bet.Percent, 1e-12)
	assert.InDelta(t, 20.0, bet.Amount, 1e-9)

	step, err := service.RecordResult(ctx, RecordResultCommand{
		BetPercent: bet.Percent,
		BetAmount:  bet.Amount,
		PnL:        -bet.Amount,
		Result:     domain.StepLoss,
	})
	require.NoError(t, err)
	assert.Equal(t, 980.0, step.BalanceAfter)
	assert.Equal(t, testNow, step.Timestamp)

	bet, err = service.NextBet(ctx, 0.02, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.04, bet.Percent, 1e-12)
	assert.InDelta(t, 39.20, bet.Amount, 1e-9)
}

func TestServiceRecordResultRejectsUnknownResult(t *testing.T) {
	t.Parallel()

	service := newTestService(&inMemoryLedgerRepo{account: accountWithOpenSession(t, 1000)})

	_, err := service.RecordResult(context.Background(), RecordResultCommand{Result: domain.StepResult("push")})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestServiceRecordResultWithoutSession(t *testing.T) {
	t.Parallel()

	service := newTestService(&inMemoryLedgerRepo{account: domain.NewAccount(1000)})

	_, err := service.RecordResult(context.Background(), RecordResultCommand{
		BetPercent: 0.02, BetAmount: 20, PnL: -20, Result: domain.StepLoss,
	})
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestServiceRecordWinEndsSession(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{account: accountWithOpenSession(t, 1000)}
	service := newTestService(repo)

	_, err := service.RecordResult(context.Background(), RecordResultCommand{
		BetPercent: 0.02, BetAmount: 20, PnL: 20, Result: domain.StepWin,
	})
	require.NoError(t, err)

	status, err := service.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status.ActiveSession)
	assert.Equal(t, 1020.0, status.Balance)
}

func TestServiceForceEndSessionPersistsOnlyWhenActive(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{account: domain.NewAccount(1000)}
	service := newTestService(repo)

	ended, err := service.ForceEndSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ended)
	assert.Zero(t, repo.saves)

	_, err = service.StartSession(context.Background())
	require.NoError(t, err)
	ended, err = service.ForceEndSession(context.Background())
	require.NoError(t, err)
	assert.True(t, ended)
	assert.Equal(t, 2, repo.saves)
}

func TestServiceSaveFailureSurfacesToCaller(t *testing.T) {
	t.Parallel()

	saveErr := errors.New("disk full")
	repo := &inMemoryLedgerRepo{account: domain.NewAccount(1000), saveErr: saveErr}
	service := newTestService(repo)

	_, err := service.StartSession(context.Background())
	require.ErrorIs(t, err, saveErr)
}

func TestServiceLoadFailureDegradesToFreshAccount(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{loadErr: errors.New("decode ledger file: corrupt")}
	service := newTestService(repo)

	status, err := service.GetStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Recovered)
	assert.Zero(t, status.Balance)
	assert.Nil(t, status.ActiveSession)
}

func TestServiceLoadContextCancellationIsNotRecovered(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &canceledLedgerRepo{}
	service := newTestService(repo)

	_, err := service.GetStatus(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestServiceStatusCopiesSteps(t *testing.T) {
	t.Parallel()

	repo := &inMemoryLedgerRepo{account: accountWithOpenSession(t, 1000)}
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.RecordResult(ctx, RecordResultCommand{
		BetPercent: 0.02, BetAmount: 20, PnL: -20, Result: domain.StepLoss,
	})
	require.NoError(t, err)

	status, err := service.GetStatus(ctx)
	require.NoError(t, err)
	require.NotNil(t, status.ActiveSession)
	require.Len(t, status.ActiveSession.Steps, 1)

	status.ActiveSession.Steps[0].PnL = 999
	fresh, err := service.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, -20.0, fresh.ActiveSession.Steps[0].PnL)
}

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newTestService(repo ports.LedgerRepository) *Service {
	service := NewService(repo, fixedClock{now: testNow})

	next := 0
	service.newID = func() domain.SessionID {
		next++
		return domain.SessionID("sess-" + string(rune('0'+next)))
	}

	return service
}

func accountWithOpenSession(t *testing.T, balance float64) domain.Account {
	t.Helper()

	account := domain.NewAccount(balance)
	_, err := account.StartSession("sess-open", testNow)
	require.NoError(t, err)
	return account
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

type inMemoryLedgerRepo struct {
	account domain.Account
	loadErr error
	saveErr error
	saves   int
}

func (r *inMemoryLedgerRepo) Load(_ context.Context) (domain.Account, error) {
	if r.loadErr != nil {
		return domain.Account{}, r.loadErr
	}
	return domain.RestoreAccount(r.account.Balance, append([]domain.Session(nil), r.account.Sessions...)), nil
}

func (r *inMemoryLedgerRepo) Save(_ context.Context, account domain.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.account = account
	return nil
}

type canceledLedgerRepo struct{}

func (canceledLedgerRepo) Load(ctx context.Context) (domain.Account, error) {
	return domain.Account{}, ctx.Err()
}

func (canceledLedgerRepo) Save(ctx context.Context, _ domain.Account) error {
	return ctx.Err()
}
