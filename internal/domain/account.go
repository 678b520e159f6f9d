package domain

import "time"

// Account owns the bankroll balance and the full session history. At most
// one session is active at a time; the active session is tracked as an
// index into Sessions so there is a single owned copy of the data.
type Account struct {
	Balance  float64
	Sessions []Session

	current int // index into Sessions, -1 when no session is active
}

func NewAccount(balance float64) Account {
	return Account{Balance: balance, current: -1}
}

// RestoreAccount rebuilds an Account from persisted state. If the loaded
// data marks more than one session active, only the last one is kept
// active; the rest are closed.
func RestoreAccount(balance float64, sessions []Session) Account {
	account := Account{Balance: balance, Sessions: sessions, current: -1}
	for i := range account.Sessions {
		if !account.Sessions[i].Active {
			continue
		}
		if account.current >= 0 {
			account.Sessions[account.current].Active = false
		}
		account.current = i
	}
	return account
}

// Init resets the account to a fresh balance, discarding all sessions.
func (a *Account) Init(balance float64) {
	a.Balance = balance
	a.Sessions = nil
	a.current = -1
}

// ActiveSession returns the active session, or nil. The pointer aliases
// the entry in Sessions; callers must not hold it across mutations.
func (a *Account) ActiveSession() *Session {
	if a.current < 0 {
		return nil
	}
	return &a.Sessions[a.current]
}

func (a *Account) StartSession(id SessionID, now time.Time) (Session, error) {
	if a.current >= 0 {
		return Session{}, ErrSessionConflict
	}

	session := Session{
		ID:           id,
		StartBalance: a.Balance,
		Active:       true,
		CreatedAt:    now,
	}
	a.Sessions = append(a.Sessions, session)
	a.current = len(a.Sessions) - 1

	return session, nil
}

// NextBet delegates to the progression rule using the active session's
// step history. Without an active session the next session would start
// at basePercent. Read-only.
func (a *Account) NextBet(basePercent, multiplier float64) Bet {
	if active := a.ActiveSession(); active != nil {
		return NextBet(active.Steps, basePercent, multiplier, a.Balance)
	}
	return NextBet(nil, basePercent, multiplier, a.Balance)
}

// RecordResult applies a realized outcome to the balance and appends a
// step to the active session. A win ends the session; so does any result
// that drives the balance to zero or below.
func (a *Account) RecordResult(betPercent, betAmount, pnl float64, result StepResult, now time.Time) (Step, error) {
	active := a.ActiveSession()
	if active == nil {
		return Step{}, ErrNoActiveSession
	}

	a.Balance = round2(a.Balance + pnl)

	step := Step{
		Index:        len(active.Steps) + 1,
		BetPercent:   betPercent,
		BetAmount:    betAmount,
		Result:       result,
		PnL:          pnl,
		BalanceAfter: a.Balance,
		Timestamp:    now,
	}
	active.Steps = append(active.Steps, step)

	if result == StepWin || a.Balance <= 0 {
		active.Active = false
		a.current = -1
	}

	return step, nil
}

// ForceEndSession deactivates the active session if there is one and
// reports whether anything changed.
func (a *Account) ForceEndSession() bool {
	active := a.ActiveSession()
	if active == nil {
		return false
	}

	active.Active = false
	a.current = -1
	return true
}
