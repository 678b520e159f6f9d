package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Balance  float64         `toml:"balance"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported ledger schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ID           string       `toml:"id"`
	StartBalance float64      `toml:"start_balance"`
	Active       bool         `toml:"active"`
	CreatedAt    string       `toml:"created_at"`
	Steps        []stepSchema `toml:"steps,omitempty"`
}

type stepSchema struct {
	Index        int     `toml:"index"`
	BetPercent   float64 `toml:"bet_percent"`
	BetAmount    float64 `toml:"bet_amount"`
	Result       string  `toml:"result"`
	PnL          float64 `toml:"pnl"`
	BalanceAfter float64 `toml:"balance_after"`
	Timestamp    string  `toml:"timestamp"`
}
