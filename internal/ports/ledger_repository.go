package ports

import (
	"context"

	"github.com/bankrkit/bankr/internal/domain"
)

// LedgerRepository persists the whole account state. Load on a missing
// store returns a fresh empty account; only unreadable or malformed
// state is an error.
type LedgerRepository interface {
	Load(ctx context.Context) (domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
}
