package repositories

import (
	"context"

	"github.com/finbooks/ledger/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of accounts.
type AccountRepositoryFacade interface {
	// SaveAccount inserts a new account and returns its generated id.
	// Returns apperrors.ErrDuplicate when the code is already taken.
	SaveAccount(ctx context.Context, account domain.Account) (int64, error)

	// FindAccountByCode retrieves an account by its user-facing code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves a batch of accounts keyed by code.
	// Codes with no matching row are simply absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns every account, ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListSiblingCodes returns the codes of accounts sharing the given parent
	// (nil for top-level accounts), used for auto-assignment of new codes.
	ListSiblingCodes(ctx context.Context, parentAccountID *int64) ([]string, error)

	// UpdateAccount persists name/localName/parent changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row. The caller must have verified the
	// posting count is zero.
	DeleteAccount(ctx context.Context, accountID int64) error

	// CountPostingsByAccount returns the number of posting lines targeting the account.
	CountPostingsByAccount(ctx context.Context, accountID int64) (int64, error)
}
