package services

import (
	"context"

	"github.com/finbooks/ledger/internal/core/domain"
	"github.com/finbooks/ledger/internal/dto"
)

// RegistrySvcFacade owns the chart of accounts.
type RegistrySvcFacade interface {
	// Resolve maps an account code to its account; apperrors.ErrNotFound when unknown.
	Resolve(ctx context.Context, code string) (*domain.Account, error)

	// ResolveMany resolves a batch of codes in one round trip. Codes with no
	// matching account are absent from the map; the caller decides whether
	// that is an error.
	ResolveMany(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// CreateAccount registers a new account, auto-assigning the code when the
	// request omits one. apperrors.ErrConflict when the code is taken.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)

	// UpdateAccount renames or reparents an existing account.
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error)

	// DeleteAccount removes an account with no postings;
	// apperrors.ErrHasPostings otherwise.
	DeleteAccount(ctx context.Context, code string) error

	// ListAccounts returns the flat chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// Tree assembles the chart into parent->children forests. Accounts with a
	// dangling parent pointer are promoted to roots rather than dropped.
	Tree(ctx context.Context) ([]*domain.AccountNode, error)
}
