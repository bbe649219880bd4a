package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/dto"
)

// typeBlocks maps an account type to its conventional top-level code block,
// used when auto-assigning a code for a root account with no siblings.
var typeBlocks = map[domain.AccountType]string{
	domain.Asset:     "1",
	domain.Liability: "2",
	domain.Equity:    "3",
	domain.Revenue:   "4",
	domain.Expense:   "5",
}

// registryService owns the chart of accounts.
type registryService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewRegistryService creates a new account registry service.
func NewRegistryService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.RegistrySvcFacade {
	return &registryService{accountRepo: accountRepo}
}

var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

// Resolve maps an account code to its account.
func (s *registryService) Resolve(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account code %s: %w", code, err)
	}
	return account, nil
}

// ResolveMany resolves a batch of codes in one round trip.
func (s *registryService) ResolveMany(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByCodes(ctx, codes)
}

// CreateAccount registers a new account, auto-assigning the code when omitted.
func (s *registryService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	accountType := domain.AccountType(req.Type)

	nature := domain.NormalNature(accountType)
	if req.Nature != "" {
		requested := domain.AccountNature(req.Nature)
		if requested != nature && !req.Contra {
			return nil, fmt.Errorf("%w: nature %s is inconsistent with type %s; set contra to override",
				apperrors.ErrValidation, requested, accountType)
		}
		nature = requested
	}

	var parent *domain.Account
	if req.ParentCode != "" {
		var err error
		parent, err = s.accountRepo.FindAccountByCode(ctx, req.ParentCode)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent code %s: %w", req.ParentCode, err)
		}
	}

	code := req.Code
	if code == "" {
		var err error
		code, err = s.nextCode(ctx, parent, accountType)
		if err != nil {
			return nil, err
		}
	}

	allowManual := true
	if req.AllowManualEntry != nil {
		allowManual = *req.AllowManualEntry
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:             code,
		Name:             req.Name,
		LocalName:        req.LocalName,
		AccountType:      accountType,
		Nature:           nature,
		OpeningBalance:   req.OpeningBalance,
		AllowManualEntry: allowManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if parent != nil {
		account.ParentAccountID = &parent.AccountID
	}

	id, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	account.AccountID = id

	s.LogInfo(ctx, "Account created", slog.String("code", code), slog.String("type", string(accountType)))
	return &account, nil
}

// nextCode computes the auto-assigned code for a new account: numeric
// increment of the highest existing sibling code, falling back to
// parentCode+"01" (or the type's top-level block for roots) when there are
// no usable siblings.
func (s *registryService) nextCode(ctx context.Context, parent *domain.Account, accountType domain.AccountType) (string, error) {
	var parentID *int64
	if parent != nil {
		parentID = &parent.AccountID
	}

	siblings, err := s.accountRepo.ListSiblingCodes(ctx, parentID)
	if err != nil {
		return "", fmt.Errorf("failed to list sibling codes: %w", err)
	}

	var numeric []int64
	width := 0
	for _, code := range siblings {
		n, convErr := strconv.ParseInt(code, 10, 64)
		if convErr != nil {
			continue // non-numeric codes don't participate in auto-assignment
		}
		numeric = append(numeric, n)
		if len(code) > width {
			width = len(code)
		}
	}

	if len(numeric) == 0 {
		if parent != nil {
			return parent.Code + "01", nil
		}
		return typeBlocks[accountType], nil
	}

	sort.Slice(numeric, func(i, j int) bool { return numeric[i] < numeric[j] })
	next := numeric[len(numeric)-1] + 1
	return fmt.Sprintf("%0*d", width, next), nil
}

// UpdateAccount renames or reparents an existing account.
func (s *registryService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account code %s: %w", code, err)
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.LocalName != nil {
		account.LocalName = *req.LocalName
		updated = true
	}
	if req.ParentCode != nil {
		if *req.ParentCode == "" {
			account.ParentAccountID = nil
		} else {
			parent, perr := s.accountRepo.FindAccountByCode(ctx, *req.ParentCode)
			if perr != nil {
				return nil, fmt.Errorf("failed to resolve parent code %s: %w", *req.ParentCode, perr)
			}
			if cerr := s.checkNoCycle(ctx, account.AccountID, parent); cerr != nil {
				return nil, cerr
			}
			account.ParentAccountID = &parent.AccountID
		}
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = actor

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("code", code))
		return nil, fmt.Errorf("failed to update account %s: %w", code, err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("code", code))
	return account, nil
}

// checkNoCycle walks up from the proposed parent; hitting the account being
// reparented would create a cycle in the tree.
func (s *registryService) checkNoCycle(ctx context.Context, accountID int64, parent *domain.Account) error {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accounts for cycle check: %w", err)
	}
	byID := make(map[int64]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}

	for cur := parent; cur != nil; {
		if cur.AccountID == accountID {
			return fmt.Errorf("%w: reparenting would create a cycle", apperrors.ErrValidation)
		}
		if cur.ParentAccountID == nil {
			break
		}
		next, ok := byID[*cur.ParentAccountID]
		if !ok {
			break // dangling parent; the auditor reports it
		}
		cur = &next
	}
	return nil
}

// DeleteAccount removes an account that has no postings.
func (s *registryService) DeleteAccount(ctx context.Context, code string) error {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to resolve account code %s: %w", code, err)
	}

	count, err := s.accountRepo.CountPostingsByAccount(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to count postings for account %s: %w", code, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: account %s has %d postings", apperrors.ErrHasPostings, code, count)
	}

	if err := s.accountRepo.DeleteAccount(ctx, account.AccountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("code", code))
		return fmt.Errorf("failed to delete account %s: %w", code, err)
	}

	s.LogInfo(ctx, "Account deleted", slog.String("code", code))
	return nil
}

// ListAccounts returns the flat chart ordered by code.
func (s *registryService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// Tree assembles the chart into parent->children forests in one arena pass.
// Accounts whose parent pointer doesn't resolve are promoted to roots rather
// than dropped; the Reconciliation Auditor reports them separately.
func (s *registryService) Tree(ctx context.Context) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	nodes := make(map[int64]*domain.AccountNode, len(accounts))
	for _, a := range accounts {
		nodes[a.AccountID] = &domain.AccountNode{Account: a, Children: []*domain.AccountNode{}}
	}

	var roots []*domain.AccountNode
	for _, a := range accounts { // preserve repository (code) order
		node := nodes[a.AccountID]
		if a.ParentAccountID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*a.ParentAccountID]
		if !ok {
			// Dangling parent pointer: promote to root.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}
