package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finbooks/ledger/internal/apperrors"
	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/core/services"
	"github.com/finbooks/ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// journalStore is an in-memory journal backing both the write and the read
// side, with the same visibility rule as the SQL repositories: aggregates see
// POSTED and REVERSED entries, never drafts. It exists so reversal tests can
// assert on what the reports actually show after a write sequence, not just
// on which repository calls were made.
type journalStore struct {
	entries  map[int64]*domain.JournalEntry
	postings map[int64][]domain.JournalPosting
	accounts map[int64]domain.Account
	nextID   int64
	nextNum  int64
}

var (
	_ portsrepo.LedgerRepositoryFacade    = (*journalStore)(nil)
	_ portsrepo.ReportingRepositoryFacade = (*journalStore)(nil)
)

func newJournalStore(accounts ...domain.Account) *journalStore {
	s := &journalStore{
		entries:  make(map[int64]*domain.JournalEntry),
		postings: make(map[int64][]domain.JournalPosting),
		accounts: make(map[int64]domain.Account),
	}
	for _, a := range accounts {
		s.accounts[a.AccountID] = a
	}
	return s
}

func settled(status domain.EntryStatus) bool {
	return status == domain.Posted || status == domain.Reversed
}

func (s *journalStore) CreateEntry(_ context.Context, entry domain.JournalEntry, postings []domain.JournalPosting, _ bool) (*domain.JournalEntry, error) {
	s.nextID++
	entry.EntryID = s.nextID
	if entry.Status == domain.Posted {
		s.nextNum++
		num := s.nextNum
		entry.EntryNumber = &num
	}
	stored := make([]domain.JournalPosting, len(postings))
	copy(stored, postings)
	for i := range stored {
		stored[i].EntryID = entry.EntryID
	}
	s.entries[entry.EntryID] = &entry
	s.postings[entry.EntryID] = stored
	return &entry, nil
}

func (s *journalStore) MarkReversed(_ context.Context, entryID, reversingEntryID int64, _ *domain.DocumentRef, _ string, _ time.Time) error {
	entry, ok := s.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	entry.Status = domain.Reversed
	entry.ReversingEntryID = &reversingEntryID
	return nil
}

func (s *journalStore) FindEntryByID(_ context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *entry
	return &cp, nil
}

func (s *journalStore) FindPostingsByEntryID(_ context.Context, entryID int64) ([]domain.JournalPosting, error) {
	out := make([]domain.JournalPosting, len(s.postings[entryID]))
	copy(out, s.postings[entryID])
	return out, nil
}

func (s *journalStore) PostDraft(context.Context, int64, string, time.Time) (*domain.JournalEntry, error) {
	return nil, errors.New("not used here")
}

func (s *journalStore) DeleteDraft(context.Context, int64) error {
	return errors.New("not used here")
}

func (s *journalStore) ListEntries(context.Context, portsrepo.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	return nil, nil, errors.New("not used here")
}

func (s *journalStore) GetAccountActivity(_ context.Context, accountID int64, _ *time.Time) (debit, credit decimal.Decimal, err error) {
	debit, credit = decimal.Zero, decimal.Zero
	for entryID, lines := range s.postings {
		if !settled(s.entries[entryID].Status) {
			continue
		}
		for _, p := range lines {
			if p.AccountID != accountID {
				continue
			}
			debit = debit.Add(p.Debit)
			credit = credit.Add(p.Credit)
		}
	}
	return debit, credit, nil
}

func (s *journalStore) GetTrialBalanceData(_ context.Context, _ domain.ReportFilter) ([]domain.TrialBalanceRow, error) {
	totals := make(map[int64]*domain.TrialBalanceRow)
	for entryID, lines := range s.postings {
		if !settled(s.entries[entryID].Status) {
			continue
		}
		for _, p := range lines {
			row, ok := totals[p.AccountID]
			if !ok {
				account := s.accounts[p.AccountID]
				row = &domain.TrialBalanceRow{
					AccountCode: account.Code,
					AccountName: account.Name,
					AccountType: account.AccountType,
					Debit:       decimal.Zero,
					Credit:      decimal.Zero,
				}
				totals[p.AccountID] = row
			}
			row.Debit = row.Debit.Add(p.Debit)
			row.Credit = row.Credit.Add(p.Credit)
		}
	}
	rows := make([]domain.TrialBalanceRow, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (s *journalStore) GetBalanceSheetData(context.Context, time.Time) (assets, liabilities, equity []domain.AccountAmount, err error) {
	return nil, nil, nil, errors.New("not used here")
}

func (s *journalStore) GetIncomeStatementData(context.Context, time.Time, time.Time) (revenue, expenses []domain.AccountAmount, err error) {
	return nil, nil, errors.New("not used here")
}

func (s *journalStore) GetAccountLedger(context.Context, int64, domain.ReportFilter, int, *string) ([]domain.LedgerLine, *string, error) {
	return nil, nil, errors.New("not used here")
}

// ReversalNettingTestSuite drives a post-then-reverse sequence through the
// real writer and reader services against one shared store, and asserts the
// reports come back exactly where they started.
type ReversalNettingTestSuite struct {
	suite.Suite
	store        *journalStore
	mockRegistry *MockRegistryService
	mockPeriods  *MockPeriodService
	ledger       portssvc.LedgerSvcFacade
	reports      portssvc.ReportingSvcFacade
	cashAccount  domain.Account
	salesAccount domain.Account
	vatAccount   domain.Account
}

func (suite *ReversalNettingTestSuite) SetupTest() {
	suite.cashAccount = domain.Account{
		AccountID:        1,
		Code:             "1110",
		Name:             "Cash",
		AccountType:      domain.Asset,
		Nature:           domain.DebitNature,
		AllowManualEntry: true,
		OpeningBalance:   decimal.NewFromInt(1000),
	}
	suite.salesAccount = domain.Account{
		AccountID:   2,
		Code:        "4100",
		Name:        "Sales",
		AccountType: domain.Revenue,
		Nature:      domain.CreditNature,
	}
	suite.vatAccount = domain.Account{
		AccountID:   3,
		Code:        "2310",
		Name:        "VAT payable",
		AccountType: domain.Liability,
		Nature:      domain.CreditNature,
	}

	suite.store = newJournalStore(suite.cashAccount, suite.salesAccount, suite.vatAccount)
	suite.mockRegistry = new(MockRegistryService)
	suite.mockPeriods = new(MockPeriodService)
	suite.ledger = services.NewLedgerService(suite.store, new(MockDocumentRepository), suite.mockRegistry, suite.mockPeriods)
	suite.reports = services.NewReportingService(suite.store, suite.mockRegistry)
}

func (suite *ReversalNettingTestSuite) TestReversedPairNetsToZero() {
	ctx := context.Background()

	accountsByCode := map[string]domain.Account{
		"1110": suite.cashAccount,
		"4100": suite.salesAccount,
		"2310": suite.vatAccount,
	}
	suite.mockRegistry.On("ResolveMany", ctx, []string{"1110", "4100", "2310"}).Return(accountsByCode, nil)
	suite.mockRegistry.On("Resolve", ctx, "1110").Return(&suite.cashAccount, nil)
	suite.mockRegistry.On("Resolve", ctx, "4100").Return(&suite.salesAccount, nil)
	suite.mockRegistry.On("Resolve", ctx, "2310").Return(&suite.vatAccount, nil)
	suite.mockPeriods.On("EnsureOpen", ctx, mock.AnythingOfType("time.Time")).Return(nil)

	req := dto.PostingRequest{
		Description: "Cash sale incl. VAT",
		Date:        "2026-03-15",
		Lines: []dto.PostingLineRequest{
			{AccountCode: "1110", Debit: decimal.NewFromInt(115)},
			{AccountCode: "4100", Credit: decimal.NewFromInt(100)},
			{AccountCode: "2310", Credit: decimal.NewFromInt(15)},
		},
	}
	posted, err := suite.ledger.Post(ctx, req, "clerk-1")
	suite.Require().NoError(err)

	// Sanity check before reversing: the sale moved the balances.
	balance, err := suite.reports.AccountBalance(ctx, "1110", nil)
	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1115)), "got %s", balance)

	_, err = suite.ledger.Reverse(ctx, posted.EntryID, "clerk-1")
	suite.Require().NoError(err)

	// Every balance is back at its opening value.
	for code, opening := range map[string]decimal.Decimal{
		"1110": decimal.NewFromInt(1000),
		"4100": decimal.Zero,
		"2310": decimal.Zero,
	} {
		balance, err := suite.reports.AccountBalance(ctx, code, nil)
		suite.Require().NoError(err)
		suite.True(balance.Equal(opening), "account %s: got %s, want %s", code, balance, opening)
	}

	// The trial balance still balances and every row nets to zero: the
	// reversed original and its mirror both count, cancelling exactly.
	tb, err := suite.reports.TrialBalance(ctx, domain.ReportFilter{})
	suite.Require().NoError(err)
	suite.True(tb.Balanced())
	suite.Require().Len(tb.Rows, 3)
	for _, row := range tb.Rows {
		suite.True(row.Debit.Equal(row.Credit), "account %s: debit %s vs credit %s", row.AccountCode, row.Debit, row.Credit)
	}
	suite.True(tb.TotalDebit.Equal(decimal.NewFromInt(230)), "got %s", tb.TotalDebit)
}

func TestReversalNettingTestSuite(t *testing.T) {
	suite.Run(t, new(ReversalNettingTestSuite))
}
