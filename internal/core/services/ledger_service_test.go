package services_test

import (
	"context"
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

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, postings []domain.JournalPosting, linkDocument bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, postings, linkDocument)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) PostDraft(ctx context.Context, entryID int64, actor string, now time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actor, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) MarkReversed(ctx context.Context, entryID int64, reversingEntryID int64, clearRef *domain.DocumentRef, actor string, now time.Time) error {
	args := m.Called(ctx, entryID, reversingEntryID, clearRef, actor, now)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindPostingsByEntryID(ctx context.Context, entryID int64) ([]domain.JournalPosting, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalPosting), args.Error(1)
}

func (m *MockLedgerRepository) DeleteDraft(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), nextToken, args.Error(2)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocument(ctx context.Context, ref domain.DocumentRef) (*domain.Document, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) CreateDocument(ctx context.Context, kind string, doc domain.Document) (int64, error) {
	args := m.Called(ctx, kind, doc)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock RegistryService (as used by LedgerService) ---
type MockRegistryService struct {
	mock.Mock
}

var _ portssvc.RegistrySvcFacade = (*MockRegistryService)(nil)

func (m *MockRegistryService) Resolve(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) ResolveMany(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockRegistryService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, code, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) DeleteAccount(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockRegistryService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockRegistryService) Tree(ctx context.Context) ([]*domain.AccountNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}

// --- Mock PeriodService (as used by LedgerService) ---
type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) IsOpen(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodService) EnsureOpen(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *MockPeriodService) Open(ctx context.Context, periodKey string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) Close(ctx context.Context, periodKey string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) List(ctx context.Context) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockDocRepo    *MockDocumentRepository
	mockRegistry   *MockRegistryService
	mockPeriods    *MockPeriodService
	service        portssvc.LedgerSvcFacade
	cashAccount    domain.Account
	salesAccount   domain.Account
	vatAccount     domain.Account
	actor          string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockRegistry = new(MockRegistryService)
	suite.mockPeriods = new(MockPeriodService)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockDocRepo, suite.mockRegistry, suite.mockPeriods)

	suite.actor = "clerk-1"
	suite.cashAccount = domain.Account{
		AccountID:        1,
		Code:             "1110",
		Name:             "Cash",
		AccountType:      domain.Asset,
		Nature:           domain.DebitNature,
		AllowManualEntry: true,
	}
	suite.salesAccount = domain.Account{
		AccountID:        2,
		Code:             "4100",
		Name:             "Sales",
		AccountType:      domain.Revenue,
		Nature:           domain.CreditNature,
		AllowManualEntry: false,
	}
	suite.vatAccount = domain.Account{
		AccountID:        3,
		Code:             "2310",
		Name:             "VAT payable",
		AccountType:      domain.Liability,
		Nature:           domain.CreditNature,
		AllowManualEntry: false,
	}
}

func (suite *LedgerServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.Code] = a
	}
	return out
}

func (suite *LedgerServiceTestSuite) cashSaleRequest() dto.PostingRequest {
	return dto.PostingRequest{
		Description: "Cash sale incl. VAT",
		Date:        "2026-03-15",
		Lines: []dto.PostingLineRequest{
			{AccountCode: "1110", Debit: decimal.NewFromInt(115)},
			{AccountCode: "4100", Credit: decimal.NewFromInt(100)},
			{AccountCode: "2310", Credit: decimal.NewFromInt(15)},
		},
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestPost_CashSale_Success() {
	ctx := context.Background()
	req := suite.cashSaleRequest()

	suite.mockRegistry.On("ResolveMany", ctx, []string{"1110", "4100", "2310"}).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount, suite.vatAccount), nil).Once()
	suite.mockPeriods.On("EnsureOpen", ctx, req.ParsedDate()).Return(nil).Once()

	number := int64(42)
	suite.mockLedgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalPosting"), false).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			postings := args.Get(2).([]domain.JournalPosting)
			suite.Equal(domain.Posted, entry.Status)
			suite.Len(postings, 3)
			suite.Equal(int64(1), postings[0].AccountID)
			suite.True(postings[0].Debit.Equal(decimal.NewFromInt(115)))
		}).
		Return(&domain.JournalEntry{EntryID: 7, EntryNumber: &number, Status: domain.Posted}, nil).Once()

	entry, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(int64(7), entry.EntryID)
	suite.Require().NotNil(entry.EntryNumber)
	suite.Equal(int64(42), *entry.EntryNumber)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockRegistry.AssertExpectations(suite.T())
	suite.mockPeriods.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPost_Unbalanced() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Lines[2].Credit = decimal.NewFromInt(14) // 115 vs 114

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPeriods.AssertNotCalled(suite.T(), "EnsureOpen", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_SingleLine() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrEmptyEntry)
}

func (suite *LedgerServiceTestSuite) TestPost_BothSidesOnOneLine() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Lines[0].Credit = decimal.NewFromInt(5)

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrEmptyEntry)
}

func (suite *LedgerServiceTestSuite) TestPost_PeriodClosed() {
	ctx := context.Background()
	req := suite.cashSaleRequest()

	suite.mockPeriods.On("EnsureOpen", ctx, req.ParsedDate()).Return(apperrors.ErrPeriodClosed).Once()

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A closed period wins over whatever the lines reference: the registry is
// never consulted, so an unknown code cannot mask the period error.
func (suite *LedgerServiceTestSuite) TestPost_PeriodClosed_UnknownAccount() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Lines[2].AccountCode = "9999"

	suite.mockPeriods.On("EnsureOpen", ctx, req.ParsedDate()).Return(apperrors.ErrPeriodClosed).Once()

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockRegistry.AssertNotCalled(suite.T(), "ResolveMany", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_UnknownAccount() {
	ctx := context.Background()
	req := suite.cashSaleRequest()

	suite.mockPeriods.On("EnsureOpen", ctx, req.ParsedDate()).Return(nil).Once()
	// The VAT account is missing from the resolution result.
	suite.mockRegistry.On("ResolveMany", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_ManualEntryNotAllowed() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Manual = true

	suite.mockPeriods.On("EnsureOpen", ctx, req.ParsedDate()).Return(nil).Once()
	suite.mockRegistry.On("ResolveMany", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount, suite.vatAccount), nil).Once()

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPost_UnknownDocumentKind() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Reference = &dto.DocumentRefRequest{Type: "purchase_order", ID: 9}

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRegistry.AssertNotCalled(suite.T(), "ResolveMany", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_DocumentAlreadyLinked() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Reference = &dto.DocumentRefRequest{Type: domain.DocInvoice, ID: 9}

	suite.mockRegistry.On("ResolveMany", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount, suite.vatAccount), nil).Once()
	suite.mockPeriods.On("EnsureOpen", ctx, req.ParsedDate()).Return(nil).Once()

	linkedTo := int64(3)
	suite.mockDocRepo.On("FindDocument", ctx, domain.DocumentRef{Type: domain.DocInvoice, ID: 9}).
		Return(&domain.Document{ID: 9, Kind: domain.DocInvoice, JournalEntryID: &linkedTo}, nil).Once()

	_, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyLinked)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_WithDocument_ClaimsLink() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Reference = &dto.DocumentRefRequest{Type: domain.DocInvoice, ID: 9}

	suite.mockRegistry.On("ResolveMany", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount, suite.vatAccount), nil).Once()
	suite.mockPeriods.On("EnsureOpen", ctx, req.ParsedDate()).Return(nil).Once()
	suite.mockDocRepo.On("FindDocument", ctx, domain.DocumentRef{Type: domain.DocInvoice, ID: 9}).
		Return(&domain.Document{ID: 9, Kind: domain.DocInvoice}, nil).Once()

	number := int64(43)
	suite.mockLedgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalPosting"), true).
		Return(&domain.JournalEntry{EntryID: 8, EntryNumber: &number, Status: domain.Posted}, nil).Once()

	entry, err := suite.service.Post(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(int64(8), entry.EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSaveDraft_SkipsPeriodGateAndLink() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.Reference = &dto.DocumentRefRequest{Type: domain.DocInvoice, ID: 9}

	suite.mockRegistry.On("ResolveMany", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount, suite.vatAccount), nil).Once()
	suite.mockLedgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalPosting"), false).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			suite.Equal(domain.Draft, entry.Status)
			suite.Nil(entry.EntryNumber)
		}).
		Return(&domain.JournalEntry{EntryID: 11, Status: domain.Draft}, nil).Once()

	entry, err := suite.service.SaveDraft(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
	suite.mockPeriods.AssertNotCalled(suite.T(), "EnsureOpen", mock.Anything, mock.Anything)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "FindDocument", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverse_Success() {
	ctx := context.Background()
	number := int64(42)
	original := &domain.JournalEntry{
		EntryID:     7,
		EntryNumber: &number,
		Description: "Cash sale incl. VAT",
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:      domain.Posted,
	}
	postings := []domain.JournalPosting{
		{AccountID: 1, AccountCode: "1110", Debit: decimal.NewFromInt(115)},
		{AccountID: 2, AccountCode: "4100", Credit: decimal.NewFromInt(100)},
		{AccountID: 3, AccountCode: "2310", Credit: decimal.NewFromInt(15)},
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, int64(7)).Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindPostingsByEntryID", ctx, int64(7)).Return(postings, nil).Once()
	suite.mockPeriods.On("EnsureOpen", ctx, mock.AnythingOfType("time.Time")).Return(nil).Once()

	mirrorNumber := int64(43)
	suite.mockLedgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalPosting"), false).
		Run(func(args mock.Arguments) {
			mirror := args.Get(1).(domain.JournalEntry)
			mirrorPostings := args.Get(2).([]domain.JournalPosting)
			suite.Equal("Reversal of: Cash sale incl. VAT", mirror.Description)
			suite.Require().NotNil(mirror.OriginalEntryID)
			suite.Equal(int64(7), *mirror.OriginalEntryID)
			// Debits and credits swap sides.
			suite.True(mirrorPostings[0].Credit.Equal(decimal.NewFromInt(115)))
			suite.True(mirrorPostings[1].Debit.Equal(decimal.NewFromInt(100)))
			suite.True(mirrorPostings[2].Debit.Equal(decimal.NewFromInt(15)))
		}).
		Return(&domain.JournalEntry{EntryID: 9, EntryNumber: &mirrorNumber, Status: domain.Posted}, nil).Once()
	suite.mockLedgerRepo.On("MarkReversed", ctx, int64(7), int64(9), (*domain.DocumentRef)(nil), suite.actor, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	mirror, err := suite.service.Reverse(ctx, 7, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(int64(9), mirror.EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverse_NotPosted() {
	ctx := context.Background()
	draft := &domain.JournalEntry{EntryID: 5, Status: domain.Draft}
	suite.mockLedgerRepo.On("FindEntryByID", ctx, int64(5)).Return(draft, nil).Once()
	suite.mockLedgerRepo.On("FindPostingsByEntryID", ctx, int64(5)).Return([]domain.JournalPosting{}, nil).Once()

	_, err := suite.service.Reverse(ctx, 5, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotPosted)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverse_OfReversal() {
	ctx := context.Background()
	originalID := int64(7)
	mirror := &domain.JournalEntry{EntryID: 9, Status: domain.Posted, OriginalEntryID: &originalID}
	suite.mockLedgerRepo.On("FindEntryByID", ctx, int64(9)).Return(mirror, nil).Once()
	suite.mockLedgerRepo.On("FindPostingsByEntryID", ctx, int64(9)).Return([]domain.JournalPosting{}, nil).Once()

	_, err := suite.service.Reverse(ctx, 9, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// The mirror is validated like any other posting before it is written. An
// entry whose stored lines no longer balance must not spawn a second bad one.
func (suite *LedgerServiceTestSuite) TestReverse_UnbalancedStoredPostings() {
	ctx := context.Background()
	number := int64(42)
	original := &domain.JournalEntry{EntryID: 7, EntryNumber: &number, Status: domain.Posted}
	postings := []domain.JournalPosting{
		{AccountID: 1, AccountCode: "1110", Debit: decimal.NewFromInt(115)},
		{AccountID: 2, AccountCode: "4100", Credit: decimal.NewFromInt(100)},
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, int64(7)).Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindPostingsByEntryID", ctx, int64(7)).Return(postings, nil).Once()
	suite.mockPeriods.On("EnsureOpen", ctx, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := suite.service.Reverse(ctx, 7, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "MarkReversed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostDraft_Success() {
	ctx := context.Background()
	draft := &domain.JournalEntry{
		EntryID:   11,
		Status:    domain.Draft,
		EntryDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	postings := []domain.JournalPosting{
		{AccountID: 1, AccountCode: "1110", Debit: decimal.NewFromInt(50)},
		{AccountID: 2, AccountCode: "4100", Credit: decimal.NewFromInt(50)},
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, int64(11)).Return(draft, nil).Once()
	suite.mockLedgerRepo.On("FindPostingsByEntryID", ctx, int64(11)).Return(postings, nil).Once()
	suite.mockPeriods.On("EnsureOpen", ctx, draft.EntryDate).Return(nil).Once()

	number := int64(44)
	posted := &domain.JournalEntry{EntryID: 11, EntryNumber: &number, Status: domain.Posted}
	suite.mockLedgerRepo.On("PostDraft", ctx, int64(11), suite.actor, mock.AnythingOfType("time.Time")).Return(posted, nil).Once()

	entry, err := suite.service.PostDraft(ctx, 11, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.Require().NotNil(entry.EntryNumber)
	suite.Equal(int64(44), *entry.EntryNumber)
}

func (suite *LedgerServiceTestSuite) TestPostDraft_NotADraft() {
	ctx := context.Background()
	number := int64(42)
	posted := &domain.JournalEntry{EntryID: 7, EntryNumber: &number, Status: domain.Posted}
	suite.mockLedgerRepo.On("FindEntryByID", ctx, int64(7)).Return(posted, nil).Once()
	suite.mockLedgerRepo.On("FindPostingsByEntryID", ctx, int64(7)).Return([]domain.JournalPosting{}, nil).Once()

	_, err := suite.service.PostDraft(ctx, 7, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostDraft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteDraft_Success() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("DeleteDraft", ctx, int64(11)).Return(nil).Once()

	err := suite.service.DeleteDraft(ctx, 11)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntry(ctx, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
