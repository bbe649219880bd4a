package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/finbooks/ledger/internal/core/domain"
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) FindUnbalancedEntries(ctx context.Context) ([]domain.EntryDelta, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryDelta), args.Error(1)
}

func (m *MockAuditRepository) FindOrphanReferences(ctx context.Context, kind string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockAuditRepository) FindDuplicateLinks(ctx context.Context) ([]domain.DuplicateLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DuplicateLink), args.Error(1)
}

func (m *MockAuditRepository) FindBrokenDocumentLinks(ctx context.Context, kind string) ([]domain.Document, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockAuditRepository) GlobalTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockAuditRepository) FindDanglingParents(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAuditRepository) FindInformalPeriods(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Test Suite Setup ---
type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo *MockAuditRepository
	service       portssvc.AuditSvcFacade
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewAuditService(suite.mockAuditRepo)
}

// expectCleanStore primes every check to come back empty.
func (suite *AuditServiceTestSuite) expectCleanStore(ctx context.Context) {
	suite.mockAuditRepo.On("FindUnbalancedEntries", ctx).Return([]domain.EntryDelta{}, nil)
	for _, kind := range domain.DocumentKinds {
		suite.mockAuditRepo.On("FindOrphanReferences", ctx, kind).Return([]domain.JournalEntry{}, nil)
		suite.mockAuditRepo.On("FindBrokenDocumentLinks", ctx, kind).Return([]domain.Document{}, nil)
	}
	suite.mockAuditRepo.On("FindDuplicateLinks", ctx).Return([]domain.DuplicateLink{}, nil)
	suite.mockAuditRepo.On("GlobalTotals", ctx).Return(decimal.NewFromInt(1000), decimal.NewFromInt(1000), nil)
	suite.mockAuditRepo.On("FindDanglingParents", ctx).Return([]domain.Account{}, nil)
	suite.mockAuditRepo.On("FindInformalPeriods", ctx).Return([]string{}, nil)
}

// --- Test Cases ---

func (suite *AuditServiceTestSuite) TestRun_CleanStore() {
	ctx := context.Background()
	suite.expectCleanStore(ctx)

	report, err := suite.service.Run(ctx)

	suite.Require().NoError(err)
	suite.True(report.Clean())
	suite.Empty(report.Findings)
	suite.NotEmpty(report.RunID)
	suite.False(report.FinishedAt.Before(report.StartedAt))
}

func (suite *AuditServiceTestSuite) TestRun_AggregatesFindings() {
	ctx := context.Background()

	suite.mockAuditRepo.On("FindUnbalancedEntries", ctx).
		Return([]domain.EntryDelta{{EntryID: 7, Delta: decimal.NewFromInt(1)}}, nil)
	docID := int64(9)
	for _, kind := range domain.DocumentKinds {
		suite.mockAuditRepo.On("FindOrphanReferences", ctx, kind).Return([]domain.JournalEntry{}, nil)
		suite.mockAuditRepo.On("FindBrokenDocumentLinks", ctx, kind).Return([]domain.Document{}, nil)
	}
	suite.mockAuditRepo.On("FindDuplicateLinks", ctx).
		Return([]domain.DuplicateLink{{Ref: domain.DocumentRef{Type: domain.DocInvoice, ID: docID}, EntryIDs: []int64{3, 5}}}, nil)
	suite.mockAuditRepo.On("GlobalTotals", ctx).Return(decimal.NewFromInt(1001), decimal.NewFromInt(1000), nil)
	suite.mockAuditRepo.On("FindDanglingParents", ctx).Return([]domain.Account{}, nil)
	suite.mockAuditRepo.On("FindInformalPeriods", ctx).Return([]string{"2026-01"}, nil)

	report, err := suite.service.Run(ctx)

	suite.Require().NoError(err)
	suite.False(report.Clean())
	suite.Len(report.Findings, 4)

	kinds := make(map[domain.FindingKind]domain.FindingSeverity)
	for _, f := range report.Findings {
		kinds[f.Kind] = f.Severity
	}
	suite.Equal(domain.SeverityError, kinds[domain.FindingUnbalancedEntry])
	suite.Equal(domain.SeverityError, kinds[domain.FindingDuplicateLink])
	suite.Equal(domain.SeverityError, kinds[domain.FindingTrialImbalance])
	suite.Equal(domain.SeverityWarning, kinds[domain.FindingInformalPeriod])
}

func (suite *AuditServiceTestSuite) TestRun_CheckFailureBecomesWarning() {
	ctx := context.Background()
	suite.mockAuditRepo.On("FindUnbalancedEntries", ctx).Return(nil, errors.New("connection reset"))
	for _, kind := range domain.DocumentKinds {
		suite.mockAuditRepo.On("FindOrphanReferences", ctx, kind).Return([]domain.JournalEntry{}, nil)
		suite.mockAuditRepo.On("FindBrokenDocumentLinks", ctx, kind).Return([]domain.Document{}, nil)
	}
	suite.mockAuditRepo.On("FindDuplicateLinks", ctx).Return([]domain.DuplicateLink{}, nil)
	suite.mockAuditRepo.On("GlobalTotals", ctx).Return(decimal.Zero, decimal.Zero, nil)
	suite.mockAuditRepo.On("FindDanglingParents", ctx).Return([]domain.Account{}, nil)
	suite.mockAuditRepo.On("FindInformalPeriods", ctx).Return([]string{}, nil)

	report, err := suite.service.Run(ctx)

	// A failed check never aborts the sweep.
	suite.Require().NoError(err)
	suite.Require().Len(report.Findings, 1)
	suite.Equal(domain.FindingUnbalancedEntry, report.Findings[0].Kind)
	suite.Equal(domain.SeverityWarning, report.Findings[0].Severity)
	suite.Contains(report.Findings[0].Detail, "check did not run")
	suite.mockAuditRepo.AssertCalled(suite.T(), "FindInformalPeriods", ctx)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
