package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/core/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
)

type AuditServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	mockTreasuryRepo *MockTreasuryRepository
	mockSettingsRepo *MockSettingsRepository
	service          portssvc.AuditSvcFacade
	ctx              context.Context
}

func (s *AuditServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockTreasuryRepo = new(MockTreasuryRepository)
	s.mockSettingsRepo = new(MockSettingsRepository)
	s.service = services.NewAuditService(s.mockJournalRepo, s.mockAccountRepo, s.mockTreasuryRepo, s.mockSettingsRepo)
	s.ctx = context.Background()
}

func (s *AuditServiceTestSuite) fullSettings() *domain.FinanceSettings {
	id := func() *string {
		v := uuid.NewString()
		return &v
	}
	return &domain.FinanceSettings{
		CashAccountID:              id(),
		BankAccountID:              id(),
		SalesRevenueAccountID:      id(),
		InventoryGoldAccountID:     id(),
		CostOfGoldAccountID:        id(),
		VATAccountID:               id(),
		OldGoldAccountID:           id(),
		CommissionExpenseAccountID: id(),
		CommissionPayableAccountID: id(),
		SalesTreasuryID:            id(),
	}
}

func (s *AuditServiceTestSuite) linkedTreasury(cash int64) domain.Treasury {
	accountID := uuid.NewString()
	treasury := domain.Treasury{
		TreasuryID:      uuid.NewString(),
		Code:            "MAIN",
		Name:            "Main safe",
		TreasuryType:    domain.TreasuryMain,
		LinkedAccountID: &accountID,
		IsActive:        true,
	}
	treasury.CashBalance = decimal.NewFromInt(cash)
	return treasury
}

func (s *AuditServiceTestSuite) cashIn(treasuryID string, amount int64) domain.TreasuryTransaction {
	return domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      treasuryID,
		TransactionType: domain.CashIn,
		CashAmount:      decimal.NewFromInt(amount),
	}
}

func (s *AuditServiceTestSuite) findingChecks(report *dto.AuditReport) []string {
	checks := make([]string, 0, len(report.Findings))
	for _, finding := range report.Findings {
		checks = append(checks, finding.Check)
	}
	return checks
}

func (s *AuditServiceTestSuite) TestRunChecks_CleanLedger() {
	treasury := s.linkedTreasury(100)
	txn := s.cashIn(treasury.TreasuryID, 100)

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.fullSettings(), nil).Once()
	s.mockTreasuryRepo.On("ListTreasuries", s.ctx).Return([]domain.Treasury{treasury}, nil).Once()
	s.mockJournalRepo.On("ListEntryReferences", s.ctx, "TRX-").Return([]string{"TRX-" + txn.TransactionID}, nil).Once()
	s.mockTreasuryRepo.On("ListTransactionsByTreasury", s.ctx, treasury.TreasuryID).Return([]domain.TreasuryTransaction{txn}, nil).Twice()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, treasury.TreasuryID).Return(&treasury, nil).Once()
	s.mockJournalRepo.On("CountLines", s.ctx).Return(int64(4), int64(3), nil).Once()

	report, err := s.service.RunChecks(s.ctx)

	s.Require().NoError(err)
	s.True(report.Clean)
	s.Empty(report.Findings)
	s.Equal(5, report.ChecksRun)
	s.Equal(int64(4), report.EntriesScanned)
	s.Equal(int64(3), report.LinesWithCostCenter)
	s.mockTreasuryRepo.AssertExpectations(s.T())
}

func (s *AuditServiceTestSuite) TestRunChecks_MissingSettingsRow() {
	treasury := s.linkedTreasury(0)

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(nil, apperrors.ErrNotFound).Once()
	s.mockTreasuryRepo.On("ListTreasuries", s.ctx).Return([]domain.Treasury{treasury}, nil).Once()
	s.mockJournalRepo.On("ListEntryReferences", s.ctx, "TRX-").Return([]string{}, nil).Once()
	s.mockTreasuryRepo.On("ListTransactionsByTreasury", s.ctx, treasury.TreasuryID).Return([]domain.TreasuryTransaction{}, nil).Twice()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, treasury.TreasuryID).Return(&treasury, nil).Once()
	s.mockJournalRepo.On("CountLines", s.ctx).Return(int64(0), int64(0), nil).Once()

	report, err := s.service.RunChecks(s.ctx)

	s.Require().NoError(err)
	s.False(report.Clean)
	s.Require().Len(report.Findings, 1)
	s.Equal("settings", report.Findings[0].Check)
	s.Equal("finance_settings", report.Findings[0].EntityID)
}

func (s *AuditServiceTestSuite) TestRunChecks_FlagsUnsetSettingsMember() {
	settings := s.fullSettings()
	settings.VATAccountID = nil
	treasury := s.linkedTreasury(0)

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(settings, nil).Once()
	s.mockTreasuryRepo.On("ListTreasuries", s.ctx).Return([]domain.Treasury{treasury}, nil).Once()
	s.mockJournalRepo.On("ListEntryReferences", s.ctx, "TRX-").Return([]string{}, nil).Once()
	s.mockTreasuryRepo.On("ListTransactionsByTreasury", s.ctx, treasury.TreasuryID).Return([]domain.TreasuryTransaction{}, nil).Twice()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, treasury.TreasuryID).Return(&treasury, nil).Once()
	s.mockJournalRepo.On("CountLines", s.ctx).Return(int64(0), int64(0), nil).Once()

	report, err := s.service.RunChecks(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(report.Findings, 1)
	s.Equal("settings", report.Findings[0].Check)
	s.Equal("vatAccountID", report.Findings[0].EntityID)
}

func (s *AuditServiceTestSuite) TestRunChecks_FlagsUnlinkedTreasury() {
	treasury := s.linkedTreasury(0)
	treasury.LinkedAccountID = nil

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.fullSettings(), nil).Once()
	s.mockTreasuryRepo.On("ListTreasuries", s.ctx).Return([]domain.Treasury{treasury}, nil).Once()
	s.mockJournalRepo.On("ListEntryReferences", s.ctx, "TRX-").Return([]string{}, nil).Once()
	s.mockTreasuryRepo.On("ListTransactionsByTreasury", s.ctx, treasury.TreasuryID).Return([]domain.TreasuryTransaction{}, nil).Twice()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, treasury.TreasuryID).Return(&treasury, nil).Once()
	s.mockJournalRepo.On("CountLines", s.ctx).Return(int64(0), int64(0), nil).Once()

	report, err := s.service.RunChecks(s.ctx)

	s.Require().NoError(err)
	s.Contains(s.findingChecks(report), "linkage")
}

func (s *AuditServiceTestSuite) TestRunChecks_FlagsUnpostedCashTransaction() {
	treasury := s.linkedTreasury(100)
	unposted := s.cashIn(treasury.TreasuryID, 100)
	goldOnly := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      treasury.TreasuryID,
		TransactionType: domain.GoldIn,
		GoldWeight:      decimal.NewFromInt(10),
		Karat:           domain.Karat21,
	}
	treasury.GoldBalances.K21 = decimal.NewFromInt(10)
	txns := []domain.TreasuryTransaction{goldOnly, unposted}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.fullSettings(), nil).Once()
	s.mockTreasuryRepo.On("ListTreasuries", s.ctx).Return([]domain.Treasury{treasury}, nil).Once()
	s.mockJournalRepo.On("ListEntryReferences", s.ctx, "TRX-").Return([]string{}, nil).Once()
	s.mockTreasuryRepo.On("ListTransactionsByTreasury", s.ctx, treasury.TreasuryID).Return(txns, nil).Twice()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, treasury.TreasuryID).Return(&treasury, nil).Once()
	s.mockJournalRepo.On("CountLines", s.ctx).Return(int64(0), int64(0), nil).Once()

	report, err := s.service.RunChecks(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(report.Findings, 1)
	s.Equal("posting", report.Findings[0].Check)
	s.Equal(unposted.TransactionID, report.Findings[0].EntityID)
}

func (s *AuditServiceTestSuite) TestRunChecks_FlagsReplayMismatch() {
	treasury := s.linkedTreasury(999)
	txn := s.cashIn(treasury.TreasuryID, 100)

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.fullSettings(), nil).Once()
	s.mockTreasuryRepo.On("ListTreasuries", s.ctx).Return([]domain.Treasury{treasury}, nil).Once()
	s.mockJournalRepo.On("ListEntryReferences", s.ctx, "TRX-").Return([]string{"TRX-" + txn.TransactionID}, nil).Once()
	s.mockTreasuryRepo.On("ListTransactionsByTreasury", s.ctx, treasury.TreasuryID).Return([]domain.TreasuryTransaction{txn}, nil).Twice()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, treasury.TreasuryID).Return(&treasury, nil).Once()
	s.mockJournalRepo.On("CountLines", s.ctx).Return(int64(0), int64(0), nil).Once()

	report, err := s.service.RunChecks(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(report.Findings, 1)
	s.Equal("replay", report.Findings[0].Check)
	s.Equal(treasury.TreasuryID, report.Findings[0].EntityID)
}

func (s *AuditServiceTestSuite) TestReplayTreasury_FoldsNewestFirstHistory() {
	treasury := s.linkedTreasury(70)
	older := s.cashIn(treasury.TreasuryID, 100)
	newer := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      treasury.TreasuryID,
		TransactionType: domain.CashOut,
		CashAmount:      decimal.NewFromInt(30),
	}

	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, treasury.TreasuryID).Return(&treasury, nil).Once()
	s.mockTreasuryRepo.On("ListTransactionsByTreasury", s.ctx, treasury.TreasuryID).Return([]domain.TreasuryTransaction{newer, older}, nil).Once()

	result, err := s.service.ReplayTreasury(s.ctx, treasury.TreasuryID)

	s.Require().NoError(err)
	s.True(result.Matches)
	s.True(result.ReplayedCash.Equal(decimal.NewFromInt(70)))
	s.Equal(2, result.TransactionCount)
}

func (s *AuditServiceTestSuite) TestReplayAccount_PagesAndFoldsSignedAmounts() {
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		AccountType: domain.Asset,
		Balance:     decimal.NewFromInt(150),
		GoldBalance: decimal.NewFromInt(5),
	}
	firstPage := []domain.LedgerLine{
		{Debit: decimal.NewFromInt(200), GoldDebit: decimal.NewFromInt(5)},
	}
	secondPage := []domain.LedgerLine{
		{Credit: decimal.NewFromInt(50)},
	}

	s.mockAccountRepo.On("FindAccountByID", s.ctx, account.AccountID).Return(account, nil).Once()
	s.mockJournalRepo.On("ListLinesByAccountID", s.ctx, account.AccountID, 500, (*string)(nil)).Return(firstPage, "page2", nil).Once()
	s.mockJournalRepo.On("ListLinesByAccountID", s.ctx, account.AccountID, 500, mock.AnythingOfType("*string")).Return(secondPage, nil, nil).Once()

	result, err := s.service.ReplayAccount(s.ctx, account.AccountID)

	s.Require().NoError(err)
	s.True(result.Matches)
	s.True(result.ReplayedCash.Equal(decimal.NewFromInt(150)))
	s.True(result.ReplayedGold.Equal(decimal.NewFromInt(5)))
	s.Equal(2, result.LineCount)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *AuditServiceTestSuite) TestReplayAccount_LiabilityMismatch() {
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		AccountType: domain.Liability,
		Balance:     decimal.NewFromInt(100),
	}
	lines := []domain.LedgerLine{
		{Credit: decimal.NewFromInt(80)},
	}

	s.mockAccountRepo.On("FindAccountByID", s.ctx, account.AccountID).Return(account, nil).Once()
	s.mockJournalRepo.On("ListLinesByAccountID", s.ctx, account.AccountID, 500, (*string)(nil)).Return(lines, nil, nil).Once()

	result, err := s.service.ReplayAccount(s.ctx, account.AccountID)

	s.Require().NoError(err)
	s.False(result.Matches)
	s.True(result.ReplayedCash.Equal(decimal.NewFromInt(80)))
}

func TestAuditService(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
