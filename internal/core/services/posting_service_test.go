package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/core/services"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo      *MockJournalRepository
	mockAccountRepo      *MockAccountRepository
	mockTreasuryRepo     *MockTreasuryRepository
	mockSettingsRepo     *MockSettingsRepository
	mockNotificationRepo *MockNotificationRepository
	service              portssvc.PostingSvcFacade
	ctx                  context.Context

	treasuryID                 string
	treasuryAccountID          string
	revenueAccountID           string
	cashAccountID              string
	costAccountID              string
	vatAccountID               string
	oldGoldAccountID           string
	commissionExpenseAccountID string
	commissionPayableAccountID string
	treasury                   *domain.Treasury
	settings                   *domain.FinanceSettings
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockTreasuryRepo = new(MockTreasuryRepository)
	s.mockSettingsRepo = new(MockSettingsRepository)
	s.mockNotificationRepo = new(MockNotificationRepository)
	s.service = services.NewPostingService(s.mockJournalRepo, s.mockAccountRepo, s.mockTreasuryRepo, s.mockSettingsRepo, s.mockNotificationRepo)
	s.ctx = context.Background()

	s.treasuryID = uuid.NewString()
	s.treasuryAccountID = uuid.NewString()
	s.revenueAccountID = uuid.NewString()
	s.cashAccountID = uuid.NewString()
	s.costAccountID = uuid.NewString()
	s.vatAccountID = uuid.NewString()
	s.oldGoldAccountID = uuid.NewString()
	s.commissionExpenseAccountID = uuid.NewString()
	s.commissionPayableAccountID = uuid.NewString()

	linked := s.treasuryAccountID
	s.treasury = &domain.Treasury{
		TreasuryID:      s.treasuryID,
		Code:            "MAIN",
		Name:            "Main Treasury",
		TreasuryType:    domain.TreasuryMain,
		LinkedAccountID: &linked,
		IsActive:        true,
	}
	s.settings = &domain.FinanceSettings{
		CashAccountID:              &s.cashAccountID,
		SalesRevenueAccountID:      &s.revenueAccountID,
		CostOfGoldAccountID:        &s.costAccountID,
		VATAccountID:               &s.vatAccountID,
		OldGoldAccountID:           &s.oldGoldAccountID,
		CommissionExpenseAccountID: &s.commissionExpenseAccountID,
		CommissionPayableAccountID: &s.commissionPayableAccountID,
	}
}

func (s *PostingServiceTestSuite) accounts(types map[string]domain.AccountType) map[string]domain.Account {
	out := make(map[string]domain.Account, len(types))
	for id, accountType := range types {
		out[id] = domain.Account{AccountID: id, AccountType: accountType}
	}
	return out
}

func (s *PostingServiceTestSuite) cashInTxn(amount int64) domain.TreasuryTransaction {
	return domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      s.treasuryID,
		TransactionType: domain.CashIn,
		CashAmount:      decimal.NewFromInt(amount),
		TransactionDate: time.Now().UTC(),
	}
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_CashIn_PostsBalancedEntry() {
	txn := s.cashInTxn(1500)

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, s.treasuryID).Return(s.treasury, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).
		Return(s.accounts(map[string]domain.AccountType{
			s.treasuryAccountID: domain.Asset,
			s.revenueAccountID:  domain.Revenue,
		}), nil).Once()

	var savedLines []domain.LedgerLine
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.LedgerLine)
		}).Return(nil).Once()

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, nil)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal("TRX-"+txn.TransactionID, entry.Reference)
	s.Equal(domain.SourceTreasuryTransaction, entry.SourceType)
	s.Require().Len(savedLines, 2)
	s.NoError(domain.ValidateEntryBalance(savedLines))
	s.Equal(s.treasuryAccountID, savedLines[0].AccountID)
	s.True(savedLines[0].Debit.Equal(txn.CashAmount))
	s.Equal(s.revenueAccountID, savedLines[1].AccountID)
	s.True(savedLines[1].Credit.Equal(txn.CashAmount))
	s.mockJournalRepo.AssertExpectations(s.T())
	s.mockNotificationRepo.AssertNotCalled(s.T(), "SaveNotification", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_GoldIn_NeverPosts() {
	txn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      s.treasuryID,
		TransactionType: domain.GoldIn,
		GoldWeight:      decimal.NewFromInt(50),
		Karat:           domain.Karat21,
	}

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, nil)

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockSettingsRepo.AssertNotCalled(s.T(), "GetFinanceSettings", mock.Anything)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_ZeroAmounts_Skipped() {
	txn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      s.treasuryID,
		TransactionType: domain.CashIn,
	}

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, nil)

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockSettingsRepo.AssertNotCalled(s.T(), "GetFinanceSettings", mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_MissingSettings_SkipsWithNotification() {
	txn := s.cashInTxn(100)

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(nil, apperrors.ErrNotFound).Once()
	s.mockNotificationRepo.On("SaveNotification", s.ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, nil)

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockNotificationRepo.AssertExpectations(s.T())
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_UnlinkedTreasury_SkipsWithNotification() {
	txn := s.cashInTxn(100)
	unlinked := &domain.Treasury{TreasuryID: s.treasuryID, Name: "Petty", IsActive: true}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, s.treasuryID).Return(unlinked, nil).Once()
	s.mockNotificationRepo.On("SaveNotification", s.ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, nil)

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockNotificationRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_TransferOutWithoutTransfer_Fails() {
	txn := s.cashInTxn(100)
	txn.TransactionType = domain.TransferOut

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, s.treasuryID).Return(s.treasury, nil).Once()

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, nil)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(entry)
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_TransferOut_DebitsPeerAccount() {
	peerID := uuid.NewString()
	peerAccountID := uuid.NewString()
	peer := &domain.Treasury{TreasuryID: peerID, Name: "Branch", LinkedAccountID: &peerAccountID, IsActive: true}
	transfer := &domain.TreasuryTransfer{
		TransferID:     uuid.NewString(),
		FromTreasuryID: s.treasuryID,
		ToTreasuryID:   peerID,
	}
	txn := s.cashInTxn(700)
	txn.TransactionType = domain.TransferOut

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, s.treasuryID).Return(s.treasury, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, peerID).Return(peer, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).
		Return(s.accounts(map[string]domain.AccountType{
			s.treasuryAccountID: domain.Asset,
			peerAccountID:       domain.Asset,
		}), nil).Once()

	var savedLines []domain.LedgerLine
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.LedgerLine)
		}).Return(nil).Once()

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, transfer)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Require().Len(savedLines, 2)
	s.Equal(peerAccountID, savedLines[0].AccountID)
	s.Equal(s.treasuryAccountID, savedLines[1].AccountID)
	s.NoError(domain.ValidateEntryBalance(savedLines))
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_DuplicateReference_ReturnsExisting() {
	txn := s.cashInTxn(100)
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), Reference: "TRX-" + txn.TransactionID}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, s.treasuryID).Return(s.treasury, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).
		Return(s.accounts(map[string]domain.AccountType{
			s.treasuryAccountID: domain.Asset,
			s.revenueAccountID:  domain.Revenue,
		}), nil).Once()
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()
	s.mockJournalRepo.On("FindEntryByReference", s.ctx, existing.Reference).Return(existing, nil).Once()

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, nil)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(existing.EntryID, entry.EntryID)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostTreasuryTransaction_PureGoldMovement_NoEntry() {
	txn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      s.treasuryID,
		TransactionType: domain.FinishedGoodsIn,
		GoldWeight:      decimal.NewFromInt(30),
		Karat:           domain.Karat18,
	}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, s.treasuryID).Return(s.treasury, nil).Once()

	entry, err := s.service.PostTreasuryTransaction(s.ctx, txn, nil)

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostInvoice_ExchangeWithVAT_PostsFourBalancedLines() {
	invoice := domain.SalesInvoice{
		InvoiceNumber:        "INV-00042",
		PaymentMethod:        "cash",
		GrandTotal:           decimal.NewFromInt(1150),
		TotalTax:             decimal.NewFromInt(150),
		SoldGoldWeight:       decimal.NewFromInt(10),
		Karat:                domain.Karat21,
		IsExchange:           true,
		ExchangeGoldWeight:   decimal.NewFromInt(4),
		ExchangeValueDeduced: decimal.NewFromInt(200),
		InvoiceDate:          time.Now().UTC(),
	}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).
		Return(s.accounts(map[string]domain.AccountType{
			s.cashAccountID:    domain.Asset,
			s.oldGoldAccountID: domain.Asset,
			s.vatAccountID:     domain.Liability,
			s.revenueAccountID: domain.Revenue,
		}), nil).Once()

	var savedLines []domain.LedgerLine
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.LedgerLine)
		}).Return(nil).Once()

	entry, err := s.service.PostInvoice(s.ctx, invoice, uuid.NewString())

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(invoice.InvoiceNumber, entry.Reference)
	s.Equal(domain.SourceInvoice, entry.SourceType)
	s.Require().Len(savedLines, 4)
	s.NoError(domain.ValidateEntryBalance(savedLines))
	s.Equal(s.cashAccountID, savedLines[0].AccountID)
	s.True(savedLines[0].Debit.Equal(decimal.NewFromInt(950)), "cash leg is net of exchange value")
	s.Equal(s.oldGoldAccountID, savedLines[1].AccountID)
	s.True(savedLines[1].GoldDebit.Equal(invoice.ExchangeGoldWeight))
	s.Equal(s.vatAccountID, savedLines[2].AccountID)
	s.True(savedLines[2].Credit.Equal(invoice.TotalTax))
	s.Equal(s.revenueAccountID, savedLines[3].AccountID)
	s.True(savedLines[3].Credit.Equal(decimal.NewFromInt(1000)))
	s.True(savedLines[3].GoldCredit.Equal(invoice.SoldGoldWeight))
}

func (s *PostingServiceTestSuite) TestPostInvoice_MissingRevenueAccount_SkipsWithNotification() {
	settings := &domain.FinanceSettings{CashAccountID: &s.cashAccountID}
	invoice := domain.SalesInvoice{
		InvoiceNumber: "INV-00043",
		PaymentMethod: "cash",
		GrandTotal:    decimal.NewFromInt(500),
	}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(settings, nil).Once()
	s.mockNotificationRepo.On("SaveNotification", s.ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	entry, err := s.service.PostInvoice(s.ctx, invoice, uuid.NewString())

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockNotificationRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostInvoice_BankMethodWithoutBankAccount_Skips() {
	invoice := domain.SalesInvoice{
		InvoiceNumber: "INV-00044",
		PaymentMethod: "bank",
		GrandTotal:    decimal.NewFromInt(500),
	}

	// BankAccountID is unset in the fixture settings.
	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockNotificationRepo.On("SaveNotification", s.ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	entry, err := s.service.PostInvoice(s.ctx, invoice, uuid.NewString())

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostInvoice_RepoError_Propagates() {
	invoice := domain.SalesInvoice{
		InvoiceNumber: "INV-00045",
		PaymentMethod: "cash",
		GrandTotal:    decimal.NewFromInt(300),
	}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).
		Return(s.accounts(map[string]domain.AccountType{
			s.cashAccountID:    domain.Asset,
			s.revenueAccountID: domain.Revenue,
		}), nil).Once()
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	entry, err := s.service.PostInvoice(s.ctx, invoice, uuid.NewString())

	s.Require().Error(err)
	s.ErrorIs(err, assert.AnError)
	s.Nil(entry)
}

func (s *PostingServiceTestSuite) commissionInvoice(amount int64) domain.SalesInvoice {
	repID := uuid.NewString()
	return domain.SalesInvoice{
		InvoiceNumber:    "INV-00050",
		PaymentMethod:    "cash",
		GrandTotal:       decimal.NewFromInt(2000),
		SalesRepID:       &repID,
		SalesRepName:     "Karim",
		CommissionAmount: decimal.NewFromInt(amount),
		InvoiceDate:      time.Now().UTC(),
	}
}

func (s *PostingServiceTestSuite) TestPostCommission_AccruesExpenseAgainstPayable() {
	invoice := s.commissionInvoice(60)

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).
		Return(s.accounts(map[string]domain.AccountType{
			s.commissionExpenseAccountID: domain.Expense,
			s.commissionPayableAccountID: domain.Liability,
		}), nil).Once()

	var savedLines []domain.LedgerLine
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.LedgerLine)
		}).Return(nil).Once()

	entry, err := s.service.PostCommission(s.ctx, invoice, uuid.NewString())

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal("COMM-"+invoice.InvoiceNumber, entry.Reference)
	s.Equal(domain.SourceInvoice, entry.SourceType)
	s.Require().Len(savedLines, 2)
	s.NoError(domain.ValidateEntryBalance(savedLines))
	s.Equal(s.commissionExpenseAccountID, savedLines[0].AccountID)
	s.True(savedLines[0].Debit.Equal(invoice.CommissionAmount))
	s.Equal(s.commissionPayableAccountID, savedLines[1].AccountID)
	s.True(savedLines[1].Credit.Equal(invoice.CommissionAmount))
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostCommission_NoSalesRep_NoEntry() {
	invoice := s.commissionInvoice(60)
	invoice.SalesRepID = nil

	entry, err := s.service.PostCommission(s.ctx, invoice, uuid.NewString())

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockSettingsRepo.AssertNotCalled(s.T(), "GetFinanceSettings", mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostCommission_ZeroCommission_NoEntry() {
	invoice := s.commissionInvoice(0)

	entry, err := s.service.PostCommission(s.ctx, invoice, uuid.NewString())

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostCommission_MissingAccounts_SkipsWithNotification() {
	invoice := s.commissionInvoice(60)
	settings := &domain.FinanceSettings{SalesRevenueAccountID: &s.revenueAccountID}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(settings, nil).Once()
	s.mockNotificationRepo.On("SaveNotification", s.ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	entry, err := s.service.PostCommission(s.ctx, invoice, uuid.NewString())

	s.Require().NoError(err)
	s.Nil(entry)
	s.mockNotificationRepo.AssertExpectations(s.T())
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostCommission_DuplicateReference_ReturnsExisting() {
	invoice := s.commissionInvoice(60)
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), Reference: "COMM-" + invoice.InvoiceNumber}

	s.mockSettingsRepo.On("GetFinanceSettings", s.ctx).Return(s.settings, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything).
		Return(s.accounts(map[string]domain.AccountType{
			s.commissionExpenseAccountID: domain.Expense,
			s.commissionPayableAccountID: domain.Liability,
		}), nil).Once()
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()
	s.mockJournalRepo.On("FindEntryByReference", s.ctx, existing.Reference).Return(existing, nil).Once()

	entry, err := s.service.PostCommission(s.ctx, invoice, uuid.NewString())

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(existing.EntryID, entry.EntryID)
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
