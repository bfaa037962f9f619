package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/core/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
	"github.com/aurumworks/gold_ledger_app/internal/utils/accounting"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	ctx             context.Context
	actorID         string
	cashAccountID   string
	equityAccountID string
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewJournalService(s.mockJournalRepo, s.mockAccountRepo)
	s.ctx = context.Background()
	s.actorID = uuid.NewString()
	s.cashAccountID = uuid.NewString()
	s.equityAccountID = uuid.NewString()
}

func (s *JournalServiceTestSuite) activeAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		s.cashAccountID:   {AccountID: s.cashAccountID, AccountType: domain.Asset, IsActive: true},
		s.equityAccountID: {AccountID: s.equityAccountID, AccountType: domain.Equity, IsActive: true},
	}
}

func (s *JournalServiceTestSuite) adjustmentRequest(amount int64) dto.CreateAdjustmentEntryRequest {
	return dto.CreateAdjustmentEntryRequest{
		Reference:   "ADJ-2026-014",
		Date:        time.Now().UTC(),
		Description: "Opening balance correction",
		Lines: []dto.AdjustmentLineRequest{
			{AccountID: s.cashAccountID, Debit: decimal.NewFromInt(amount)},
			{AccountID: s.equityAccountID, Credit: decimal.NewFromInt(amount)},
		},
	}
}

func (s *JournalServiceTestSuite) TestCreateAdjustmentEntry_Success() {
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.activeAccounts(), nil).Once()

	var savedEntry domain.JournalEntry
	var savedLines []domain.LedgerLine
	var savedChanges map[string]domain.BalanceDelta
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.LedgerLine"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(domain.JournalEntry)
			savedLines = args.Get(2).([]domain.LedgerLine)
			savedChanges = args.Get(3).(map[string]domain.BalanceDelta)
		}).
		Return(nil).Once()

	entry, err := s.service.CreateAdjustmentEntry(s.ctx, s.adjustmentRequest(300), s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.SourceManual, savedEntry.SourceType)
	s.Equal("ADJ-2026-014", savedEntry.Reference)
	s.Require().Len(savedLines, 2)
	s.NoError(domain.ValidateEntryBalance(savedLines))
	s.True(savedChanges[s.cashAccountID].Cash.Equal(decimal.NewFromInt(300)))
	s.True(savedChanges[s.equityAccountID].Cash.Equal(decimal.NewFromInt(300)))
	s.Require().Len(entry.Lines, 2)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateAdjustmentEntry_SingleLine_Fails() {
	req := s.adjustmentRequest(300)
	req.Lines = req.Lines[:1]

	entry, err := s.service.CreateAdjustmentEntry(s.ctx, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrEntryMinLines)
	s.Nil(entry)
}

func (s *JournalServiceTestSuite) TestCreateAdjustmentEntry_SingleAccount_Fails() {
	req := s.adjustmentRequest(300)
	req.Lines[1].AccountID = s.cashAccountID

	entry, err := s.service.CreateAdjustmentEntry(s.ctx, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrEntryMinAccounts)
	s.Nil(entry)
}

func (s *JournalServiceTestSuite) TestCreateAdjustmentEntry_Unbalanced_Fails() {
	req := s.adjustmentRequest(300)
	req.Lines[1].Credit = decimal.NewFromInt(250)

	entry, err := s.service.CreateAdjustmentEntry(s.ctx, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, domain.ErrUnbalancedEntry)
	s.Nil(entry)
}

func (s *JournalServiceTestSuite) TestCreateAdjustmentEntry_BothSidesOnOneLine_Fails() {
	req := s.adjustmentRequest(300)
	req.Lines[0].Credit = decimal.NewFromInt(50)

	entry, err := s.service.CreateAdjustmentEntry(s.ctx, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(entry)
}

func (s *JournalServiceTestSuite) TestCreateAdjustmentEntry_InactiveAccount_Fails() {
	accounts := s.activeAccounts()
	inactive := accounts[s.equityAccountID]
	inactive.IsActive = false
	accounts[s.equityAccountID] = inactive

	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	entry, err := s.service.CreateAdjustmentEntry(s.ctx, s.adjustmentRequest(300), s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(entry)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateAdjustmentEntry_MissingAccount_Fails() {
	accounts := s.activeAccounts()
	delete(accounts, s.equityAccountID)

	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	entry, err := s.service.CreateAdjustmentEntry(s.ctx, s.adjustmentRequest(300), s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrLedgerAccountNotFound)
	s.Nil(entry)
}

func (s *JournalServiceTestSuite) TestCreateAdjustmentEntry_DuplicateReference_Fails() {
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.activeAccounts(), nil).Once()
	s.mockJournalRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.LedgerLine"), mock.Anything).Return(apperrors.ErrDuplicate).Once()

	entry, err := s.service.CreateAdjustmentEntry(s.ctx, s.adjustmentRequest(300), s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(entry)
}

func (s *JournalServiceTestSuite) TestGetEntryByID_AttachesLines() {
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, Reference: "ADJ-2026-001"}
	lines := []domain.LedgerLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.cashAccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: s.equityAccountID, Credit: decimal.NewFromInt(100)},
	}

	s.mockJournalRepo.On("FindEntryByID", s.ctx, entryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", s.ctx, entryID).Return(lines, nil).Once()

	fetched, err := s.service.GetEntryByID(s.ctx, entryID)

	s.Require().NoError(err)
	s.Len(fetched.Lines, 2)
}

func (s *JournalServiceTestSuite) TestGetEntryByID_NotFound() {
	entryID := uuid.NewString()
	s.mockJournalRepo.On("FindEntryByID", s.ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	fetched, err := s.service.GetEntryByID(s.ctx, entryID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(fetched)
}

func (s *JournalServiceTestSuite) TestListLinesByAccount_UnknownAccount_Fails() {
	accountID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := s.service.ListLinesByAccount(s.ctx, accountID, dto.ListParams{})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(resp)
}

// sanity-check the signed folding the replay checks rely on
func (s *JournalServiceTestSuite) TestSignedAmounts_FollowAccountType() {
	line := domain.LedgerLine{Debit: decimal.NewFromInt(120), Credit: decimal.NewFromInt(20)}

	asset, err := accounting.SignedCashAmount(line, domain.Asset)
	s.Require().NoError(err)
	s.True(asset.Equal(decimal.NewFromInt(100)))

	revenue, err := accounting.SignedCashAmount(line, domain.Revenue)
	s.Require().NoError(err)
	s.True(revenue.Equal(decimal.NewFromInt(-100)))

	_, err = accounting.SignedCashAmount(line, domain.AccountType("BOGUS"))
	s.Error(err)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
