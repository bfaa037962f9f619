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
)

type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo  *MockVoucherRepository
	mockTreasuryRepo *MockTreasuryRepository
	mockPostingSvc   *MockPostingService
	service          portssvc.VoucherSvcFacade
	ctx              context.Context
	actorID          string
	treasury         *domain.Treasury
}

func (s *VoucherServiceTestSuite) SetupTest() {
	s.mockVoucherRepo = new(MockVoucherRepository)
	s.mockTreasuryRepo = new(MockTreasuryRepository)
	s.mockPostingSvc = new(MockPostingService)
	s.service = services.NewVoucherService(s.mockVoucherRepo, s.mockTreasuryRepo, s.mockPostingSvc)
	s.ctx = context.Background()
	s.actorID = uuid.NewString()
	s.treasury = &domain.Treasury{
		TreasuryID:   uuid.NewString(),
		Code:         "MAIN",
		Name:         "Main Treasury",
		TreasuryType: domain.TreasuryMain,
		CashBalance:  decimal.NewFromInt(5000),
		IsActive:     true,
	}

	s.mockTreasuryRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (s *VoucherServiceTestSuite) approvedExpense(amount int64) *domain.ExpenseVoucher {
	return &domain.ExpenseVoucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: "EXP-00012",
		Status:        domain.ExpenseApproved,
		TreasuryID:    s.treasury.TreasuryID,
		Beneficiary:   "Electric Co",
		Amount:        decimal.NewFromInt(amount),
		Category:      domain.ExpenseElectricity,
		VoucherDate:   time.Now().UTC(),
	}
}

func (s *VoucherServiceTestSuite) TestCreateExpenseVoucher_NonPositiveAmount_Fails() {
	req := dto.CreateExpenseVoucherRequest{
		TreasuryID:  s.treasury.TreasuryID,
		Beneficiary: "Electric Co",
		Amount:      decimal.Zero,
		Category:    domain.ExpenseElectricity,
	}

	voucher, err := s.service.CreateExpenseVoucher(s.ctx, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrVoucherAmountInvalid)
	s.Nil(voucher)
}

func (s *VoucherServiceTestSuite) TestCreateExpenseVoucher_OpensPending() {
	req := dto.CreateExpenseVoucherRequest{
		TreasuryID:  s.treasury.TreasuryID,
		Beneficiary: "Electric Co",
		Amount:      decimal.NewFromInt(300),
		Category:    domain.ExpenseElectricity,
	}

	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, s.treasury.TreasuryID).Return(s.treasury, nil).Once()
	s.mockVoucherRepo.On("NextExpenseNumber", s.ctx).Return("EXP-00001", nil).Once()
	s.mockVoucherRepo.On("SaveExpenseVoucher", s.ctx, mock.AnythingOfType("domain.ExpenseVoucher")).Return(nil).Once()

	voucher, err := s.service.CreateExpenseVoucher(s.ctx, req, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(voucher)
	s.Equal("EXP-00001", voucher.VoucherNumber)
	s.Equal(domain.ExpensePending, voucher.Status)
	s.mockVoucherRepo.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestApproveExpenseVoucher_NotPending_Fails() {
	voucher := s.approvedExpense(300)

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	approved, err := s.service.ApproveExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrVoucherNotPending)
	s.Nil(approved)
}

func (s *VoucherServiceTestSuite) TestRejectExpenseVoucher_PendingBecomesRejected() {
	voucher := s.approvedExpense(300)
	voucher.Status = domain.ExpensePending

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()
	var saved domain.ExpenseVoucher
	s.mockVoucherRepo.On("SaveExpenseVoucher", s.ctx, mock.AnythingOfType("domain.ExpenseVoucher")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.ExpenseVoucher)
		}).Return(nil).Once()

	rejected, err := s.service.RejectExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ExpenseRejected, rejected.Status)
	s.Equal(domain.ExpenseRejected, saved.Status)
	s.Equal(s.actorID, saved.LastUpdatedBy)
	s.mockVoucherRepo.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestRejectExpenseVoucher_Approved_Fails() {
	voucher := s.approvedExpense(300)

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	rejected, err := s.service.RejectExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrVoucherNotPending)
	s.Nil(rejected)
	s.mockVoucherRepo.AssertNotCalled(s.T(), "SaveExpenseVoucher", mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCancelExpenseVoucher_PendingBecomesCancelled() {
	voucher := s.approvedExpense(300)
	voucher.Status = domain.ExpensePending

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()
	s.mockVoucherRepo.On("SaveExpenseVoucher", s.ctx, mock.AnythingOfType("domain.ExpenseVoucher")).Return(nil).Once()

	cancelled, err := s.service.CancelExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ExpenseCancelled, cancelled.Status)
	s.mockVoucherRepo.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestCancelExpenseVoucher_AlreadyPaid_Conflicts() {
	voucher := s.approvedExpense(300)
	voucher.Status = domain.ExpensePaid

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	cancelled, err := s.service.CancelExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Nil(cancelled)
	s.mockVoucherRepo.AssertNotCalled(s.T(), "SaveExpenseVoucher", mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCancelExpenseVoucher_AlreadyCancelled_ReturnsUnchanged() {
	voucher := s.approvedExpense(300)
	voucher.Status = domain.ExpenseCancelled

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	cancelled, err := s.service.CancelExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ExpenseCancelled, cancelled.Status)
	s.mockVoucherRepo.AssertNotCalled(s.T(), "SaveExpenseVoucher", mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestPayExpenseVoucher_RecordsCashOutAndPosts() {
	voucher := s.approvedExpense(750)

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()
	s.mockTreasuryRepo.On("Begin", s.ctx).Return(nil, nil).Once()
	s.mockVoucherRepo.On("MarkExpensePaidInTx", s.ctx, mock.Anything, voucher.VoucherID, mock.AnythingOfType("time.Time"), s.actorID, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryForUpdate", s.ctx, mock.Anything, s.treasury.TreasuryID).Return(s.treasury, nil).Once()
	s.mockTreasuryRepo.On("UpdateTreasuryBalancesInTx", s.ctx, mock.Anything, mock.AnythingOfType("domain.Treasury"), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	var savedTxn domain.TreasuryTransaction
	s.mockTreasuryRepo.On("SaveTransactionInTx", s.ctx, mock.Anything, mock.AnythingOfType("domain.TreasuryTransaction")).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(2).(domain.TreasuryTransaction)
		}).Return(nil).Once()
	s.mockTreasuryRepo.On("Commit", s.ctx, mock.Anything).Return(nil).Once()
	s.mockPostingSvc.On("PostTreasuryTransaction", s.ctx, mock.AnythingOfType("domain.TreasuryTransaction"), (*domain.TreasuryTransfer)(nil)).Return(nil, nil).Once()

	paid, err := s.service.PayExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(paid)
	s.Equal(domain.ExpensePaid, paid.Status)
	s.Require().NotNil(paid.PaidDate)
	s.Equal(domain.CashOut, savedTxn.TransactionType)
	s.True(savedTxn.CashAmount.Equal(voucher.Amount))
	s.Equal("expense_voucher", savedTxn.ReferenceType)
	s.True(s.treasury.CashBalance.Equal(decimal.NewFromInt(4250)))
	s.mockTreasuryRepo.AssertExpectations(s.T())
	s.mockPostingSvc.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestPayExpenseVoucher_AlreadyPaid_ReturnsUnchanged() {
	voucher := s.approvedExpense(750)
	voucher.Status = domain.ExpensePaid

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	paid, err := s.service.PayExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ExpensePaid, paid.Status)
	s.mockTreasuryRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
	s.mockPostingSvc.AssertNotCalled(s.T(), "PostTreasuryTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestPayExpenseVoucher_NotApproved_Fails() {
	voucher := s.approvedExpense(750)
	voucher.Status = domain.ExpensePending

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	paid, err := s.service.PayExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrVoucherNotApproved)
	s.Nil(paid)
}

func (s *VoucherServiceTestSuite) TestPayExpenseVoucher_LostFlip_Refetches() {
	voucher := s.approvedExpense(750)
	settled := *voucher
	settled.Status = domain.ExpensePaid

	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()
	s.mockTreasuryRepo.On("Begin", s.ctx).Return(nil, nil).Once()
	s.mockVoucherRepo.On("MarkExpensePaidInTx", s.ctx, mock.Anything, voucher.VoucherID, mock.AnythingOfType("time.Time"), s.actorID, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
	s.mockVoucherRepo.On("FindExpenseVoucherByID", s.ctx, voucher.VoucherID).Return(&settled, nil).Once()

	paid, err := s.service.PayExpenseVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ExpensePaid, paid.Status)
	s.mockTreasuryRepo.AssertNotCalled(s.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCreateReceiptVoucher_Empty_Fails() {
	req := dto.CreateReceiptVoucherRequest{
		TreasuryID: s.treasury.TreasuryID,
		PayerName:  "Walk-in",
	}

	voucher, err := s.service.CreateReceiptVoucher(s.ctx, req, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrReceiptEmpty)
	s.Nil(voucher)
}

func (s *VoucherServiceTestSuite) draftReceipt(cash, gold int64) *domain.ReceiptVoucher {
	voucher := &domain.ReceiptVoucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: "REC-00004",
		Status:        domain.ReceiptDraft,
		TreasuryID:    s.treasury.TreasuryID,
		PayerName:     "Walk-in",
		CashAmount:    decimal.NewFromInt(cash),
		GoldWeight:    decimal.NewFromInt(gold),
		VoucherDate:   time.Now().UTC(),
	}
	if gold != 0 {
		voucher.Karat = domain.Karat21
	}
	return voucher
}

func (s *VoucherServiceTestSuite) TestConfirmReceiptVoucher_CashIn() {
	voucher := s.draftReceipt(900, 0)

	s.mockVoucherRepo.On("FindReceiptVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()
	s.mockTreasuryRepo.On("Begin", s.ctx).Return(nil, nil).Once()
	s.mockVoucherRepo.On("MarkReceiptConfirmedInTx", s.ctx, mock.Anything, voucher.VoucherID, s.actorID, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryForUpdate", s.ctx, mock.Anything, s.treasury.TreasuryID).Return(s.treasury, nil).Once()
	s.mockTreasuryRepo.On("UpdateTreasuryBalancesInTx", s.ctx, mock.Anything, mock.AnythingOfType("domain.Treasury"), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	var savedTxn domain.TreasuryTransaction
	s.mockTreasuryRepo.On("SaveTransactionInTx", s.ctx, mock.Anything, mock.AnythingOfType("domain.TreasuryTransaction")).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(2).(domain.TreasuryTransaction)
		}).Return(nil).Once()
	s.mockTreasuryRepo.On("Commit", s.ctx, mock.Anything).Return(nil).Once()
	s.mockPostingSvc.On("PostTreasuryTransaction", s.ctx, mock.AnythingOfType("domain.TreasuryTransaction"), (*domain.TreasuryTransfer)(nil)).Return(nil, nil).Once()

	confirmed, err := s.service.ConfirmReceiptVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ReceiptConfirmed, confirmed.Status)
	s.Equal(domain.CashIn, savedTxn.TransactionType)
	s.True(savedTxn.CashAmount.Equal(decimal.NewFromInt(900)))
	s.mockPostingSvc.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestConfirmReceiptVoucher_GoldOnlyBecomesGoldIn() {
	voucher := s.draftReceipt(0, 25)

	s.mockVoucherRepo.On("FindReceiptVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()
	s.mockTreasuryRepo.On("Begin", s.ctx).Return(nil, nil).Once()
	s.mockVoucherRepo.On("MarkReceiptConfirmedInTx", s.ctx, mock.Anything, voucher.VoucherID, s.actorID, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryForUpdate", s.ctx, mock.Anything, s.treasury.TreasuryID).Return(s.treasury, nil).Once()
	s.mockTreasuryRepo.On("UpdateTreasuryBalancesInTx", s.ctx, mock.Anything, mock.AnythingOfType("domain.Treasury"), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	var savedTxn domain.TreasuryTransaction
	s.mockTreasuryRepo.On("SaveTransactionInTx", s.ctx, mock.Anything, mock.AnythingOfType("domain.TreasuryTransaction")).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(2).(domain.TreasuryTransaction)
		}).Return(nil).Once()
	s.mockTreasuryRepo.On("Commit", s.ctx, mock.Anything).Return(nil).Once()
	s.mockPostingSvc.On("PostTreasuryTransaction", s.ctx, mock.AnythingOfType("domain.TreasuryTransaction"), (*domain.TreasuryTransfer)(nil)).Return(nil, nil).Once()

	confirmed, err := s.service.ConfirmReceiptVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ReceiptConfirmed, confirmed.Status)
	s.Equal(domain.GoldIn, savedTxn.TransactionType)
	s.True(s.treasury.GoldBalances.K21.Equal(decimal.NewFromInt(25)))
}

func (s *VoucherServiceTestSuite) TestConfirmReceiptVoucher_AlreadyConfirmed_ReturnsUnchanged() {
	voucher := s.draftReceipt(900, 0)
	voucher.Status = domain.ReceiptConfirmed

	s.mockVoucherRepo.On("FindReceiptVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	confirmed, err := s.service.ConfirmReceiptVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ReceiptConfirmed, confirmed.Status)
	s.mockTreasuryRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *VoucherServiceTestSuite) TestConfirmReceiptVoucher_Cancelled_Conflicts() {
	voucher := s.draftReceipt(900, 0)
	voucher.Status = domain.ReceiptCancelled

	s.mockVoucherRepo.On("FindReceiptVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	confirmed, err := s.service.ConfirmReceiptVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Nil(confirmed)
}

func (s *VoucherServiceTestSuite) TestCancelReceiptVoucher_DraftBecomesCancelled() {
	voucher := s.draftReceipt(900, 0)

	s.mockVoucherRepo.On("FindReceiptVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()
	s.mockVoucherRepo.On("SaveReceiptVoucher", s.ctx, mock.AnythingOfType("domain.ReceiptVoucher")).Return(nil).Once()

	cancelled, err := s.service.CancelReceiptVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.ReceiptCancelled, cancelled.Status)
	s.mockVoucherRepo.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestCancelReceiptVoucher_Confirmed_Conflicts() {
	voucher := s.draftReceipt(900, 0)
	voucher.Status = domain.ReceiptConfirmed

	s.mockVoucherRepo.On("FindReceiptVoucherByID", s.ctx, voucher.VoucherID).Return(voucher, nil).Once()

	cancelled, err := s.service.CancelReceiptVoucher(s.ctx, voucher.VoucherID, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Nil(cancelled)
	s.mockVoucherRepo.AssertNotCalled(s.T(), "SaveReceiptVoucher", mock.Anything, mock.Anything)
}

func TestVoucherService(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
