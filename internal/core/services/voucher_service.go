package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
)

var (
	ErrVoucherAmountInvalid = errors.New("voucher amount must be positive")
	ErrVoucherNotApproved   = errors.New("expense voucher must be approved before payment")
	ErrVoucherNotPending    = errors.New("expense voucher is not pending approval")
	ErrReceiptEmpty         = errors.New("receipt voucher must carry cash or gold")
)

// voucherService manages expense and receipt voucher lifecycles. The
// balance-affecting transitions (pay, confirm) win a conditional status flip
// inside the same transaction that moves the treasury balance, so each
// voucher settles exactly once.
type voucherService struct {
	voucherRepo  portsrepo.VoucherRepositoryFacade
	treasuryRepo portsrepo.TreasuryRepositoryWithTx
	postingSvc   portssvc.PostingSvcFacade
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, treasuryRepo portsrepo.TreasuryRepositoryWithTx, postingSvc portssvc.PostingSvcFacade) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo:  voucherRepo,
		treasuryRepo: treasuryRepo,
		postingSvc:   postingSvc,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// CreateExpenseVoucher opens an expense voucher awaiting approval.
func (s *voucherService) CreateExpenseVoucher(ctx context.Context, req dto.CreateExpenseVoucherRequest, creatorID string) (*domain.ExpenseVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, ErrVoucherAmountInvalid
	}
	if _, err := s.treasuryRepo.FindTreasuryByID(ctx, req.TreasuryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrTreasuryNotFound, req.TreasuryID)
		}
		return nil, fmt.Errorf("failed to fetch treasury: %w", err)
	}

	voucherNumber, err := s.voucherRepo.NextExpenseNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate voucher number: %w", err)
	}

	now := time.Now().UTC()
	voucherDate := req.Date
	if voucherDate.IsZero() {
		voucherDate = now
	}
	voucher := domain.ExpenseVoucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: voucherNumber,
		Status:        domain.ExpensePending,
		TreasuryID:    req.TreasuryID,
		Beneficiary:   req.Beneficiary,
		Amount:        req.Amount,
		Category:      req.Category,
		CostCenterID:  req.CostCenterID,
		Description:   req.Description,
		VoucherDate:   voucherDate,
		AuditFields:   domain.NewAuditFields(creatorID, now),
	}
	if err := s.voucherRepo.SaveExpenseVoucher(ctx, voucher); err != nil {
		logger.Error("Failed to save expense voucher", slog.String("error", err.Error()), slog.String("voucher_number", voucherNumber))
		return nil, fmt.Errorf("failed to save expense voucher: %w", err)
	}

	logger.Info("Expense voucher created", slog.String("voucher_id", voucher.VoucherID), slog.String("voucher_number", voucherNumber))
	return &voucher, nil
}

// ApproveExpenseVoucher moves a pending voucher to approved.
func (s *voucherService) ApproveExpenseVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ExpenseVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.GetExpenseVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: voucher %s is %s", ErrVoucherNotPending, voucher.VoucherNumber, voucher.Status)
	}

	now := time.Now().UTC()
	voucher.Status = domain.ExpenseApproved
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actorID
	if err := s.voucherRepo.SaveExpenseVoucher(ctx, *voucher); err != nil {
		return nil, fmt.Errorf("failed to save expense voucher: %w", err)
	}

	logger.Info("Expense voucher approved", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

// RejectExpenseVoucher declines a pending voucher.
func (s *voucherService) RejectExpenseVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ExpenseVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.GetExpenseVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status == domain.ExpenseRejected {
		return voucher, nil
	}
	if voucher.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: voucher %s is %s", ErrVoucherNotPending, voucher.VoucherNumber, voucher.Status)
	}

	now := time.Now().UTC()
	voucher.Status = domain.ExpenseRejected
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actorID
	if err := s.voucherRepo.SaveExpenseVoucher(ctx, *voucher); err != nil {
		return nil, fmt.Errorf("failed to save expense voucher: %w", err)
	}

	logger.Info("Expense voucher rejected", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

// CancelExpenseVoucher voids an unpaid voucher. A paid voucher already moved
// cash and cannot be cancelled; corrections go through an adjustment entry.
func (s *voucherService) CancelExpenseVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ExpenseVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.GetExpenseVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status == domain.ExpenseCancelled {
		return voucher, nil
	}
	if voucher.Status == domain.ExpensePaid {
		return nil, fmt.Errorf("%w: voucher %s is already paid", apperrors.ErrConflict, voucher.VoucherNumber)
	}

	now := time.Now().UTC()
	voucher.Status = domain.ExpenseCancelled
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actorID
	if err := s.voucherRepo.SaveExpenseVoucher(ctx, *voucher); err != nil {
		return nil, fmt.Errorf("failed to save expense voucher: %w", err)
	}

	logger.Info("Expense voucher cancelled", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

// PayExpenseVoucher settles an approved voucher: it wins the approved->paid
// flip and records the cash_out treasury transaction in one database
// transaction, then posts the GL entry. An already-paid voucher is returned
// unchanged.
func (s *voucherService) PayExpenseVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ExpenseVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.GetExpenseVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status == domain.ExpensePaid {
		return voucher, nil
	}
	if voucher.Status != domain.ExpenseApproved {
		return nil, fmt.Errorf("%w: voucher %s is %s", ErrVoucherNotApproved, voucher.VoucherNumber, voucher.Status)
	}

	now := time.Now().UTC()
	tx, err := s.treasuryRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.treasuryRepo.Rollback(ctx, tx)

	won, err := s.voucherRepo.MarkExpensePaidInTx(ctx, tx, voucherID, now, actorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark voucher paid: %w", err)
	}
	if !won {
		return s.GetExpenseVoucherByID(ctx, voucherID)
	}

	treasury, err := s.treasuryRepo.FindTreasuryForUpdate(ctx, tx, voucher.TreasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock treasury: %w", err)
	}

	txn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      voucher.TreasuryID,
		TransactionType: domain.CashOut,
		CashAmount:      voucher.Amount,
		CostCenterID:    voucher.CostCenterID,
		ReferenceType:   "expense_voucher",
		ReferenceID:     voucher.VoucherID,
		Description:     fmt.Sprintf("Expense %s: %s", voucher.VoucherNumber, voucher.Beneficiary),
		TransactionDate: now,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}
	if err := treasury.Apply(&txn); err != nil {
		return nil, err
	}
	if err := s.treasuryRepo.UpdateTreasuryBalancesInTx(ctx, tx, *treasury, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update treasury balances: %w", err)
	}
	if err := s.treasuryRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save treasury transaction: %w", err)
	}
	if err := s.treasuryRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	voucher.Status = domain.ExpensePaid
	voucher.PaidDate = &now
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actorID

	if _, err := s.postingSvc.PostTreasuryTransaction(ctx, txn, nil); err != nil {
		logger.Error("GL posting failed for expense voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
	}

	logger.Info("Expense voucher paid", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

// GetExpenseVoucherByID fetches one expense voucher.
func (s *voucherService) GetExpenseVoucherByID(ctx context.Context, voucherID string) (*domain.ExpenseVoucher, error) {
	voucher, err := s.voucherRepo.FindExpenseVoucherByID(ctx, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("expense voucher %s not found", voucherID))
		}
		return nil, fmt.Errorf("failed to find expense voucher: %w", err)
	}
	return voucher, nil
}

// ListExpenseVouchers returns a page of expense vouchers, newest first.
func (s *voucherService) ListExpenseVouchers(ctx context.Context, params dto.ListParams) (*dto.ListExpenseVouchersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	vouchers, nextToken, err := s.voucherRepo.ListExpenseVouchers(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense vouchers: %w", err)
	}
	return &dto.ListExpenseVouchersResponse{Vouchers: vouchers, NextToken: nextToken}, nil
}

// CreateReceiptVoucher opens a draft receipt voucher.
func (s *voucherService) CreateReceiptVoucher(ctx context.Context, req dto.CreateReceiptVoucherRequest, creatorID string) (*domain.ReceiptVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CashAmount.IsZero() && req.GoldWeight.IsZero() {
		return nil, ErrReceiptEmpty
	}
	if !req.GoldWeight.IsZero() && !req.Karat.Valid() {
		return nil, domain.ErrUnsupportedKarat
	}
	if _, err := s.treasuryRepo.FindTreasuryByID(ctx, req.TreasuryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrTreasuryNotFound, req.TreasuryID)
		}
		return nil, fmt.Errorf("failed to fetch treasury: %w", err)
	}

	voucherNumber, err := s.voucherRepo.NextReceiptNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate voucher number: %w", err)
	}

	now := time.Now().UTC()
	voucherDate := req.Date
	if voucherDate.IsZero() {
		voucherDate = now
	}
	voucher := domain.ReceiptVoucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: voucherNumber,
		Status:        domain.ReceiptDraft,
		TreasuryID:    req.TreasuryID,
		PayerName:     req.PayerName,
		PaymentMethod: req.PaymentMethod,
		CashAmount:    req.CashAmount,
		GoldWeight:    req.GoldWeight,
		Karat:         req.Karat,
		CostCenterID:  req.CostCenterID,
		Description:   req.Description,
		VoucherDate:   voucherDate,
		AuditFields:   domain.NewAuditFields(creatorID, now),
	}
	if err := s.voucherRepo.SaveReceiptVoucher(ctx, voucher); err != nil {
		logger.Error("Failed to save receipt voucher", slog.String("error", err.Error()), slog.String("voucher_number", voucherNumber))
		return nil, fmt.Errorf("failed to save receipt voucher: %w", err)
	}

	logger.Info("Receipt voucher created", slog.String("voucher_id", voucher.VoucherID), slog.String("voucher_number", voucherNumber))
	return &voucher, nil
}

// ConfirmReceiptVoucher settles a draft receipt: it wins the draft->confirmed
// flip and records the inbound treasury transaction in one database
// transaction, then posts the GL entry. An already-confirmed voucher is
// returned unchanged.
func (s *voucherService) ConfirmReceiptVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ReceiptVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.GetReceiptVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status == domain.ReceiptConfirmed {
		return voucher, nil
	}
	if voucher.Status == domain.ReceiptCancelled {
		return nil, fmt.Errorf("%w: receipt voucher %s is cancelled", apperrors.ErrConflict, voucher.VoucherNumber)
	}

	now := time.Now().UTC()
	tx, err := s.treasuryRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.treasuryRepo.Rollback(ctx, tx)

	won, err := s.voucherRepo.MarkReceiptConfirmedInTx(ctx, tx, voucherID, actorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark receipt confirmed: %w", err)
	}
	if !won {
		return s.GetReceiptVoucherByID(ctx, voucherID)
	}

	treasury, err := s.treasuryRepo.FindTreasuryForUpdate(ctx, tx, voucher.TreasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock treasury: %w", err)
	}

	transactionType := domain.CashIn
	if voucher.CashAmount.IsZero() {
		transactionType = domain.GoldIn
	}
	txn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      voucher.TreasuryID,
		TransactionType: transactionType,
		CashAmount:      voucher.CashAmount,
		GoldWeight:      voucher.GoldWeight,
		Karat:           voucher.Karat,
		CostCenterID:    voucher.CostCenterID,
		ReferenceType:   "receipt_voucher",
		ReferenceID:     voucher.VoucherID,
		Description:     fmt.Sprintf("Receipt %s: %s", voucher.VoucherNumber, voucher.PayerName),
		TransactionDate: now,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}
	if err := treasury.Apply(&txn); err != nil {
		return nil, err
	}
	if err := s.treasuryRepo.UpdateTreasuryBalancesInTx(ctx, tx, *treasury, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update treasury balances: %w", err)
	}
	if err := s.treasuryRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save treasury transaction: %w", err)
	}
	if err := s.treasuryRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	voucher.Status = domain.ReceiptConfirmed
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actorID

	if _, err := s.postingSvc.PostTreasuryTransaction(ctx, txn, nil); err != nil {
		logger.Error("GL posting failed for receipt voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
	}

	logger.Info("Receipt voucher confirmed", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

// CancelReceiptVoucher voids a draft receipt. A confirmed receipt already
// moved cash and cannot be cancelled.
func (s *voucherService) CancelReceiptVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ReceiptVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.GetReceiptVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status == domain.ReceiptCancelled {
		return voucher, nil
	}
	if voucher.Status == domain.ReceiptConfirmed {
		return nil, fmt.Errorf("%w: receipt voucher %s is already confirmed", apperrors.ErrConflict, voucher.VoucherNumber)
	}

	now := time.Now().UTC()
	voucher.Status = domain.ReceiptCancelled
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actorID
	if err := s.voucherRepo.SaveReceiptVoucher(ctx, *voucher); err != nil {
		return nil, fmt.Errorf("failed to save receipt voucher: %w", err)
	}

	logger.Info("Receipt voucher cancelled", slog.String("voucher_id", voucherID), slog.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

// GetReceiptVoucherByID fetches one receipt voucher.
func (s *voucherService) GetReceiptVoucherByID(ctx context.Context, voucherID string) (*domain.ReceiptVoucher, error) {
	voucher, err := s.voucherRepo.FindReceiptVoucherByID(ctx, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("receipt voucher %s not found", voucherID))
		}
		return nil, fmt.Errorf("failed to find receipt voucher: %w", err)
	}
	return voucher, nil
}

// ListReceiptVouchers returns a page of receipt vouchers, newest first.
func (s *voucherService) ListReceiptVouchers(ctx context.Context, params dto.ListParams) (*dto.ListReceiptVouchersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	vouchers, nextToken, err := s.voucherRepo.ListReceiptVouchers(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipt vouchers: %w", err)
	}
	return &dto.ListReceiptVouchersResponse{Vouchers: vouchers, NextToken: nextToken}, nil
}
