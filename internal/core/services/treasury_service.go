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
	ErrTreasuryNotFound     = errors.New("treasury not found")
	ErrTransferSameTreasury = errors.New("transfer source and destination must differ")
	ErrTransferEmpty        = errors.New("transfer must move cash, gold or stones")
	ErrTransferNotPending   = errors.New("transfer is not pending")
	ErrDirectTransferRecord = errors.New("transfer legs are recorded by completing a transfer document")
)

// treasuryService manages treasuries, their transactions and transfer
// documents. Balance mutation happens under row locks; completing a transfer
// wins a conditional status flip first, so two concurrent completions apply
// the legs exactly once.
type treasuryService struct {
	treasuryRepo portsrepo.TreasuryRepositoryWithTx
	postingSvc   portssvc.PostingSvcFacade
}

// NewTreasuryService creates a new TreasuryService.
func NewTreasuryService(treasuryRepo portsrepo.TreasuryRepositoryWithTx, postingSvc portssvc.PostingSvcFacade) portssvc.TreasurySvcFacade {
	return &treasuryService{
		treasuryRepo: treasuryRepo,
		postingSvc:   postingSvc,
	}
}

var _ portssvc.TreasurySvcFacade = (*treasuryService)(nil)

// CreateTreasury creates a new custody node with zero balances.
func (s *treasuryService) CreateTreasury(ctx context.Context, req dto.CreateTreasuryRequest, creatorID string) (*domain.Treasury, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.treasuryRepo.FindTreasuryByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: treasury code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check treasury code: %w", err)
	}
	if req.ParentTreasuryID != nil {
		if _, err := s.treasuryRepo.FindTreasuryByID(ctx, *req.ParentTreasuryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent ID %s", ErrTreasuryNotFound, *req.ParentTreasuryID)
			}
			return nil, fmt.Errorf("failed to fetch parent treasury: %w", err)
		}
	}

	now := time.Now().UTC()
	treasury := domain.Treasury{
		TreasuryID:       uuid.NewString(),
		Code:             req.Code,
		Name:             req.Name,
		ParentTreasuryID: req.ParentTreasuryID,
		TreasuryType:     req.TreasuryType,
		LinkedAccountID:  req.LinkedAccountID,
		WorkshopID:       req.WorkshopID,
		IsActive:         true,
		AuditFields:      domain.NewAuditFields(creatorID, now),
	}
	if err := s.treasuryRepo.SaveTreasury(ctx, treasury); err != nil {
		logger.Error("Failed to save treasury", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save treasury: %w", err)
	}

	logger.Info("Treasury created", slog.String("treasury_id", treasury.TreasuryID), slog.String("code", treasury.Code))
	return &treasury, nil
}

// GetTreasuryByID fetches one treasury.
func (s *treasuryService) GetTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error) {
	treasury, err := s.treasuryRepo.FindTreasuryByID(ctx, treasuryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("treasury %s not found", treasuryID))
		}
		return nil, fmt.Errorf("failed to find treasury: %w", err)
	}
	return treasury, nil
}

// ListTreasuries returns all treasuries.
func (s *treasuryService) ListTreasuries(ctx context.Context) ([]domain.Treasury, error) {
	treasuries, err := s.treasuryRepo.ListTreasuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasuries: %w", err)
	}
	return treasuries, nil
}

// RecordTransaction applies one balance-affecting event to a treasury under a
// row lock and posts the matching GL entry after commit. Transfer legs cannot
// be recorded directly; they only exist through transfer completion.
func (s *treasuryService) RecordTransaction(ctx context.Context, req dto.RecordTreasuryTransactionRequest, creatorID string) (*domain.TreasuryTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TransactionType == domain.TransferIn || req.TransactionType == domain.TransferOut {
		return nil, ErrDirectTransferRecord
	}
	if !req.GoldWeight.IsZero() && !req.Karat.Valid() {
		return nil, domain.ErrUnsupportedKarat
	}

	now := time.Now().UTC()
	transactionDate := req.Date
	if transactionDate.IsZero() {
		transactionDate = now
	}
	txn := domain.TreasuryTransaction{
		TransactionID:     uuid.NewString(),
		TreasuryID:        req.TreasuryID,
		TransactionType:   req.TransactionType,
		CashAmount:        req.CashAmount,
		GoldWeight:        req.GoldWeight,
		Karat:             req.Karat,
		GoldCastingWeight: req.GoldCastingWeight,
		StonesWeight:      req.StonesWeight,
		CostCenterID:      req.CostCenterID,
		ReferenceType:     req.ReferenceType,
		ReferenceID:       req.ReferenceID,
		Description:       req.Description,
		TransactionDate:   transactionDate,
		AuditFields:       domain.NewAuditFields(creatorID, now),
	}

	tx, err := s.treasuryRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.treasuryRepo.Rollback(ctx, tx)

	treasury, err := s.treasuryRepo.FindTreasuryForUpdate(ctx, tx, req.TreasuryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrTreasuryNotFound, req.TreasuryID)
		}
		return nil, fmt.Errorf("failed to lock treasury: %w", err)
	}
	if err := treasury.Apply(&txn); err != nil {
		return nil, err
	}
	if err := s.treasuryRepo.UpdateTreasuryBalancesInTx(ctx, tx, *treasury, creatorID, now); err != nil {
		return nil, fmt.Errorf("failed to update treasury balances: %w", err)
	}
	if err := s.treasuryRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save treasury transaction: %w", err)
	}
	if err := s.treasuryRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	if _, err := s.postingSvc.PostTreasuryTransaction(ctx, txn, nil); err != nil {
		// The custody movement is already committed; posting failures are
		// surfaced for manual adjustment, never unwound.
		logger.Error("GL posting failed for treasury transaction", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
	}

	logger.Info("Treasury transaction recorded", slog.String("transaction_id", txn.TransactionID), slog.String("treasury_id", txn.TreasuryID), slog.String("type", string(txn.TransactionType)))
	return &txn, nil
}

// ListTransactions returns a treasury's transaction history, newest first.
func (s *treasuryService) ListTransactions(ctx context.Context, treasuryID string) ([]domain.TreasuryTransaction, error) {
	if _, err := s.GetTreasuryByID(ctx, treasuryID); err != nil {
		return nil, err
	}
	txns, err := s.treasuryRepo.ListTransactionsByTreasury(ctx, treasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasury transactions: %w", err)
	}
	return txns, nil
}

// CreateTransfer opens a pending transfer document between two treasuries.
func (s *treasuryService) CreateTransfer(ctx context.Context, req dto.CreateTreasuryTransferRequest, creatorID string) (*domain.TreasuryTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromTreasuryID == req.ToTreasuryID {
		return nil, ErrTransferSameTreasury
	}
	if req.CashAmount.IsZero() && req.GoldWeight.IsZero() && req.StonesWeight.IsZero() {
		return nil, ErrTransferEmpty
	}
	if !req.GoldWeight.IsZero() && !req.Karat.Valid() {
		return nil, domain.ErrUnsupportedKarat
	}
	for _, id := range []string{req.FromTreasuryID, req.ToTreasuryID} {
		if _, err := s.treasuryRepo.FindTreasuryByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %s", ErrTreasuryNotFound, id)
			}
			return nil, fmt.Errorf("failed to fetch treasury: %w", err)
		}
	}

	transferNumber, err := s.treasuryRepo.NextTransferNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate transfer number: %w", err)
	}

	now := time.Now().UTC()
	transferDate := req.Date
	if transferDate.IsZero() {
		transferDate = now
	}
	transfer := domain.TreasuryTransfer{
		TransferID:     uuid.NewString(),
		TransferNumber: transferNumber,
		FromTreasuryID: req.FromTreasuryID,
		ToTreasuryID:   req.ToTreasuryID,
		CashAmount:     req.CashAmount,
		GoldWeight:     req.GoldWeight,
		Karat:          req.Karat,
		StonesWeight:   req.StonesWeight,
		CostCenterID:   req.CostCenterID,
		Status:         domain.TransferPending,
		Notes:          req.Notes,
		TransferDate:   transferDate,
		AuditFields:    domain.NewAuditFields(creatorID, now),
	}
	if err := s.treasuryRepo.SaveTransfer(ctx, transfer); err != nil {
		logger.Error("Failed to save transfer", slog.String("error", err.Error()), slog.String("transfer_number", transferNumber))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer created", slog.String("transfer_id", transfer.TransferID), slog.String("transfer_number", transferNumber))
	return &transfer, nil
}

// GetTransferByID fetches one transfer document.
func (s *treasuryService) GetTransferByID(ctx context.Context, transferID string) (*domain.TreasuryTransfer, error) {
	transfer, err := s.treasuryRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transfer %s not found", transferID))
		}
		return nil, fmt.Errorf("failed to find transfer: %w", err)
	}
	return transfer, nil
}

// ListTransfers returns a page of transfer documents, newest first.
func (s *treasuryService) ListTransfers(ctx context.Context, params dto.ListParams) (*dto.ListTransfersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	transfers, nextToken, err := s.treasuryRepo.ListTransfers(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return &dto.ListTransfersResponse{Transfers: transfers, NextToken: nextToken}, nil
}

// CompleteTransfer executes a pending transfer: it wins the pending->completed
// status flip, locks both treasuries in ID order, applies the out and in legs
// as two treasury transactions, and posts one GL entry from the out leg after
// commit. A transfer that already completed is returned unchanged.
func (s *treasuryService) CompleteTransfer(ctx context.Context, transferID string, actorID string) (*domain.TreasuryTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.GetTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status == domain.TransferCompleted {
		return transfer, nil
	}
	if transfer.Status == domain.TransferCancelled {
		return nil, fmt.Errorf("%w: transfer %s is cancelled", apperrors.ErrConflict, transfer.TransferNumber)
	}

	now := time.Now().UTC()
	tx, err := s.treasuryRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.treasuryRepo.Rollback(ctx, tx)

	won, err := s.treasuryRepo.MarkTransferCompletedInTx(ctx, tx, transferID, actorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark transfer completed: %w", err)
	}
	if !won {
		// A concurrent caller beat us to the flip; the legs are theirs.
		return s.GetTransferByID(ctx, transferID)
	}

	// Lock both treasuries in deterministic order to avoid deadlock between
	// opposing transfers.
	firstID, secondID := transfer.FromTreasuryID, transfer.ToTreasuryID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	locked := make(map[string]*domain.Treasury, 2)
	for _, id := range []string{firstID, secondID} {
		treasury, err := s.treasuryRepo.FindTreasuryForUpdate(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to lock treasury %s: %w", id, err)
		}
		locked[id] = treasury
	}
	from := locked[transfer.FromTreasuryID]
	to := locked[transfer.ToTreasuryID]

	audit := domain.NewAuditFields(actorID, now)
	outTxn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      transfer.FromTreasuryID,
		TransactionType: domain.TransferOut,
		CashAmount:      transfer.CashAmount,
		GoldWeight:      transfer.GoldWeight,
		Karat:           transfer.Karat,
		StonesWeight:    transfer.StonesWeight,
		CostCenterID:    transfer.CostCenterID,
		ReferenceType:   "treasury_transfer",
		ReferenceID:     transfer.TransferID,
		Description:     fmt.Sprintf("Transfer %s to %s", transfer.TransferNumber, to.Name),
		TransactionDate: now,
		AuditFields:     audit,
	}
	inTxn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      transfer.ToTreasuryID,
		TransactionType: domain.TransferIn,
		CashAmount:      transfer.CashAmount,
		GoldWeight:      transfer.GoldWeight,
		Karat:           transfer.Karat,
		StonesWeight:    transfer.StonesWeight,
		CostCenterID:    transfer.CostCenterID,
		ReferenceType:   "treasury_transfer",
		ReferenceID:     transfer.TransferID,
		Description:     fmt.Sprintf("Transfer %s from %s", transfer.TransferNumber, from.Name),
		TransactionDate: now,
		AuditFields:     audit,
	}

	if err := from.Apply(&outTxn); err != nil {
		return nil, err
	}
	if err := to.Apply(&inTxn); err != nil {
		return nil, err
	}
	for _, treasury := range []*domain.Treasury{from, to} {
		if err := s.treasuryRepo.UpdateTreasuryBalancesInTx(ctx, tx, *treasury, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to update treasury balances: %w", err)
		}
	}
	for _, txn := range []domain.TreasuryTransaction{outTxn, inTxn} {
		if err := s.treasuryRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
			return nil, fmt.Errorf("failed to save transfer leg: %w", err)
		}
	}
	if err := s.treasuryRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	transfer.Status = domain.TransferCompleted
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = actorID

	if _, err := s.postingSvc.PostTreasuryTransaction(ctx, outTxn, transfer); err != nil {
		logger.Error("GL posting failed for transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
	}

	logger.Info("Transfer completed", slog.String("transfer_id", transferID), slog.String("transfer_number", transfer.TransferNumber))
	return transfer, nil
}

// CancelTransfer cancels a pending transfer. No balances move.
func (s *treasuryService) CancelTransfer(ctx context.Context, transferID string, actorID string) (*domain.TreasuryTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.GetTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status == domain.TransferCancelled {
		return transfer, nil
	}

	now := time.Now().UTC()
	won, err := s.treasuryRepo.MarkTransferCancelled(ctx, transferID, actorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel transfer: %w", err)
	}
	if !won {
		return nil, fmt.Errorf("%w: transfer %s", ErrTransferNotPending, transfer.TransferNumber)
	}

	transfer.Status = domain.TransferCancelled
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = actorID
	logger.Info("Transfer cancelled", slog.String("transfer_id", transferID), slog.String("transfer_number", transfer.TransferNumber))
	return transfer, nil
}
