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
	ErrWorkshopNotFound         = errors.New("workshop not found")
	ErrWorkshopTransferEmpty    = errors.New("workshop transfer weight must be positive")
	ErrWorkshopSameWorkshop     = errors.New("workshop transfer source and destination must differ")
	ErrInsufficientWorkshopGold = errors.New("insufficient workshop gold balance")
)

// workshopService manages workshop custody: workshops, transfers between them
// and settlements. Unlike treasuries, workshop custody never goes negative:
// a transfer completion blocks when the source balance cannot cover it.
type workshopService struct {
	workshopRepo portsrepo.WorkshopRepositoryWithTx
}

// NewWorkshopService creates a new WorkshopService.
func NewWorkshopService(workshopRepo portsrepo.WorkshopRepositoryWithTx) portssvc.WorkshopSvcFacade {
	return &workshopService{workshopRepo: workshopRepo}
}

var _ portssvc.WorkshopSvcFacade = (*workshopService)(nil)

// CreateWorkshop registers a workshop with zero balances.
func (s *workshopService) CreateWorkshop(ctx context.Context, req dto.CreateWorkshopRequest, creatorID string) (*domain.Workshop, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	workshop := domain.Workshop{
		WorkshopID:   uuid.NewString(),
		Name:         req.Name,
		WorkshopType: req.WorkshopType,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(creatorID, now),
	}
	if err := s.workshopRepo.SaveWorkshop(ctx, workshop); err != nil {
		logger.Error("Failed to save workshop", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save workshop: %w", err)
	}

	logger.Info("Workshop created", slog.String("workshop_id", workshop.WorkshopID), slog.String("name", workshop.Name))
	return &workshop, nil
}

// GetWorkshopByID fetches one workshop.
func (s *workshopService) GetWorkshopByID(ctx context.Context, workshopID string) (*domain.Workshop, error) {
	workshop, err := s.workshopRepo.FindWorkshopByID(ctx, workshopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("workshop %s not found", workshopID))
		}
		return nil, fmt.Errorf("failed to find workshop: %w", err)
	}
	return workshop, nil
}

// ListWorkshops returns all workshops.
func (s *workshopService) ListWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	workshops, err := s.workshopRepo.ListWorkshops(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	return workshops, nil
}

// CreateWorkshopTransfer opens a pending gold transfer between workshops.
func (s *workshopService) CreateWorkshopTransfer(ctx context.Context, req dto.CreateWorkshopTransferRequest, creatorID string) (*domain.WorkshopTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromWorkshopID == req.ToWorkshopID {
		return nil, ErrWorkshopSameWorkshop
	}
	if !req.Weight.IsPositive() {
		return nil, ErrWorkshopTransferEmpty
	}
	if !req.Karat.Valid() {
		return nil, domain.ErrUnsupportedKarat
	}
	for _, id := range []string{req.FromWorkshopID, req.ToWorkshopID} {
		if _, err := s.GetWorkshopByID(ctx, id); err != nil {
			return nil, err
		}
	}

	transferNumber, err := s.workshopRepo.NextWorkshopTransferNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate transfer number: %w", err)
	}

	now := time.Now().UTC()
	transferDate := req.Date
	if transferDate.IsZero() {
		transferDate = now
	}
	transfer := domain.WorkshopTransfer{
		TransferID:     uuid.NewString(),
		TransferNumber: transferNumber,
		FromWorkshopID: req.FromWorkshopID,
		ToWorkshopID:   req.ToWorkshopID,
		Karat:          req.Karat,
		Weight:         req.Weight,
		Status:         domain.TransferPending,
		Notes:          req.Notes,
		TransferDate:   transferDate,
		AuditFields:    domain.NewAuditFields(creatorID, now),
	}
	if err := s.workshopRepo.SaveWorkshopTransfer(ctx, transfer); err != nil {
		logger.Error("Failed to save workshop transfer", slog.String("error", err.Error()), slog.String("transfer_number", transferNumber))
		return nil, fmt.Errorf("failed to save workshop transfer: %w", err)
	}

	logger.Info("Workshop transfer created", slog.String("transfer_id", transfer.TransferID), slog.String("transfer_number", transferNumber))
	return &transfer, nil
}

// CompleteWorkshopTransfer executes a pending workshop transfer. It wins the
// pending->completed flip, locks both workshops in ID order and moves the
// weight; the whole transaction fails when the source balance is short.
func (s *workshopService) CompleteWorkshopTransfer(ctx context.Context, transferID string, actorID string) (*domain.WorkshopTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.workshopRepo.FindWorkshopTransferByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("workshop transfer %s not found", transferID))
		}
		return nil, fmt.Errorf("failed to find workshop transfer: %w", err)
	}
	if transfer.Status == domain.TransferCompleted {
		return transfer, nil
	}
	if transfer.Status == domain.TransferCancelled {
		return nil, fmt.Errorf("%w: workshop transfer %s is cancelled", apperrors.ErrConflict, transfer.TransferNumber)
	}

	now := time.Now().UTC()
	tx, err := s.workshopRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.workshopRepo.Rollback(ctx, tx)

	won, err := s.workshopRepo.MarkWorkshopTransferCompletedInTx(ctx, tx, transferID, actorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark workshop transfer completed: %w", err)
	}
	if !won {
		return s.workshopRepo.FindWorkshopTransferByID(ctx, transferID)
	}

	firstID, secondID := transfer.FromWorkshopID, transfer.ToWorkshopID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	locked := make(map[string]*domain.Workshop, 2)
	for _, id := range []string{firstID, secondID} {
		workshop, err := s.workshopRepo.FindWorkshopForUpdate(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to lock workshop %s: %w", id, err)
		}
		locked[id] = workshop
	}
	from := locked[transfer.FromWorkshopID]
	to := locked[transfer.ToWorkshopID]

	available, err := from.GoldBalances.Get(transfer.Karat)
	if err != nil {
		return nil, err
	}
	if available.LessThan(transfer.Weight) {
		return nil, fmt.Errorf("%w: workshop %s holds %s g of karat %s, transfer needs %s g",
			ErrInsufficientWorkshopGold, from.Name, available.String(), transfer.Karat, transfer.Weight.String())
	}

	if err := from.GoldBalances.Add(transfer.Karat, transfer.Weight.Neg()); err != nil {
		return nil, err
	}
	if err := to.GoldBalances.Add(transfer.Karat, transfer.Weight); err != nil {
		return nil, err
	}
	for _, workshop := range []*domain.Workshop{from, to} {
		if err := s.workshopRepo.UpdateWorkshopBalancesInTx(ctx, tx, *workshop, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to update workshop balances: %w", err)
		}
	}
	if err := s.workshopRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	transfer.Status = domain.TransferCompleted
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = actorID
	logger.Info("Workshop transfer completed", slog.String("transfer_id", transferID), slog.String("transfer_number", transfer.TransferNumber))
	return transfer, nil
}

// ListWorkshopTransfers returns transfers touching one workshop.
func (s *workshopService) ListWorkshopTransfers(ctx context.Context, workshopID string) ([]domain.WorkshopTransfer, error) {
	if _, err := s.GetWorkshopByID(ctx, workshopID); err != nil {
		return nil, err
	}
	transfers, err := s.workshopRepo.ListWorkshopTransfers(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshop transfers: %w", err)
	}
	return transfers, nil
}

// RecordSettlement applies a reconciliation event to a workshop under a row
// lock: gold payments add custody, labor payments pay down the labor balance,
// scrap and powder receipts take gold back out.
func (s *workshopService) RecordSettlement(ctx context.Context, req dto.RecordSettlementRequest, creatorID string) (*domain.WorkshopSettlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Weight.IsZero() && !req.Karat.Valid() {
		return nil, domain.ErrUnsupportedKarat
	}

	now := time.Now().UTC()
	settlementDate := req.Date
	if settlementDate.IsZero() {
		settlementDate = now
	}
	settlement := domain.WorkshopSettlement{
		SettlementID:   uuid.NewString(),
		WorkshopID:     req.WorkshopID,
		SettlementType: req.SettlementType,
		Amount:         req.Amount,
		Weight:         req.Weight,
		GrossWeight:    req.GrossWeight,
		Karat:          req.Karat,
		Reference:      req.Reference,
		Notes:          req.Notes,
		SettlementDate: settlementDate,
		AuditFields:    domain.NewAuditFields(creatorID, now),
	}

	tx, err := s.workshopRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.workshopRepo.Rollback(ctx, tx)

	workshop, err := s.workshopRepo.FindWorkshopForUpdate(ctx, tx, req.WorkshopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrWorkshopNotFound, req.WorkshopID)
		}
		return nil, fmt.Errorf("failed to lock workshop: %w", err)
	}
	if err := workshop.ApplySettlement(settlement); err != nil {
		return nil, err
	}
	if err := s.workshopRepo.UpdateWorkshopBalancesInTx(ctx, tx, *workshop, creatorID, now); err != nil {
		return nil, fmt.Errorf("failed to update workshop balances: %w", err)
	}
	if err := s.workshopRepo.SaveSettlementInTx(ctx, tx, settlement); err != nil {
		return nil, fmt.Errorf("failed to save settlement: %w", err)
	}
	if err := s.workshopRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.Info("Workshop settlement recorded", slog.String("settlement_id", settlement.SettlementID), slog.String("workshop_id", req.WorkshopID), slog.String("type", string(req.SettlementType)))
	return &settlement, nil
}

// ListSettlements returns one workshop's settlement history.
func (s *workshopService) ListSettlements(ctx context.Context, workshopID string) ([]domain.WorkshopSettlement, error) {
	if _, err := s.GetWorkshopByID(ctx, workshopID); err != nil {
		return nil, err
	}
	settlements, err := s.workshopRepo.ListSettlementsByWorkshop(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}
