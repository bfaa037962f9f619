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

var ErrPartyNotFound = errors.New("party not found")

// partyService manages customer and supplier sub-ledgers. Party balances are
// never patched incrementally: every append replays the party's full
// transaction history under a row lock, so the stored balances are always the
// fold of the history.
type partyService struct {
	partyRepo portsrepo.PartyRepositoryWithTx
}

// NewPartyService creates a new PartyService.
func NewPartyService(partyRepo portsrepo.PartyRepositoryWithTx) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty registers a customer or supplier with zero balances.
func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	party := domain.Party{
		PartyID:     uuid.NewString(),
		Kind:        req.Kind,
		Name:        req.Name,
		Phone:       req.Phone,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorID, now),
	}
	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID), slog.String("kind", string(party.Kind)))
	return &party, nil
}

// GetPartyByID fetches one party.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("party %s not found", partyID))
		}
		return nil, fmt.Errorf("failed to find party: %w", err)
	}
	return party, nil
}

// ListParties returns parties of one kind (or all when kind is empty).
func (s *partyService) ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error) {
	parties, err := s.partyRepo.ListParties(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

// RecordTransaction appends one movement to the party's sub-ledger and
// recomputes the party's balances by full replay, all under a row lock.
func (s *partyService) RecordTransaction(ctx context.Context, req dto.RecordPartyTransactionRequest, creatorID string) (*domain.PartyTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Karat != domain.KaratNone && !req.Karat.Valid() {
		return nil, domain.ErrUnsupportedKarat
	}
	if (!req.GoldDebit.IsZero() || !req.GoldCredit.IsZero()) && !req.Karat.Valid() {
		return nil, domain.ErrUnsupportedKarat
	}

	now := time.Now().UTC()
	transactionDate := req.Date
	if transactionDate.IsZero() {
		transactionDate = now
	}
	txn := domain.PartyTransaction{
		TransactionID:   uuid.NewString(),
		PartyID:         req.PartyID,
		TransactionType: req.TransactionType,
		CashDebit:       req.CashDebit,
		CashCredit:      req.CashCredit,
		GoldDebit:       req.GoldDebit,
		GoldCredit:      req.GoldCredit,
		Karat:           req.Karat,
		InvoiceRef:      req.InvoiceRef,
		TransactionDate: transactionDate,
		AuditFields:     domain.NewAuditFields(creatorID, now),
	}

	tx, err := s.partyRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.partyRepo.Rollback(ctx, tx)

	party, err := s.partyRepo.FindPartyForUpdate(ctx, tx, req.PartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrPartyNotFound, req.PartyID)
		}
		return nil, fmt.Errorf("failed to lock party: %w", err)
	}
	if err := s.partyRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save party transaction: %w", err)
	}

	history, err := s.partyRepo.ListTransactionsByPartyInTx(ctx, tx, req.PartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load party history: %w", err)
	}
	party.CashBalance, party.GoldBalances = domain.ReplayPartyBalances(history)

	if err := s.partyRepo.UpdatePartyBalancesInTx(ctx, tx, *party, creatorID, now); err != nil {
		return nil, fmt.Errorf("failed to update party balances: %w", err)
	}
	if err := s.partyRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.Info("Party transaction recorded", slog.String("transaction_id", txn.TransactionID), slog.String("party_id", req.PartyID), slog.String("type", string(req.TransactionType)))
	return &txn, nil
}

// ListTransactions returns one party's sub-ledger history.
func (s *partyService) ListTransactions(ctx context.Context, partyID string) ([]domain.PartyTransaction, error) {
	if _, err := s.GetPartyByID(ctx, partyID); err != nil {
		return nil, err
	}
	txns, err := s.partyRepo.ListTransactionsByParty(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list party transactions: %w", err)
	}
	return txns, nil
}
