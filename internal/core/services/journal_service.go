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
	"github.com/aurumworks/gold_ledger_app/internal/utils/accounting"
)

var (
	ErrEntryMinLines         = errors.New("journal entry must have at least two lines")
	ErrEntryMinAccounts      = errors.New("journal entry must affect at least two different accounts")
	ErrLedgerAccountNotFound = errors.New("ledger account not found")
)

const defaultListLimit = 50

// journalService reads the ledger log and records manual adjustment entries.
// Posted lines are immutable; an adjustment entry is the only correction path.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateAdjustmentEntry validates and posts a manual correction entry.
func (s *journalService) CreateAdjustmentEntry(ctx context.Context, req dto.CreateAdjustmentEntryRequest, creatorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}
	accountSet := make(map[string]bool)
	for _, line := range req.Lines {
		accountSet[line.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrEntryMinAccounts
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.LedgerLine, len(req.Lines))
	accountIDs := make([]string, 0, len(accountSet))
	for id := range accountSet {
		accountIDs = append(accountIDs, id)
	}
	for i, lineReq := range req.Lines {
		if lineReq.Debit.IsNegative() || lineReq.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line amounts must not be negative for account %s", apperrors.ErrValidation, lineReq.AccountID)
		}
		if !lineReq.Debit.IsZero() && !lineReq.Credit.IsZero() {
			return nil, fmt.Errorf("%w: line for account %s carries both a debit and a credit", apperrors.ErrValidation, lineReq.AccountID)
		}
		lines[i] = domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			CostCenterID: lineReq.CostCenterID,
			Debit:        lineReq.Debit,
			Credit:       lineReq.Credit,
			GoldDebit:    lineReq.GoldDebit,
			GoldCredit:   lineReq.GoldCredit,
			AuditFields:  domain.NewAuditFields(creatorID, now),
		}
	}

	if err := domain.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for adjustment entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	accountTypes := make(map[string]domain.AccountType, len(accountIDs))
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrLedgerAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := accounting.ComputeBalanceChanges(lines, accountTypes)
	if err != nil {
		logger.Error("Failed to compute balance changes", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("internal error computing balance changes: %w", err)
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		Reference:   req.Reference,
		Date:        req.Date,
		Description: req.Description,
		SourceType:  domain.SourceManual,
		SourceID:    entryID,
		AuditFields: domain.NewAuditFields(creatorID, now),
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines, balanceChanges); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: reference %s already posted", apperrors.ErrDuplicate, req.Reference)
		}
		logger.Error("Failed to save adjustment entry", slog.String("error", err.Error()), slog.String("reference", req.Reference))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	entry.Lines = lines
	logger.Info("Adjustment entry posted", slog.String("entry_id", entryID), slog.String("reference", req.Reference))
	return &entry, nil
}

// GetEntryByID fetches one entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries returns a page of journal entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i, entry := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(entry)
	}
	return resp, nil
}

// ListLinesByAccount returns a page of one account's ledger lines.
func (s *journalService) ListLinesByAccount(ctx context.Context, accountID string, params dto.ListParams) (*dto.ListLinesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	resp := &dto.ListLinesResponse{
		Lines:     make([]dto.LedgerLineResponse, len(lines)),
		NextToken: nextToken,
	}
	for i, line := range lines {
		resp.Lines[i] = dto.ToLedgerLineResponse(line)
	}
	return resp, nil
}
