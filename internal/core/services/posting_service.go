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
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
	"github.com/aurumworks/gold_ledger_app/internal/utils/accounting"
)

// postingService maps business events to balanced journal entries. Posting is
// strictly best-effort with respect to configuration: a missing account
// mapping or treasury linkage skips the entry (with a warning and an in-app
// notification) and never blocks the originating business event. A duplicate
// reference means the entry was already posted; the existing entry is
// returned.
type postingService struct {
	journalRepo      portsrepo.JournalRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	treasuryRepo     portsrepo.TreasuryRepositoryWithTx
	settingsRepo     portsrepo.SettingsRepositoryFacade
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	treasuryRepo portsrepo.TreasuryRepositoryWithTx,
	settingsRepo portsrepo.SettingsRepositoryFacade,
	notificationRepo portsrepo.NotificationRepositoryFacade,
) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo:      journalRepo,
		accountRepo:      accountRepo,
		treasuryRepo:     treasuryRepo,
		settingsRepo:     settingsRepo,
		notificationRepo: notificationRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// skip records a posting skip: a warning log plus an in-app notification so
// the bookkeeper can repost manually after fixing the configuration.
func (s *postingService) skip(ctx context.Context, reason, reference string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Warn("GL posting skipped", slog.String("reason", reason), slog.String("reference", reference))

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		Title:          "GL posting skipped",
		Message:        fmt.Sprintf("%s (reference %s); post a manual adjustment after completing the finance settings", reason, reference),
		Level:          domain.LevelWarning,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		logger.Error("Failed to save posting-skip notification", slog.String("error", err.Error()), slog.String("reference", reference))
	}
}

// saveEntry posts the entry, resolving account types for balance application.
// A reference collision means a concurrent caller already posted this
// business event; the existing entry is returned.
func (s *postingService) saveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := domain.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}
	accountTypes := make(map[string]domain.AccountType, len(accountIDs))
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrLedgerAccountNotFound, id)
		}
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := accounting.ComputeBalanceChanges(lines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("internal error computing balance changes: %w", err)
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines, balanceChanges); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Entry already posted for reference", slog.String("reference", entry.Reference))
			existing, findErr := s.journalRepo.FindEntryByReference(ctx, entry.Reference)
			if findErr != nil {
				return nil, fmt.Errorf("failed to fetch already-posted entry: %w", findErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	entry.Lines = lines
	logger.Info("GL entry posted", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.Reference))
	return &entry, nil
}

// PostTreasuryTransaction posts the GL entry for one treasury transaction.
// Only cash_in, finished_goods_in, cash_out and transfer_out post; a
// transfer_in leg never posts (the transfer is represented by its out leg).
func (s *postingService) PostTreasuryTransaction(ctx context.Context, txn domain.TreasuryTransaction, transfer *domain.TreasuryTransfer) (*domain.JournalEntry, error) {
	reference := "TRX-" + txn.TransactionID

	switch txn.TransactionType {
	case domain.CashIn, domain.CashOut, domain.TransferOut, domain.FinishedGoodsIn:
	default:
		return nil, nil
	}
	if txn.CashAmount.IsZero() && txn.GoldWeight.IsZero() {
		return nil, nil
	}

	settings, err := s.settingsRepo.GetFinanceSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.skip(ctx, "finance settings are not configured", reference)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load finance settings: %w", err)
	}

	treasury, err := s.treasuryRepo.FindTreasuryByID(ctx, txn.TreasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch treasury %s: %w", txn.TreasuryID, err)
	}
	if treasury.LinkedAccountID == nil {
		s.skip(ctx, fmt.Sprintf("treasury %s has no linked GL account", treasury.Name), reference)
		return nil, nil
	}
	treasuryAccountID := *treasury.LinkedAccountID

	var debitAccountID, creditAccountID string
	switch txn.TransactionType {
	case domain.CashIn, domain.FinishedGoodsIn:
		if settings.SalesRevenueAccountID == nil {
			s.skip(ctx, "sales revenue account is not configured", reference)
			return nil, nil
		}
		debitAccountID = treasuryAccountID
		creditAccountID = *settings.SalesRevenueAccountID
	case domain.CashOut:
		if settings.CostOfGoldAccountID == nil {
			s.skip(ctx, "cost of gold account is not configured", reference)
			return nil, nil
		}
		debitAccountID = *settings.CostOfGoldAccountID
		creditAccountID = treasuryAccountID
	case domain.TransferOut:
		if transfer == nil {
			return nil, fmt.Errorf("%w: transfer_out transaction %s has no transfer record", apperrors.ErrValidation, txn.TransactionID)
		}
		peer, err := s.treasuryRepo.FindTreasuryByID(ctx, transfer.ToTreasuryID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch destination treasury %s: %w", transfer.ToTreasuryID, err)
		}
		if peer.LinkedAccountID == nil {
			s.skip(ctx, fmt.Sprintf("destination treasury %s has no linked GL account", peer.Name), reference)
			return nil, nil
		}
		debitAccountID = *peer.LinkedAccountID
		creditAccountID = treasuryAccountID
	}

	if txn.CashAmount.IsZero() {
		// A pure gold movement; the cash axis has nothing to conserve.
		return nil, nil
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.NewAuditFields(txn.CreatedBy, now)

	lines := []domain.LedgerLine{
		{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    debitAccountID,
			CostCenterID: txn.CostCenterID,
			Debit:        txn.CashAmount,
			GoldDebit:    txn.GoldWeight,
			AuditFields:  audit,
		},
		{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    creditAccountID,
			CostCenterID: txn.CostCenterID,
			Credit:       txn.CashAmount,
			GoldCredit:   txn.GoldWeight,
			AuditFields:  audit,
		},
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		Reference:   reference,
		Date:        txn.TransactionDate,
		Description: txn.Description,
		SourceType:  domain.SourceTreasuryTransaction,
		SourceID:    txn.TransactionID,
		AuditFields: audit,
	}
	return s.saveEntry(ctx, entry, lines)
}

// PostInvoice posts revenue recognition for a confirmed sales invoice. The
// cash leg is net of any old-gold exchange value; the exchange itself debits
// the old-gold inventory account carrying the traded-in weight.
func (s *postingService) PostInvoice(ctx context.Context, invoice domain.SalesInvoice, creatorID string) (*domain.JournalEntry, error) {
	reference := invoice.InvoiceNumber

	settings, err := s.settingsRepo.GetFinanceSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.skip(ctx, "finance settings are not configured", reference)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load finance settings: %w", err)
	}
	if settings.SalesRevenueAccountID == nil {
		s.skip(ctx, "sales revenue account is not configured", reference)
		return nil, nil
	}

	var receiptAccountID *string
	if invoice.PaymentMethod == "bank" {
		receiptAccountID = settings.BankAccountID
	} else {
		receiptAccountID = settings.CashAccountID
	}
	if receiptAccountID == nil {
		s.skip(ctx, fmt.Sprintf("no account is configured for %s receipts", invoice.PaymentMethod), reference)
		return nil, nil
	}
	if invoice.IsExchange && settings.OldGoldAccountID == nil {
		s.skip(ctx, "old gold account is not configured", reference)
		return nil, nil
	}
	if !invoice.TotalTax.IsZero() && settings.VATAccountID == nil {
		s.skip(ctx, "VAT account is not configured", reference)
		return nil, nil
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.NewAuditFields(creatorID, now)

	var lines []domain.LedgerLine
	cashReceived := invoice.CashReceived()
	if !cashReceived.IsZero() {
		lines = append(lines, domain.LedgerLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   *receiptAccountID,
			Debit:       cashReceived,
			AuditFields: audit,
		})
	}
	if invoice.IsExchange && !invoice.ExchangeValueDeduced.IsZero() {
		lines = append(lines, domain.LedgerLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   *settings.OldGoldAccountID,
			Debit:       invoice.ExchangeValueDeduced,
			GoldDebit:   invoice.ExchangeGoldWeight,
			AuditFields: audit,
		})
	}
	if !invoice.TotalTax.IsZero() {
		lines = append(lines, domain.LedgerLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   *settings.VATAccountID,
			Credit:      invoice.TotalTax,
			AuditFields: audit,
		})
	}
	lines = append(lines, domain.LedgerLine{
		LineID:      uuid.NewString(),
		EntryID:     entryID,
		AccountID:   *settings.SalesRevenueAccountID,
		Credit:      invoice.RevenueAmount(),
		GoldCredit:  invoice.SoldGoldWeight,
		AuditFields: audit,
	})

	entry := domain.JournalEntry{
		EntryID:     entryID,
		Reference:   reference,
		Date:        invoice.InvoiceDate,
		Description: fmt.Sprintf("Sales invoice %s", invoice.InvoiceNumber),
		SourceType:  domain.SourceInvoice,
		SourceID:    invoice.InvoiceNumber,
		AuditFields: audit,
	}
	return s.saveEntry(ctx, entry, lines)
}

// PostCommission accrues the sales-rep commission on a confirmed invoice:
// debit commission expense, credit commissions payable, keyed
// COMM-<invoice_number>. An invoice without a rep or with a non-positive
// commission posts nothing.
func (s *postingService) PostCommission(ctx context.Context, invoice domain.SalesInvoice, creatorID string) (*domain.JournalEntry, error) {
	if !invoice.HasCommission() {
		return nil, nil
	}
	reference := "COMM-" + invoice.InvoiceNumber

	settings, err := s.settingsRepo.GetFinanceSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.skip(ctx, "finance settings are not configured", reference)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load finance settings: %w", err)
	}
	if settings.CommissionExpenseAccountID == nil {
		s.skip(ctx, "commission expense account is not configured", reference)
		return nil, nil
	}
	if settings.CommissionPayableAccountID == nil {
		s.skip(ctx, "commission payable account is not configured", reference)
		return nil, nil
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.NewAuditFields(creatorID, now)

	lines := []domain.LedgerLine{
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   *settings.CommissionExpenseAccountID,
			Debit:       invoice.CommissionAmount,
			AuditFields: audit,
		},
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   *settings.CommissionPayableAccountID,
			Credit:      invoice.CommissionAmount,
			AuditFields: audit,
		},
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		Reference:   reference,
		Date:        invoice.InvoiceDate,
		Description: fmt.Sprintf("Sales rep commission for invoice %s (%s)", invoice.InvoiceNumber, invoice.SalesRepName),
		SourceType:  domain.SourceInvoice,
		SourceID:    invoice.InvoiceNumber,
		AuditFields: audit,
	}
	return s.saveEntry(ctx, entry, lines)
}
