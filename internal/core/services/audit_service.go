package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
	"github.com/aurumworks/gold_ledger_app/internal/utils/accounting"
)

const replayPageSize = 500

// auditService is the read-only consistency checker: configuration
// completeness, treasury linkage coverage, posting coverage and balance
// replay. It never mutates anything; findings are reported for manual
// correction via adjustment entries.
type auditService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	treasuryRepo portsrepo.TreasuryRepositoryWithTx
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, treasuryRepo portsrepo.TreasuryRepositoryWithTx, settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		treasuryRepo: treasuryRepo,
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// RunChecks executes every consistency check and returns the findings.
func (s *auditService) RunChecks(ctx context.Context) (*dto.AuditReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report := &dto.AuditReport{RanAt: time.Now().UTC()}
	add := func(check, entityID, detail string) {
		report.Findings = append(report.Findings, dto.AuditFinding{Check: check, EntityID: entityID, Detail: detail})
	}

	// Configuration completeness.
	report.ChecksRun++
	settings, err := s.settingsRepo.GetFinanceSettings(ctx)
	if err != nil {
		add("settings", "finance_settings", "finance settings are not configured")
	} else {
		members := map[string]*string{
			"cashAccountID":              settings.CashAccountID,
			"bankAccountID":              settings.BankAccountID,
			"salesRevenueAccountID":      settings.SalesRevenueAccountID,
			"inventoryGoldAccountID":     settings.InventoryGoldAccountID,
			"costOfGoldAccountID":        settings.CostOfGoldAccountID,
			"vatAccountID":               settings.VATAccountID,
			"oldGoldAccountID":           settings.OldGoldAccountID,
			"commissionExpenseAccountID": settings.CommissionExpenseAccountID,
			"commissionPayableAccountID": settings.CommissionPayableAccountID,
			"salesTreasuryID":            settings.SalesTreasuryID,
		}
		for name, member := range members {
			if member == nil {
				add("settings", name, "mapping is unset; the affected posting rules skip")
			}
		}
	}

	treasuries, err := s.treasuryRepo.ListTreasuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasuries: %w", err)
	}

	// Linkage coverage: an unlinked treasury never posts.
	report.ChecksRun++
	for _, treasury := range treasuries {
		if treasury.IsActive && treasury.LinkedAccountID == nil {
			add("linkage", treasury.TreasuryID, fmt.Sprintf("treasury %s has no linked GL account", treasury.Name))
		}
	}

	// Posting coverage: every cash-bearing postable transaction should have a
	// TRX-<id> entry.
	report.ChecksRun++
	references, err := s.journalRepo.ListEntryReferences(ctx, "TRX-")
	if err != nil {
		return nil, fmt.Errorf("failed to list entry references: %w", err)
	}
	posted := make(map[string]bool, len(references))
	for _, reference := range references {
		posted[reference] = true
	}
	for _, treasury := range treasuries {
		txns, err := s.treasuryRepo.ListTransactionsByTreasury(ctx, treasury.TreasuryID)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions for treasury %s: %w", treasury.TreasuryID, err)
		}
		for _, txn := range txns {
			switch txn.TransactionType {
			case domain.CashIn, domain.CashOut, domain.TransferOut, domain.FinishedGoodsIn:
			default:
				continue
			}
			if txn.CashAmount.IsZero() {
				continue
			}
			if !posted["TRX-"+txn.TransactionID] {
				add("posting", txn.TransactionID, fmt.Sprintf("%s transaction on treasury %s has no GL entry", txn.TransactionType, treasury.Name))
			}
		}
	}

	// Balance replay: stored treasury balances must equal the fold of their
	// transaction history.
	report.ChecksRun++
	for _, treasury := range treasuries {
		result, err := s.ReplayTreasury(ctx, treasury.TreasuryID)
		if err != nil {
			return nil, err
		}
		if !result.Matches {
			add("replay", treasury.TreasuryID, fmt.Sprintf("treasury %s stored balances diverge from replay", treasury.Name))
		}
	}

	// Cost-center tagging coverage.
	report.ChecksRun++
	total, withCostCenter, err := s.journalRepo.CountLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count ledger lines: %w", err)
	}
	report.EntriesScanned = total
	report.LinesWithCostCenter = withCostCenter

	report.Clean = len(report.Findings) == 0
	logger.Info("Audit checks completed", slog.Int("checks", report.ChecksRun), slog.Int("findings", len(report.Findings)))
	return report, nil
}

// ReplayTreasury folds a treasury's full transaction history from zero and
// compares the result against the stored balances.
func (s *auditService) ReplayTreasury(ctx context.Context, treasuryID string) (*dto.TreasuryReplayResult, error) {
	treasury, err := s.treasuryRepo.FindTreasuryByID(ctx, treasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find treasury: %w", err)
	}
	txns, err := s.treasuryRepo.ListTransactionsByTreasury(ctx, treasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasury transactions: %w", err)
	}

	replayed := domain.Treasury{TreasuryID: treasuryID}
	// The repository returns newest first; replay chronologically.
	for i := len(txns) - 1; i >= 0; i-- {
		txn := txns[i]
		if err := replayed.Apply(&txn); err != nil {
			return nil, fmt.Errorf("replay failed at transaction %s: %w", txn.TransactionID, err)
		}
	}

	result := &dto.TreasuryReplayResult{
		TreasuryID:       treasuryID,
		StoredCash:       treasury.CashBalance,
		ReplayedCash:     replayed.CashBalance,
		StoredGold18:     treasury.GoldBalances.K18,
		ReplayedGold18:   replayed.GoldBalances.K18,
		StoredGold21:     treasury.GoldBalances.K21,
		ReplayedGold21:   replayed.GoldBalances.K21,
		StoredGold24:     treasury.GoldBalances.K24,
		ReplayedGold24:   replayed.GoldBalances.K24,
		TransactionCount: len(txns),
	}
	result.Matches = treasury.CashBalance.Equal(replayed.CashBalance) &&
		treasury.GoldBalances.K18.Equal(replayed.GoldBalances.K18) &&
		treasury.GoldBalances.K21.Equal(replayed.GoldBalances.K21) &&
		treasury.GoldBalances.K24.Equal(replayed.GoldBalances.K24)
	return result, nil
}

// ReplayAccount folds an account's ledger lines and compares the result
// against the stored running balances.
func (s *auditService) ReplayAccount(ctx context.Context, accountID string) (*dto.AccountReplayResult, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	result := &dto.AccountReplayResult{
		AccountID:  accountID,
		StoredCash: account.Balance,
		StoredGold: account.GoldBalance,
	}

	var nextToken *string
	for {
		lines, token, err := s.journalRepo.ListLinesByAccountID(ctx, accountID, replayPageSize, nextToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list account lines: %w", err)
		}
		for _, line := range lines {
			cash, err := accounting.SignedCashAmount(line, account.AccountType)
			if err != nil {
				return nil, err
			}
			gold, err := accounting.SignedGoldAmount(line, account.AccountType)
			if err != nil {
				return nil, err
			}
			result.ReplayedCash = result.ReplayedCash.Add(cash)
			result.ReplayedGold = result.ReplayedGold.Add(gold)
			result.LineCount++
		}
		if token == nil {
			break
		}
		nextToken = token
	}

	result.Matches = result.StoredCash.Equal(result.ReplayedCash) && result.StoredGold.Equal(result.ReplayedGold)
	return result, nil
}
