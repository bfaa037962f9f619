package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
)

// settingsService reads and updates the posting engine's account mapping.
// Every referenced account and treasury is verified to exist before the
// mapping is stored; the posting engine itself treats missing members as
// skip-with-warning.
type settingsService struct {
	settingsRepo portsrepo.SettingsRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	treasuryRepo portsrepo.TreasuryRepositoryWithTx
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, treasuryRepo portsrepo.TreasuryRepositoryWithTx) portssvc.SettingsSvcFacade {
	return &settingsService{
		settingsRepo: settingsRepo,
		accountRepo:  accountRepo,
		treasuryRepo: treasuryRepo,
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSettings returns the current finance settings. A never-configured system
// yields an empty mapping rather than an error.
func (s *settingsService) GetSettings(ctx context.Context) (*domain.FinanceSettings, error) {
	settings, err := s.settingsRepo.GetFinanceSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.FinanceSettings{}, nil
		}
		return nil, fmt.Errorf("failed to load finance settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces the finance settings mapping.
func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateFinanceSettingsRequest, actorID string) (*domain.FinanceSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountRefs := map[string]*string{
		"cash account":               req.CashAccountID,
		"bank account":               req.BankAccountID,
		"sales revenue account":      req.SalesRevenueAccountID,
		"inventory gold account":     req.InventoryGoldAccountID,
		"cost of gold account":       req.CostOfGoldAccountID,
		"VAT account":                req.VATAccountID,
		"old gold account":           req.OldGoldAccountID,
		"commission expense account": req.CommissionExpenseAccountID,
		"commission payable account": req.CommissionPayableAccountID,
	}
	for name, id := range accountRefs {
		if id == nil {
			continue
		}
		if _, err := s.accountRepo.FindAccountByID(ctx, *id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s %s does not exist", apperrors.ErrValidation, name, *id)
			}
			return nil, fmt.Errorf("failed to verify %s: %w", name, err)
		}
	}
	if req.SalesTreasuryID != nil {
		if _, err := s.treasuryRepo.FindTreasuryByID(ctx, *req.SalesTreasuryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: sales treasury %s does not exist", apperrors.ErrValidation, *req.SalesTreasuryID)
			}
			return nil, fmt.Errorf("failed to verify sales treasury: %w", err)
		}
	}

	now := time.Now().UTC()
	settings := domain.FinanceSettings{
		CashAccountID:              req.CashAccountID,
		BankAccountID:              req.BankAccountID,
		SalesRevenueAccountID:      req.SalesRevenueAccountID,
		InventoryGoldAccountID:     req.InventoryGoldAccountID,
		CostOfGoldAccountID:        req.CostOfGoldAccountID,
		VATAccountID:               req.VATAccountID,
		OldGoldAccountID:           req.OldGoldAccountID,
		CommissionExpenseAccountID: req.CommissionExpenseAccountID,
		CommissionPayableAccountID: req.CommissionPayableAccountID,
		SalesTreasuryID:            req.SalesTreasuryID,
		AuditFields:                domain.NewAuditFields(actorID, now),
	}
	if err := s.settingsRepo.SaveFinanceSettings(ctx, settings); err != nil {
		logger.Error("Failed to save finance settings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save finance settings: %w", err)
	}

	logger.Info("Finance settings updated", slog.String("actor", actorID))
	return &settings, nil
}
