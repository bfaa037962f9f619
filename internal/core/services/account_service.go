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
	"github.com/shopspring/decimal"
)

var ErrParentAccountNotFound = errors.New("parent account not found")

// accountService manages the chart of accounts and cost centers.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new GL account with zero opening balances.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %s", ErrParentAccountNotFound, *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: account type %s does not match parent type %s", apperrors.ErrValidation, req.AccountType, parent.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		GoldBalance:     decimal.Zero,
		AuditFields:     domain.NewAuditFields(creatorID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID fetches one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// ListAccounts returns the full chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateCostCenter creates a reporting dimension for ledger lines.
func (s *accountService) CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, creatorID string) (*domain.CostCenter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	costCenter := domain.CostCenter{
		CostCenterID: uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(creatorID, now),
	}

	if err := s.accountRepo.SaveCostCenter(ctx, costCenter); err != nil {
		logger.Error("Failed to save cost center", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save cost center: %w", err)
	}

	logger.Info("Cost center created", slog.String("cost_center_id", costCenter.CostCenterID), slog.String("code", costCenter.Code))
	return &costCenter, nil
}

// ListCostCenters returns all cost centers.
func (s *accountService) ListCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	costCenters, err := s.accountRepo.ListCostCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}
	return costCenters, nil
}
