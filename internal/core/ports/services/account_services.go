package services

import (
	"context"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
)

// AccountSvcFacade covers chart-of-accounts and cost-center management.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, creatorID string) (*domain.CostCenter, error)
	ListCostCenters(ctx context.Context) ([]domain.CostCenter, error)
}

// JournalSvcFacade covers reading the ledger log and recording manual
// adjustment entries (the only way to correct posted lines; no reverse/void).
type JournalSvcFacade interface {
	CreateAdjustmentEntry(ctx context.Context, req dto.CreateAdjustmentEntryRequest, creatorID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListParams) (*dto.ListEntriesResponse, error)
	ListLinesByAccount(ctx context.Context, accountID string, params dto.ListParams) (*dto.ListLinesResponse, error)
}
