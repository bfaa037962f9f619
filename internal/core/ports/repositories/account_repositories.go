package repositories

import (
	"context"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountRepositoryFacade covers chart-of-accounts persistence, including the
// in-transaction lock/update pair the journal repository relies on.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// FindAccountsByIDsForUpdate locks the account rows (SELECT ... FOR UPDATE)
	// in deterministic ID order within the given transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]domain.BalanceDelta, updatedBy string, now time.Time) error

	SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error
	ListCostCenters(ctx context.Context) ([]domain.CostCenter, error)
}
