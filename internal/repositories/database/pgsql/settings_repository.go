package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	"github.com/aurumworks/gold_ledger_app/internal/models"
	"github.com/aurumworks/gold_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	pool *pgxpool.Pool
}

// newPgxSettingsRepository creates a new repository for the single
// finance-settings row.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{pool: pool}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

const settingsColumns = `settings_id, cash_account_id, bank_account_id, sales_revenue_account_id, inventory_gold_account_id, cost_of_gold_account_id, vat_account_id, old_gold_account_id, commission_expense_account_id, commission_payable_account_id, sales_treasury_id, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxSettingsRepository) GetFinanceSettings(ctx context.Context) (*domain.FinanceSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM finance_settings WHERE settings_id = 1;`

	var m models.FinanceSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&m.SettingsID,
		&m.CashAccountID,
		&m.BankAccountID,
		&m.SalesRevenueAccountID,
		&m.InventoryGoldAccountID,
		&m.CostOfGoldAccountID,
		&m.VATAccountID,
		&m.OldGoldAccountID,
		&m.CommissionExpenseAccountID,
		&m.CommissionPayableAccountID,
		&m.SalesTreasuryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load finance settings: %w", err)
	}
	d := mapping.ToDomainFinanceSettings(m)
	return &d, nil
}

// SaveFinanceSettings upserts the single settings row (settings_id = 1).
func (r *PgxSettingsRepository) SaveFinanceSettings(ctx context.Context, settings domain.FinanceSettings) error {
	m := mapping.ToModelFinanceSettings(settings)

	query := `
		INSERT INTO finance_settings (` + settingsColumns + `)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (settings_id) DO UPDATE
		SET cash_account_id = EXCLUDED.cash_account_id,
			bank_account_id = EXCLUDED.bank_account_id,
			sales_revenue_account_id = EXCLUDED.sales_revenue_account_id,
			inventory_gold_account_id = EXCLUDED.inventory_gold_account_id,
			cost_of_gold_account_id = EXCLUDED.cost_of_gold_account_id,
			vat_account_id = EXCLUDED.vat_account_id,
			old_gold_account_id = EXCLUDED.old_gold_account_id,
			commission_expense_account_id = EXCLUDED.commission_expense_account_id,
			commission_payable_account_id = EXCLUDED.commission_payable_account_id,
			sales_treasury_id = EXCLUDED.sales_treasury_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		m.CashAccountID,
		m.BankAccountID,
		m.SalesRevenueAccountID,
		m.InventoryGoldAccountID,
		m.CostOfGoldAccountID,
		m.VATAccountID,
		m.OldGoldAccountID,
		m.CommissionExpenseAccountID,
		m.CommissionPayableAccountID,
		m.SalesTreasuryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save finance settings: %w", err)
	}
	return nil
}
