package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	"github.com/aurumworks/gold_ledger_app/internal/models"
	"github.com/aurumworks/gold_ledger_app/internal/utils/mapping"
	"github.com/aurumworks/gold_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTreasuryRepository struct {
	BaseRepository
}

// newPgxTreasuryRepository creates a new repository for treasuries, their
// transactions and transfers.
func newPgxTreasuryRepository(pool *pgxpool.Pool) portsrepo.TreasuryRepositoryWithTx {
	return &PgxTreasuryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TreasuryRepositoryWithTx = (*PgxTreasuryRepository)(nil)

const treasuryColumns = `treasury_id, code, name, parent_treasury_id, treasury_type, cash_balance, gold_balance_18, gold_balance_21, gold_balance_24, gold_casting_balance, stones_balance, linked_account_id, workshop_id, is_active, created_at, created_by, last_updated_at, last_updated_by`
const treasuryTxnColumns = `transaction_id, treasury_id, transaction_type, cash_amount, gold_weight, karat, gold_casting_weight, stones_weight, cost_center_id, reference_type, reference_id, description, transaction_date, balance_after_cash, balance_after_gold, balance_after_cast, balance_after_stones, created_at, created_by, last_updated_at, last_updated_by`
const treasuryTransferColumns = `transfer_id, transfer_number, from_treasury_id, to_treasury_id, cash_amount, gold_weight, karat, stones_weight, cost_center_id, status, notes, transfer_date, created_at, created_by, last_updated_at, last_updated_by`

func scanTreasury(row pgx.Row) (models.Treasury, error) {
	var m models.Treasury
	err := row.Scan(
		&m.TreasuryID,
		&m.Code,
		&m.Name,
		&m.ParentTreasuryID,
		&m.TreasuryType,
		&m.CashBalance,
		&m.GoldBalance18,
		&m.GoldBalance21,
		&m.GoldBalance24,
		&m.GoldCastingBalance,
		&m.StonesBalance,
		&m.LinkedAccountID,
		&m.WorkshopID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanTreasuryTransaction(row pgx.Row) (models.TreasuryTransaction, error) {
	var m models.TreasuryTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.TreasuryID,
		&m.TransactionType,
		&m.CashAmount,
		&m.GoldWeight,
		&m.Karat,
		&m.GoldCastingWeight,
		&m.StonesWeight,
		&m.CostCenterID,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.Description,
		&m.TransactionDate,
		&m.BalanceAfterCash,
		&m.BalanceAfterGold,
		&m.BalanceAfterCast,
		&m.BalanceAfterStones,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanTreasuryTransfer(row pgx.Row) (models.TreasuryTransfer, error) {
	var m models.TreasuryTransfer
	err := row.Scan(
		&m.TransferID,
		&m.TransferNumber,
		&m.FromTreasuryID,
		&m.ToTreasuryID,
		&m.CashAmount,
		&m.GoldWeight,
		&m.Karat,
		&m.StonesWeight,
		&m.CostCenterID,
		&m.Status,
		&m.Notes,
		&m.TransferDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTreasuryRepository) SaveTreasury(ctx context.Context, treasury domain.Treasury) error {
	m := mapping.ToModelTreasury(treasury)

	query := `
		INSERT INTO treasuries (` + treasuryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TreasuryID,
		m.Code,
		m.Name,
		m.ParentTreasuryID,
		m.TreasuryType,
		m.CashBalance,
		m.GoldBalance18,
		m.GoldBalance21,
		m.GoldBalance24,
		m.GoldCastingBalance,
		m.StonesBalance,
		m.LinkedAccountID,
		m.WorkshopID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: treasury with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save treasury %s: %w", m.TreasuryID, err)
	}
	return nil
}

func (r *PgxTreasuryRepository) FindTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error) {
	query := `SELECT ` + treasuryColumns + ` FROM treasuries WHERE treasury_id = $1;`

	m, err := scanTreasury(r.Pool.QueryRow(ctx, query, treasuryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find treasury %s: %w", treasuryID, err)
	}
	d := mapping.ToDomainTreasury(m)
	return &d, nil
}

func (r *PgxTreasuryRepository) FindTreasuryByCode(ctx context.Context, code string) (*domain.Treasury, error) {
	query := `SELECT ` + treasuryColumns + ` FROM treasuries WHERE code = $1;`

	m, err := scanTreasury(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find treasury by code %s: %w", code, err)
	}
	d := mapping.ToDomainTreasury(m)
	return &d, nil
}

func (r *PgxTreasuryRepository) ListTreasuries(ctx context.Context) ([]domain.Treasury, error) {
	query := `SELECT ` + treasuryColumns + ` FROM treasuries ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasuries: %w", err)
	}
	defer rows.Close()

	var treasuries []domain.Treasury
	for rows.Next() {
		m, err := scanTreasury(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan treasury row: %w", err)
		}
		treasuries = append(treasuries, mapping.ToDomainTreasury(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating treasury rows: %w", err)
	}
	return treasuries, nil
}

// FindTreasuryForUpdate locks the treasury row within tx.
func (r *PgxTreasuryRepository) FindTreasuryForUpdate(ctx context.Context, tx pgx.Tx, treasuryID string) (*domain.Treasury, error) {
	query := `SELECT ` + treasuryColumns + ` FROM treasuries WHERE treasury_id = $1 FOR UPDATE;`

	m, err := scanTreasury(tx.QueryRow(ctx, query, treasuryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock treasury %s: %w", treasuryID, err)
	}
	d := mapping.ToDomainTreasury(m)
	return &d, nil
}

func (r *PgxTreasuryRepository) UpdateTreasuryBalancesInTx(ctx context.Context, tx pgx.Tx, treasury domain.Treasury, updatedBy string, now time.Time) error {
	m := mapping.ToModelTreasury(treasury)

	query := `
		UPDATE treasuries
		SET cash_balance = $2, gold_balance_18 = $3, gold_balance_21 = $4, gold_balance_24 = $5,
			gold_casting_balance = $6, stones_balance = $7, last_updated_at = $8, last_updated_by = $9
		WHERE treasury_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TreasuryID,
		m.CashBalance,
		m.GoldBalance18,
		m.GoldBalance21,
		m.GoldBalance24,
		m.GoldCastingBalance,
		m.StonesBalance,
		now,
		updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update balances for treasury %s: %w", m.TreasuryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: treasury %s not found during balance update", apperrors.ErrNotFound, m.TreasuryID)
	}
	return nil
}

func (r *PgxTreasuryRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.TreasuryTransaction) error {
	m := mapping.ToModelTreasuryTransaction(txn)

	query := `
		INSERT INTO treasury_transactions (` + treasuryTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.TreasuryID,
		m.TransactionType,
		m.CashAmount,
		m.GoldWeight,
		m.Karat,
		m.GoldCastingWeight,
		m.StonesWeight,
		m.CostCenterID,
		m.ReferenceType,
		m.ReferenceID,
		m.Description,
		m.TransactionDate,
		m.BalanceAfterCash,
		m.BalanceAfterGold,
		m.BalanceAfterCast,
		m.BalanceAfterStones,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save treasury transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// ListTransactionsByTreasury returns a treasury's transactions newest first.
func (r *PgxTreasuryRepository) ListTransactionsByTreasury(ctx context.Context, treasuryID string) ([]domain.TreasuryTransaction, error) {
	query := `SELECT ` + treasuryTxnColumns + ` FROM treasury_transactions WHERE treasury_id = $1 ORDER BY transaction_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, treasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for treasury %s: %w", treasuryID, err)
	}
	defer rows.Close()

	var txns []models.TreasuryTransaction
	for rows.Next() {
		m, err := scanTreasuryTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan treasury transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating treasury transaction rows: %w", err)
	}
	return mapping.ToDomainTreasuryTransactionSlice(txns), nil
}

func (r *PgxTreasuryRepository) FindTransactionsByReference(ctx context.Context, referenceType, referenceID string) ([]domain.TreasuryTransaction, error) {
	query := `SELECT ` + treasuryTxnColumns + ` FROM treasury_transactions WHERE reference_type = $1 AND reference_id = $2 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions for reference %s/%s: %w", referenceType, referenceID, err)
	}
	defer rows.Close()

	var txns []models.TreasuryTransaction
	for rows.Next() {
		m, err := scanTreasuryTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan treasury transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating treasury transaction rows: %w", err)
	}
	return mapping.ToDomainTreasuryTransactionSlice(txns), nil
}

func (r *PgxTreasuryRepository) SaveTransfer(ctx context.Context, transfer domain.TreasuryTransfer) error {
	m := mapping.ToModelTreasuryTransfer(transfer)

	query := `
		INSERT INTO treasury_transfers (` + treasuryTransferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransferID,
		m.TransferNumber,
		m.FromTreasuryID,
		m.ToTreasuryID,
		m.CashAmount,
		m.GoldWeight,
		m.Karat,
		m.StonesWeight,
		m.CostCenterID,
		m.Status,
		m.Notes,
		m.TransferDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transfer number %s already exists", apperrors.ErrDuplicate, m.TransferNumber)
		}
		return fmt.Errorf("failed to save treasury transfer %s: %w", m.TransferID, err)
	}
	return nil
}

func (r *PgxTreasuryRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TreasuryTransfer, error) {
	query := `SELECT ` + treasuryTransferColumns + ` FROM treasury_transfers WHERE transfer_id = $1;`

	m, err := scanTreasuryTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find treasury transfer %s: %w", transferID, err)
	}
	d := mapping.ToDomainTreasuryTransfer(m)
	return &d, nil
}

// ListTransfers returns transfers newest first using token based pagination
// on (transfer_date, created_at).
func (r *PgxTreasuryRepository) ListTransfers(ctx context.Context, limit int, nextToken *string) ([]domain.TreasuryTransfer, *string, error) {
	query := `SELECT ` + treasuryTransferColumns + ` FROM treasury_transfers`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` WHERE (transfer_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += fmt.Sprintf(` ORDER BY transfer_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list treasury transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.TreasuryTransfer
	for rows.Next() {
		m, err := scanTreasuryTransfer(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan treasury transfer row: %w", err)
		}
		transfers = append(transfers, mapping.ToDomainTreasuryTransfer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating treasury transfer rows: %w", err)
	}

	var newToken *string
	if len(transfers) > limit {
		transfers = transfers[:limit]
		last := transfers[len(transfers)-1]
		token := pagination.EncodeToken(last.TransferDate, last.CreatedAt)
		newToken = &token
	}
	return transfers, newToken, nil
}

func (r *PgxTreasuryRepository) NextTransferNumber(ctx context.Context) (string, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('treasury_transfer_number_seq');`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate transfer number: %w", err)
	}
	return fmt.Sprintf("TRF-%05d", seq), nil
}

// MarkTransferCompletedInTx flips a pending transfer to completed. The
// conditional WHERE makes concurrent completions race safely: only one caller
// sees a row affected.
func (r *PgxTreasuryRepository) MarkTransferCompletedInTx(ctx context.Context, tx pgx.Tx, transferID string, updatedBy string, now time.Time) (bool, error) {
	query := `
		UPDATE treasury_transfers
		SET status = 'completed', last_updated_at = $2, last_updated_by = $3
		WHERE transfer_id = $1 AND status = 'pending';
	`
	tag, err := tx.Exec(ctx, query, transferID, now, updatedBy)
	if err != nil {
		return false, fmt.Errorf("failed to mark transfer %s completed: %w", transferID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxTreasuryRepository) MarkTransferCancelled(ctx context.Context, transferID string, updatedBy string, now time.Time) (bool, error) {
	query := `
		UPDATE treasury_transfers
		SET status = 'cancelled', last_updated_at = $2, last_updated_by = $3
		WHERE transfer_id = $1 AND status = 'pending';
	`
	tag, err := r.Pool.Exec(ctx, query, transferID, now, updatedBy)
	if err != nil {
		return false, fmt.Errorf("failed to mark transfer %s cancelled: %w", transferID, err)
	}
	return tag.RowsAffected() > 0, nil
}
