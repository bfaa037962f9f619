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

type PgxVoucherRepository struct {
	pool *pgxpool.Pool
}

// newPgxVoucherRepository creates a new repository for expense and receipt
// vouchers.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{pool: pool}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

const expenseVoucherColumns = `voucher_id, voucher_number, status, treasury_id, beneficiary, amount, category, cost_center_id, description, voucher_date, paid_date, created_at, created_by, last_updated_at, last_updated_by`
const receiptVoucherColumns = `voucher_id, voucher_number, status, treasury_id, payer_name, payment_method, cash_amount, gold_weight, karat, cost_center_id, description, voucher_date, created_at, created_by, last_updated_at, last_updated_by`

func scanExpenseVoucher(row pgx.Row) (models.ExpenseVoucher, error) {
	var m models.ExpenseVoucher
	err := row.Scan(
		&m.VoucherID,
		&m.VoucherNumber,
		&m.Status,
		&m.TreasuryID,
		&m.Beneficiary,
		&m.Amount,
		&m.Category,
		&m.CostCenterID,
		&m.Description,
		&m.VoucherDate,
		&m.PaidDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanReceiptVoucher(row pgx.Row) (models.ReceiptVoucher, error) {
	var m models.ReceiptVoucher
	err := row.Scan(
		&m.VoucherID,
		&m.VoucherNumber,
		&m.Status,
		&m.TreasuryID,
		&m.PayerName,
		&m.PaymentMethod,
		&m.CashAmount,
		&m.GoldWeight,
		&m.Karat,
		&m.CostCenterID,
		&m.Description,
		&m.VoucherDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpenseVoucher inserts or updates an expense voucher. The update path
// covers the pending -> approved transition.
func (r *PgxVoucherRepository) SaveExpenseVoucher(ctx context.Context, voucher domain.ExpenseVoucher) error {
	m := mapping.ToModelExpenseVoucher(voucher)

	query := `
		INSERT INTO expense_vouchers (` + expenseVoucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (voucher_id) DO UPDATE
		SET status = EXCLUDED.status, paid_date = EXCLUDED.paid_date,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		m.VoucherID,
		m.VoucherNumber,
		m.Status,
		m.TreasuryID,
		m.Beneficiary,
		m.Amount,
		m.Category,
		m.CostCenterID,
		m.Description,
		m.VoucherDate,
		m.PaidDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense voucher number %s already exists", apperrors.ErrDuplicate, m.VoucherNumber)
		}
		return fmt.Errorf("failed to save expense voucher %s: %w", m.VoucherID, err)
	}
	return nil
}

func (r *PgxVoucherRepository) FindExpenseVoucherByID(ctx context.Context, voucherID string) (*domain.ExpenseVoucher, error) {
	query := `SELECT ` + expenseVoucherColumns + ` FROM expense_vouchers WHERE voucher_id = $1;`

	m, err := scanExpenseVoucher(r.pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense voucher %s: %w", voucherID, err)
	}
	d := mapping.ToDomainExpenseVoucher(m)
	return &d, nil
}

func (r *PgxVoucherRepository) ListExpenseVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.ExpenseVoucher, *string, error) {
	query := `SELECT ` + expenseVoucherColumns + ` FROM expense_vouchers`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` WHERE (voucher_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += fmt.Sprintf(` ORDER BY voucher_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list expense vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.ExpenseVoucher
	for rows.Next() {
		m, err := scanExpenseVoucher(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense voucher row: %w", err)
		}
		vouchers = append(vouchers, mapping.ToDomainExpenseVoucher(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating expense voucher rows: %w", err)
	}

	var newToken *string
	if len(vouchers) > limit {
		vouchers = vouchers[:limit]
		last := vouchers[len(vouchers)-1]
		token := pagination.EncodeToken(last.VoucherDate, last.CreatedAt)
		newToken = &token
	}
	return vouchers, newToken, nil
}

func (r *PgxVoucherRepository) NextExpenseNumber(ctx context.Context) (string, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('expense_voucher_number_seq');`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate expense voucher number: %w", err)
	}
	return fmt.Sprintf("EXP-%05d", seq), nil
}

// MarkExpensePaidInTx flips an approved voucher to paid inside the caller's
// transaction so the flip commits together with the treasury movement.
func (r *PgxVoucherRepository) MarkExpensePaidInTx(ctx context.Context, tx pgx.Tx, voucherID string, paidDate time.Time, updatedBy string, now time.Time) (bool, error) {
	query := `
		UPDATE expense_vouchers
		SET status = 'paid', paid_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE voucher_id = $1 AND status = 'approved';
	`
	tag, err := tx.Exec(ctx, query, voucherID, paidDate, now, updatedBy)
	if err != nil {
		return false, fmt.Errorf("failed to mark expense voucher %s paid: %w", voucherID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxVoucherRepository) SaveReceiptVoucher(ctx context.Context, voucher domain.ReceiptVoucher) error {
	m := mapping.ToModelReceiptVoucher(voucher)

	query := `
		INSERT INTO receipt_vouchers (` + receiptVoucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		m.VoucherID,
		m.VoucherNumber,
		m.Status,
		m.TreasuryID,
		m.PayerName,
		m.PaymentMethod,
		m.CashAmount,
		m.GoldWeight,
		m.Karat,
		m.CostCenterID,
		m.Description,
		m.VoucherDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: receipt voucher number %s already exists", apperrors.ErrDuplicate, m.VoucherNumber)
		}
		return fmt.Errorf("failed to save receipt voucher %s: %w", m.VoucherID, err)
	}
	return nil
}

func (r *PgxVoucherRepository) FindReceiptVoucherByID(ctx context.Context, voucherID string) (*domain.ReceiptVoucher, error) {
	query := `SELECT ` + receiptVoucherColumns + ` FROM receipt_vouchers WHERE voucher_id = $1;`

	m, err := scanReceiptVoucher(r.pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt voucher %s: %w", voucherID, err)
	}
	d := mapping.ToDomainReceiptVoucher(m)
	return &d, nil
}

func (r *PgxVoucherRepository) ListReceiptVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.ReceiptVoucher, *string, error) {
	query := `SELECT ` + receiptVoucherColumns + ` FROM receipt_vouchers`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` WHERE (voucher_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += fmt.Sprintf(` ORDER BY voucher_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list receipt vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.ReceiptVoucher
	for rows.Next() {
		m, err := scanReceiptVoucher(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan receipt voucher row: %w", err)
		}
		vouchers = append(vouchers, mapping.ToDomainReceiptVoucher(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating receipt voucher rows: %w", err)
	}

	var newToken *string
	if len(vouchers) > limit {
		vouchers = vouchers[:limit]
		last := vouchers[len(vouchers)-1]
		token := pagination.EncodeToken(last.VoucherDate, last.CreatedAt)
		newToken = &token
	}
	return vouchers, newToken, nil
}

func (r *PgxVoucherRepository) NextReceiptNumber(ctx context.Context) (string, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('receipt_voucher_number_seq');`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate receipt voucher number: %w", err)
	}
	return fmt.Sprintf("REC-%05d", seq), nil
}

func (r *PgxVoucherRepository) MarkReceiptConfirmedInTx(ctx context.Context, tx pgx.Tx, voucherID string, updatedBy string, now time.Time) (bool, error) {
	query := `
		UPDATE receipt_vouchers
		SET status = 'confirmed', last_updated_at = $2, last_updated_by = $3
		WHERE voucher_id = $1 AND status = 'draft';
	`
	tag, err := tx.Exec(ctx, query, voucherID, now, updatedBy)
	if err != nil {
		return false, fmt.Errorf("failed to mark receipt voucher %s confirmed: %w", voucherID, err)
	}
	return tag.RowsAffected() > 0, nil
}
