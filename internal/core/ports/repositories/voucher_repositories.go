package repositories

import (
	"context"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// VoucherRepositoryFacade covers expense and receipt vouchers. The paid /
// confirmed transitions are conditional updates executed inside the treasury
// service's transaction, so the status flip and the cash movement commit
// together.
type VoucherRepositoryFacade interface {
	SaveExpenseVoucher(ctx context.Context, voucher domain.ExpenseVoucher) error
	FindExpenseVoucherByID(ctx context.Context, voucherID string) (*domain.ExpenseVoucher, error)
	ListExpenseVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.ExpenseVoucher, *string, error)
	NextExpenseNumber(ctx context.Context) (string, error)
	// MarkExpensePaidInTx flips an approved voucher to paid; false when the
	// voucher already left the approved state.
	MarkExpensePaidInTx(ctx context.Context, tx pgx.Tx, voucherID string, paidDate time.Time, updatedBy string, now time.Time) (bool, error)

	SaveReceiptVoucher(ctx context.Context, voucher domain.ReceiptVoucher) error
	FindReceiptVoucherByID(ctx context.Context, voucherID string) (*domain.ReceiptVoucher, error)
	ListReceiptVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.ReceiptVoucher, *string, error)
	NextReceiptNumber(ctx context.Context) (string, error)
	// MarkReceiptConfirmedInTx flips a draft voucher to confirmed; false when
	// the voucher already left the draft state.
	MarkReceiptConfirmedInTx(ctx context.Context, tx pgx.Tx, voucherID string, updatedBy string, now time.Time) (bool, error)
}
