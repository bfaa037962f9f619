package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseVoucher is the DB row shape for the expense_vouchers table.
type ExpenseVoucher struct {
	VoucherID     string          `db:"voucher_id"`
	VoucherNumber string          `db:"voucher_number"`
	Status        string          `db:"status"`
	TreasuryID    string          `db:"treasury_id"`
	Beneficiary   string          `db:"beneficiary"`
	Amount        decimal.Decimal `db:"amount"`
	Category      string          `db:"category"`
	CostCenterID  *string         `db:"cost_center_id"`
	Description   string          `db:"description"`
	VoucherDate   time.Time       `db:"voucher_date"`
	PaidDate      *time.Time      `db:"paid_date"`
	AuditFields
}

// ReceiptVoucher is the DB row shape for the receipt_vouchers table.
type ReceiptVoucher struct {
	VoucherID     string          `db:"voucher_id"`
	VoucherNumber string          `db:"voucher_number"`
	Status        string          `db:"status"`
	TreasuryID    string          `db:"treasury_id"`
	PayerName     string          `db:"payer_name"`
	PaymentMethod string          `db:"payment_method"`
	CashAmount    decimal.Decimal `db:"cash_amount"`
	GoldWeight    decimal.Decimal `db:"gold_weight"`
	Karat         string          `db:"karat"`
	CostCenterID  *string         `db:"cost_center_id"`
	Description   string          `db:"description"`
	VoucherDate   time.Time       `db:"voucher_date"`
	AuditFields
}
