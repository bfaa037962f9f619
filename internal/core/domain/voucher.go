package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseVoucherStatus is the lifecycle of an expense (payment) voucher.
type ExpenseVoucherStatus string

const (
	ExpensePending   ExpenseVoucherStatus = "pending"
	ExpenseApproved  ExpenseVoucherStatus = "approved"
	ExpensePaid      ExpenseVoucherStatus = "paid"
	ExpenseRejected  ExpenseVoucherStatus = "rejected"
	ExpenseCancelled ExpenseVoucherStatus = "cancelled"
)

// ExpenseCategory classifies what an expense voucher pays for.
type ExpenseCategory string

const (
	ExpenseElectricity ExpenseCategory = "electricity"
	ExpenseWater       ExpenseCategory = "water"
	ExpenseRent        ExpenseCategory = "rent"
	ExpenseSalaries    ExpenseCategory = "salaries"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseSupplies    ExpenseCategory = "supplies"
	ExpenseTransport   ExpenseCategory = "transport"
	ExpenseMarketing   ExpenseCategory = "marketing"
	ExpenseOther       ExpenseCategory = "other"
)

// ExpenseVoucher is a cash-out document. Paying it (once) records exactly one
// cash_out TreasuryTransaction against its treasury.
type ExpenseVoucher struct {
	VoucherID     string               `json:"voucherID"`
	VoucherNumber string               `json:"voucherNumber"` // unique, EXP-%05d
	Status        ExpenseVoucherStatus `json:"status"`
	TreasuryID    string               `json:"treasuryID"`
	Beneficiary   string               `json:"beneficiary"`
	Amount        decimal.Decimal      `json:"amount"`
	Category      ExpenseCategory      `json:"category"`
	CostCenterID  *string              `json:"costCenterID,omitempty"`
	Description   string               `json:"description"`
	VoucherDate   time.Time            `json:"voucherDate"`
	PaidDate      *time.Time           `json:"paidDate,omitempty"`
	AuditFields
}

// ReceiptVoucherStatus is the lifecycle of a receipt voucher.
type ReceiptVoucherStatus string

const (
	ReceiptDraft     ReceiptVoucherStatus = "draft"
	ReceiptConfirmed ReceiptVoucherStatus = "confirmed"
	ReceiptCancelled ReceiptVoucherStatus = "cancelled"
)

// ReceiptVoucher is a cash/gold-in document. Confirming it (once) records
// exactly one cash_in (or gold_in) TreasuryTransaction against its treasury.
type ReceiptVoucher struct {
	VoucherID     string               `json:"voucherID"`
	VoucherNumber string               `json:"voucherNumber"` // unique, REC-%05d
	Status        ReceiptVoucherStatus `json:"status"`
	TreasuryID    string               `json:"treasuryID"`
	PayerName     string               `json:"payerName"`
	PaymentMethod string               `json:"paymentMethod"`
	CashAmount    decimal.Decimal      `json:"cashAmount"`
	GoldWeight    decimal.Decimal      `json:"goldWeight"`
	Karat         Karat                `json:"karat,omitempty"`
	CostCenterID  *string              `json:"costCenterID,omitempty"`
	Description   string               `json:"description"`
	VoucherDate   time.Time            `json:"voucherDate"`
	AuditFields
}
