package dto

import (
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseVoucherRequest is the payload for opening an expense voucher.
type CreateExpenseVoucherRequest struct {
	TreasuryID   string                 `json:"treasuryID" binding:"required"`
	Beneficiary  string                 `json:"beneficiary" binding:"required"`
	Amount       decimal.Decimal        `json:"amount" binding:"required"`
	Category     domain.ExpenseCategory `json:"category" binding:"required"`
	CostCenterID *string                `json:"costCenterID"`
	Description  string                 `json:"description"`
	Date         time.Time              `json:"date"`
}

// CreateReceiptVoucherRequest is the payload for opening a receipt voucher.
type CreateReceiptVoucherRequest struct {
	TreasuryID    string          `json:"treasuryID" binding:"required"`
	PayerName     string          `json:"payerName" binding:"required"`
	PaymentMethod string          `json:"paymentMethod"`
	CashAmount    decimal.Decimal `json:"cashAmount"`
	GoldWeight    decimal.Decimal `json:"goldWeight"`
	Karat         domain.Karat    `json:"karat"`
	CostCenterID  *string         `json:"costCenterID"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
}

// ListExpenseVouchersResponse is a page of expense vouchers.
type ListExpenseVouchersResponse struct {
	Vouchers  []domain.ExpenseVoucher `json:"vouchers"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ListReceiptVouchersResponse is a page of receipt vouchers.
type ListReceiptVouchersResponse struct {
	Vouchers  []domain.ReceiptVoucher `json:"vouchers"`
	NextToken *string                 `json:"nextToken,omitempty"`
}
