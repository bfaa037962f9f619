package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Treasury is the DB row shape for the treasuries table. Per-karat gold
// balances are separate columns so audit queries can address them directly.
type Treasury struct {
	TreasuryID         string          `db:"treasury_id"`
	Code               string          `db:"code"`
	Name               string          `db:"name"`
	ParentTreasuryID   *string         `db:"parent_treasury_id"`
	TreasuryType       string          `db:"treasury_type"`
	CashBalance        decimal.Decimal `db:"cash_balance"`
	GoldBalance18      decimal.Decimal `db:"gold_balance_18"`
	GoldBalance21      decimal.Decimal `db:"gold_balance_21"`
	GoldBalance24      decimal.Decimal `db:"gold_balance_24"`
	GoldCastingBalance decimal.Decimal `db:"gold_casting_balance"`
	StonesBalance      decimal.Decimal `db:"stones_balance"`
	LinkedAccountID    *string         `db:"linked_account_id"`
	WorkshopID         *string         `db:"workshop_id"`
	IsActive           bool            `db:"is_active"`
	AuditFields
}

// TreasuryTransaction is the DB row shape for the treasury_transactions table.
type TreasuryTransaction struct {
	TransactionID      string          `db:"transaction_id"`
	TreasuryID         string          `db:"treasury_id"`
	TransactionType    string          `db:"transaction_type"`
	CashAmount         decimal.Decimal `db:"cash_amount"`
	GoldWeight         decimal.Decimal `db:"gold_weight"`
	Karat              string          `db:"karat"`
	GoldCastingWeight  decimal.Decimal `db:"gold_casting_weight"`
	StonesWeight       decimal.Decimal `db:"stones_weight"`
	CostCenterID       *string         `db:"cost_center_id"`
	ReferenceType      string          `db:"reference_type"`
	ReferenceID        string          `db:"reference_id"`
	Description        string          `db:"description"`
	TransactionDate    time.Time       `db:"transaction_date"`
	BalanceAfterCash   decimal.Decimal `db:"balance_after_cash"`
	BalanceAfterGold   decimal.Decimal `db:"balance_after_gold"`
	BalanceAfterCast   decimal.Decimal `db:"balance_after_cast"`
	BalanceAfterStones decimal.Decimal `db:"balance_after_stones"`
	AuditFields
}

// TreasuryTransfer is the DB row shape for the treasury_transfers table.
type TreasuryTransfer struct {
	TransferID     string          `db:"transfer_id"`
	TransferNumber string          `db:"transfer_number"`
	FromTreasuryID string          `db:"from_treasury_id"`
	ToTreasuryID   string          `db:"to_treasury_id"`
	CashAmount     decimal.Decimal `db:"cash_amount"`
	GoldWeight     decimal.Decimal `db:"gold_weight"`
	Karat          string          `db:"karat"`
	StonesWeight   decimal.Decimal `db:"stones_weight"`
	CostCenterID   *string         `db:"cost_center_id"`
	Status         string          `db:"status"`
	Notes          string          `db:"notes"`
	TransferDate   time.Time       `db:"transfer_date"`
	AuditFields
}
