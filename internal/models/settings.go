package models

import "time"

// FinanceSettings is the DB row shape for the single finance_settings row.
type FinanceSettings struct {
	SettingsID                 int     `db:"settings_id"`
	CashAccountID              *string `db:"cash_account_id"`
	BankAccountID              *string `db:"bank_account_id"`
	SalesRevenueAccountID      *string `db:"sales_revenue_account_id"`
	InventoryGoldAccountID     *string `db:"inventory_gold_account_id"`
	CostOfGoldAccountID        *string `db:"cost_of_gold_account_id"`
	VATAccountID               *string `db:"vat_account_id"`
	OldGoldAccountID           *string `db:"old_gold_account_id"`
	CommissionExpenseAccountID *string `db:"commission_expense_account_id"`
	CommissionPayableAccountID *string `db:"commission_payable_account_id"`
	SalesTreasuryID            *string `db:"sales_treasury_id"`
	AuditFields
}

// Notification is the DB row shape for the notifications table.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	Level          string    `db:"level"`
	Read           bool      `db:"read"`
	CreatedAt      time.Time `db:"created_at"`
}
