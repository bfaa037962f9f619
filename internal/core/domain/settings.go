package domain

// FinanceSettings is the posting engine's default-account mapping, loaded from
// a single configuration row and passed around as an explicit value object.
// Any member may be unset; the posting engine treats a missing mapping as a
// skip-with-warning, never a crash, so the originating business event always
// completes.
type FinanceSettings struct {
	CashAccountID              *string `json:"cashAccountID,omitempty"`
	BankAccountID              *string `json:"bankAccountID,omitempty"`
	SalesRevenueAccountID      *string `json:"salesRevenueAccountID,omitempty"`
	InventoryGoldAccountID     *string `json:"inventoryGoldAccountID,omitempty"`
	CostOfGoldAccountID        *string `json:"costOfGoldAccountID,omitempty"`
	VATAccountID               *string `json:"vatAccountID,omitempty"`
	OldGoldAccountID           *string `json:"oldGoldAccountID,omitempty"`
	CommissionExpenseAccountID *string `json:"commissionExpenseAccountID,omitempty"`
	CommissionPayableAccountID *string `json:"commissionPayableAccountID,omitempty"`
	SalesTreasuryID            *string `json:"salesTreasuryID,omitempty"`
	AuditFields
}
