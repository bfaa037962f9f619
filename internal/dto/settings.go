package dto

// UpdateFinanceSettingsRequest replaces the posting engine's account mapping.
// All members are optional; unset mappings make the affected posting rules
// skip with a warning instead of failing.
type UpdateFinanceSettingsRequest struct {
	CashAccountID              *string `json:"cashAccountID"`
	BankAccountID              *string `json:"bankAccountID"`
	SalesRevenueAccountID      *string `json:"salesRevenueAccountID"`
	InventoryGoldAccountID     *string `json:"inventoryGoldAccountID"`
	CostOfGoldAccountID        *string `json:"costOfGoldAccountID"`
	VATAccountID               *string `json:"vatAccountID"`
	OldGoldAccountID           *string `json:"oldGoldAccountID"`
	CommissionExpenseAccountID *string `json:"commissionExpenseAccountID"`
	CommissionPayableAccountID *string `json:"commissionPayableAccountID"`
	SalesTreasuryID            *string `json:"salesTreasuryID"`
}
