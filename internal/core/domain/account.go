package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in the chart of accounts. It carries two denormalized
// running balances: the cash balance (currency) and the gold balance (grams).
// Both are reconstructible by replaying the account's ledger lines.
type Account struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"` // unique
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID,omitempty"`
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"`
	GoldBalance     decimal.Decimal `json:"goldBalance"`
	AuditFields
}

// BalanceDelta is the net signed change a journal entry applies to one
// account, on both the cash and the gold axis.
type BalanceDelta struct {
	Cash decimal.Decimal
	Gold decimal.Decimal
}
