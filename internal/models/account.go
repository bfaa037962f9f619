package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

// Account is the DB row shape for the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	ParentAccountID *string         `db:"parent_account_id"`
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	Balance         decimal.Decimal `db:"balance"`
	GoldBalance     decimal.Decimal `db:"gold_balance"`
	AuditFields
}

// CostCenter is the DB row shape for the cost_centers table.
type CostCenter struct {
	CostCenterID string `db:"cost_center_id"`
	Code         string `db:"code"`
	Name         string `db:"name"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
