package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is the DB row shape for the parties table.
type Party struct {
	PartyID       string          `db:"party_id"`
	Kind          string          `db:"kind"`
	Name          string          `db:"name"`
	Phone         string          `db:"phone"`
	CashBalance   decimal.Decimal `db:"cash_balance"`
	GoldBalance18 decimal.Decimal `db:"gold_balance_18"`
	GoldBalance21 decimal.Decimal `db:"gold_balance_21"`
	GoldBalance24 decimal.Decimal `db:"gold_balance_24"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}

// PartyTransaction is the DB row shape for the party_transactions table.
type PartyTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	PartyID         string          `db:"party_id"`
	TransactionType string          `db:"transaction_type"`
	CashDebit       decimal.Decimal `db:"cash_debit"`
	CashCredit      decimal.Decimal `db:"cash_credit"`
	GoldDebit       decimal.Decimal `db:"gold_debit"`
	GoldCredit      decimal.Decimal `db:"gold_credit"`
	Karat           string          `db:"karat"`
	InvoiceRef      string          `db:"invoice_ref"`
	TransactionDate time.Time       `db:"transaction_date"`
	AuditFields
}
