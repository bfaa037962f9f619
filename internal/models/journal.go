package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the DB row shape for the journal_entries table. The
// reference column carries a unique index: it is the posting idempotency key.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	Reference   string    `db:"reference"`
	EntryDate   time.Time `db:"entry_date"`
	Description string    `db:"description"`
	SourceType  string    `db:"source_type"`
	SourceID    string    `db:"source_id"`
	AuditFields
}

// LedgerLine is the DB row shape for the ledger_lines table.
type LedgerLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	CostCenterID *string         `db:"cost_center_id"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	GoldDebit    decimal.Decimal `db:"gold_debit"`
	GoldCredit   decimal.Decimal `db:"gold_credit"`
	AuditFields
}
