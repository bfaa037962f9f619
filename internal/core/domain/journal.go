package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnbalancedEntry is returned when a journal entry's lines do not balance
// on the cash axis. This is an invariant violation, never a recoverable
// condition: the posting engine always derives both legs from one amount.
var ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

// EntrySource identifies the kind of business record a journal entry was
// posted from.
type EntrySource string

const (
	SourceTreasuryTransaction EntrySource = "treasury_transaction"
	SourceInvoice             EntrySource = "invoice"
	SourceManual              EntrySource = "manual"
)

// JournalEntry is one append-only double-entry record. The Reference is the
// idempotency key ("TRX-<txn id>", an invoice number, ...); a unique index on
// it closes the concurrent double-posting race.
type JournalEntry struct {
	EntryID     string       `json:"entryID"`
	Reference   string       `json:"reference"` // unique
	Date        time.Time    `json:"date"`
	Description string       `json:"description"`
	SourceType  EntrySource  `json:"sourceType"`
	SourceID    string       `json:"sourceID"`
	Lines       []LedgerLine `json:"lines,omitempty"`
	AuditFields
}

// LedgerLine is one leg of a journal entry. Debit/Credit are the cash axis;
// GoldDebit/GoldCredit tag the gold weight moved by the leg and are
// informational (they are not required to net to zero within one entry).
// Lines are immutable once created.
type LedgerLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	CostCenterID *string         `json:"costCenterID,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	GoldDebit    decimal.Decimal `json:"goldDebit"`
	GoldCredit   decimal.Decimal `json:"goldCredit"`
	AuditFields
}

// ValidateEntryBalance checks the cash-axis conservation law for a set of
// lines: the sum of debits must equal the sum of credits.
func ValidateEntryBalance(lines []LedgerLine) error {
	if len(lines) < 2 {
		return ErrUnbalancedEntry
	}
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	if !debits.Equal(credits) {
		return ErrUnbalancedEntry
	}
	return nil
}

// CostCenter is an optional reporting dimension tagged on ledger lines.
type CostCenter struct {
	CostCenterID string `json:"costCenterID"`
	Code         string `json:"code"` // unique
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
