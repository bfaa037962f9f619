package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFinding is one discrepancy surfaced by a consistency check.
type AuditFinding struct {
	Check    string `json:"check"`
	EntityID string `json:"entityID"`
	Detail   string `json:"detail"`
}

// AuditReport is the result of running every ledger consistency check.
type AuditReport struct {
	RanAt               time.Time      `json:"ranAt"`
	ChecksRun           int            `json:"checksRun"`
	EntriesScanned      int64          `json:"entriesScanned"`
	LinesWithCostCenter int64          `json:"linesWithCostCenter"`
	Findings            []AuditFinding `json:"findings"`
	Clean               bool           `json:"clean"`
}

// TreasuryReplayResult compares a treasury's stored balances with a replay of
// its full transaction history.
type TreasuryReplayResult struct {
	TreasuryID       string          `json:"treasuryID"`
	StoredCash       decimal.Decimal `json:"storedCash"`
	ReplayedCash     decimal.Decimal `json:"replayedCash"`
	StoredGold18     decimal.Decimal `json:"storedGold18"`
	ReplayedGold18   decimal.Decimal `json:"replayedGold18"`
	StoredGold21     decimal.Decimal `json:"storedGold21"`
	ReplayedGold21   decimal.Decimal `json:"replayedGold21"`
	StoredGold24     decimal.Decimal `json:"storedGold24"`
	ReplayedGold24   decimal.Decimal `json:"replayedGold24"`
	TransactionCount int             `json:"transactionCount"`
	Matches          bool            `json:"matches"`
}

// AccountReplayResult compares an account's stored balances with the sum of
// its ledger lines.
type AccountReplayResult struct {
	AccountID    string          `json:"accountID"`
	StoredCash   decimal.Decimal `json:"storedCash"`
	ReplayedCash decimal.Decimal `json:"replayedCash"`
	StoredGold   decimal.Decimal `json:"storedGold"`
	ReplayedGold decimal.Decimal `json:"replayedGold"`
	LineCount    int             `json:"lineCount"`
	Matches      bool            `json:"matches"`
}
