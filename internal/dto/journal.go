package dto

import (
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdjustmentLineRequest is one leg of a manual adjustment entry.
type AdjustmentLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	CostCenterID *string         `json:"costCenterID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	GoldDebit    decimal.Decimal `json:"goldDebit"`
	GoldCredit   decimal.Decimal `json:"goldCredit"`
}

// CreateAdjustmentEntryRequest records a manual correction entry. Posted
// lines are never edited or deleted; adjustments are the only correction
// path.
type CreateAdjustmentEntryRequest struct {
	Reference   string                  `json:"reference" binding:"required"`
	Date        time.Time               `json:"date" binding:"required"`
	Description string                  `json:"description" binding:"required"`
	Lines       []AdjustmentLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// LedgerLineResponse is the API shape of a ledger line.
type LedgerLineResponse struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	CostCenterID *string         `json:"costCenterID,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	GoldDebit    decimal.Decimal `json:"goldDebit"`
	GoldCredit   decimal.Decimal `json:"goldCredit"`
}

// JournalEntryResponse is the API shape of a journal entry with its lines.
type JournalEntryResponse struct {
	EntryID     string               `json:"entryID"`
	Reference   string               `json:"reference"`
	Date        time.Time            `json:"date"`
	Description string               `json:"description"`
	SourceType  string               `json:"sourceType"`
	SourceID    string               `json:"sourceID,omitempty"`
	Lines       []LedgerLineResponse `json:"lines,omitempty"`
}

// ToJournalEntryResponse converts a domain JournalEntry to its API shape.
func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		Reference:   e.Reference,
		Date:        e.Date,
		Description: e.Description,
		SourceType:  string(e.SourceType),
		SourceID:    e.SourceID,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LedgerLineResponse, len(e.Lines))
		for i, line := range e.Lines {
			resp.Lines[i] = ToLedgerLineResponse(line)
		}
	}
	return resp
}

// ToLedgerLineResponse converts a domain LedgerLine to its API shape.
func ToLedgerLineResponse(l domain.LedgerLine) LedgerLineResponse {
	return LedgerLineResponse{
		LineID:       l.LineID,
		EntryID:      l.EntryID,
		AccountID:    l.AccountID,
		CostCenterID: l.CostCenterID,
		Debit:        l.Debit,
		Credit:       l.Credit,
		GoldDebit:    l.GoldDebit,
		GoldCredit:   l.GoldCredit,
	}
}

// ListEntriesResponse is a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListLinesResponse is a page of ledger lines for one account.
type ListLinesResponse struct {
	Lines     []LedgerLineResponse `json:"lines"`
	NextToken *string              `json:"nextToken,omitempty"`
}
