package mapping

import (
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		Reference:   d.Reference,
		EntryDate:   d.Date,
		Description: d.Description,
		SourceType:  string(d.SourceType),
		SourceID:    d.SourceID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		Reference:   m.Reference,
		Date:        m.EntryDate,
		Description: m.Description,
		SourceType:  domain.EntrySource(m.SourceType),
		SourceID:    m.SourceID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerLine converts a domain LedgerLine to a model LedgerLine
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		CostCenterID: d.CostCenterID,
		Debit:        d.Debit,
		Credit:       d.Credit,
		GoldDebit:    d.GoldDebit,
		GoldCredit:   d.GoldCredit,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		CostCenterID: m.CostCenterID,
		Debit:        m.Debit,
		Credit:       m.Credit,
		GoldDebit:    m.GoldDebit,
		GoldCredit:   m.GoldCredit,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerLineSlice converts a slice of model LedgerLines to domain LedgerLines
func ToDomainLedgerLineSlice(ms []models.LedgerLine) []domain.LedgerLine {
	ds := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerLine(m)
	}
	return ds
}
