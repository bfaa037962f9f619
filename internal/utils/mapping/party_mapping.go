package mapping

import (
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/models"
)

// ToModelParty converts a domain Party to its model
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:       d.PartyID,
		Kind:          string(d.Kind),
		Name:          d.Name,
		Phone:         d.Phone,
		CashBalance:   d.CashBalance,
		GoldBalance18: d.GoldBalances.K18,
		GoldBalance21: d.GoldBalances.K21,
		GoldBalance24: d.GoldBalances.K24,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a model Party to its domain form
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:     m.PartyID,
		Kind:        domain.PartyKind(m.Kind),
		Name:        m.Name,
		Phone:       m.Phone,
		CashBalance: m.CashBalance,
		GoldBalances: domain.KaratWeights{
			K18: m.GoldBalance18,
			K21: m.GoldBalance21,
			K24: m.GoldBalance24,
		},
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPartyTransaction converts a domain PartyTransaction to its model
func ToModelPartyTransaction(d domain.PartyTransaction) models.PartyTransaction {
	return models.PartyTransaction{
		TransactionID:   d.TransactionID,
		PartyID:         d.PartyID,
		TransactionType: string(d.TransactionType),
		CashDebit:       d.CashDebit,
		CashCredit:      d.CashCredit,
		GoldDebit:       d.GoldDebit,
		GoldCredit:      d.GoldCredit,
		Karat:           string(d.Karat),
		InvoiceRef:      d.InvoiceRef,
		TransactionDate: d.TransactionDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPartyTransaction converts a model PartyTransaction to its domain form
func ToDomainPartyTransaction(m models.PartyTransaction) domain.PartyTransaction {
	return domain.PartyTransaction{
		TransactionID:   m.TransactionID,
		PartyID:         m.PartyID,
		TransactionType: domain.PartyTransactionType(m.TransactionType),
		CashDebit:       m.CashDebit,
		CashCredit:      m.CashCredit,
		GoldDebit:       m.GoldDebit,
		GoldCredit:      m.GoldCredit,
		Karat:           domain.Karat(m.Karat),
		InvoiceRef:      m.InvoiceRef,
		TransactionDate: m.TransactionDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPartyTransactionSlice converts model party transactions to domain form
func ToDomainPartyTransactionSlice(ms []models.PartyTransaction) []domain.PartyTransaction {
	ds := make([]domain.PartyTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPartyTransaction(m)
	}
	return ds
}
