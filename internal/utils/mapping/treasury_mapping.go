package mapping

import (
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/models"
)

// ToModelTreasury converts a domain Treasury to a model Treasury
func ToModelTreasury(d domain.Treasury) models.Treasury {
	return models.Treasury{
		TreasuryID:         d.TreasuryID,
		Code:               d.Code,
		Name:               d.Name,
		ParentTreasuryID:   d.ParentTreasuryID,
		TreasuryType:       string(d.TreasuryType),
		CashBalance:        d.CashBalance,
		GoldBalance18:      d.GoldBalances.K18,
		GoldBalance21:      d.GoldBalances.K21,
		GoldBalance24:      d.GoldBalances.K24,
		GoldCastingBalance: d.GoldCastingBalance,
		StonesBalance:      d.StonesBalance,
		LinkedAccountID:    d.LinkedAccountID,
		WorkshopID:         d.WorkshopID,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTreasury converts a model Treasury to a domain Treasury
func ToDomainTreasury(m models.Treasury) domain.Treasury {
	return domain.Treasury{
		TreasuryID:       m.TreasuryID,
		Code:             m.Code,
		Name:             m.Name,
		ParentTreasuryID: m.ParentTreasuryID,
		TreasuryType:     domain.TreasuryType(m.TreasuryType),
		CashBalance:      m.CashBalance,
		GoldBalances: domain.KaratWeights{
			K18: m.GoldBalance18,
			K21: m.GoldBalance21,
			K24: m.GoldBalance24,
		},
		GoldCastingBalance: m.GoldCastingBalance,
		StonesBalance:      m.StonesBalance,
		LinkedAccountID:    m.LinkedAccountID,
		WorkshopID:         m.WorkshopID,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTreasuryTransaction converts a domain TreasuryTransaction to its model
func ToModelTreasuryTransaction(d domain.TreasuryTransaction) models.TreasuryTransaction {
	return models.TreasuryTransaction{
		TransactionID:      d.TransactionID,
		TreasuryID:         d.TreasuryID,
		TransactionType:    string(d.TransactionType),
		CashAmount:         d.CashAmount,
		GoldWeight:         d.GoldWeight,
		Karat:              string(d.Karat),
		GoldCastingWeight:  d.GoldCastingWeight,
		StonesWeight:       d.StonesWeight,
		CostCenterID:       d.CostCenterID,
		ReferenceType:      d.ReferenceType,
		ReferenceID:        d.ReferenceID,
		Description:        d.Description,
		TransactionDate:    d.TransactionDate,
		BalanceAfterCash:   d.BalanceAfterCash,
		BalanceAfterGold:   d.BalanceAfterGold,
		BalanceAfterCast:   d.BalanceAfterCast,
		BalanceAfterStones: d.BalanceAfterStones,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTreasuryTransaction converts a model TreasuryTransaction to its domain form
func ToDomainTreasuryTransaction(m models.TreasuryTransaction) domain.TreasuryTransaction {
	return domain.TreasuryTransaction{
		TransactionID:      m.TransactionID,
		TreasuryID:         m.TreasuryID,
		TransactionType:    domain.TreasuryTransactionType(m.TransactionType),
		CashAmount:         m.CashAmount,
		GoldWeight:         m.GoldWeight,
		Karat:              domain.Karat(m.Karat),
		GoldCastingWeight:  m.GoldCastingWeight,
		StonesWeight:       m.StonesWeight,
		CostCenterID:       m.CostCenterID,
		ReferenceType:      m.ReferenceType,
		ReferenceID:        m.ReferenceID,
		Description:        m.Description,
		TransactionDate:    m.TransactionDate,
		BalanceAfterCash:   m.BalanceAfterCash,
		BalanceAfterGold:   m.BalanceAfterGold,
		BalanceAfterCast:   m.BalanceAfterCast,
		BalanceAfterStones: m.BalanceAfterStones,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTreasuryTransactionSlice converts model transactions to domain transactions
func ToDomainTreasuryTransactionSlice(ms []models.TreasuryTransaction) []domain.TreasuryTransaction {
	ds := make([]domain.TreasuryTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTreasuryTransaction(m)
	}
	return ds
}

// ToModelTreasuryTransfer converts a domain TreasuryTransfer to its model
func ToModelTreasuryTransfer(d domain.TreasuryTransfer) models.TreasuryTransfer {
	return models.TreasuryTransfer{
		TransferID:     d.TransferID,
		TransferNumber: d.TransferNumber,
		FromTreasuryID: d.FromTreasuryID,
		ToTreasuryID:   d.ToTreasuryID,
		CashAmount:     d.CashAmount,
		GoldWeight:     d.GoldWeight,
		Karat:          string(d.Karat),
		StonesWeight:   d.StonesWeight,
		CostCenterID:   d.CostCenterID,
		Status:         string(d.Status),
		Notes:          d.Notes,
		TransferDate:   d.TransferDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTreasuryTransfer converts a model TreasuryTransfer to its domain form
func ToDomainTreasuryTransfer(m models.TreasuryTransfer) domain.TreasuryTransfer {
	return domain.TreasuryTransfer{
		TransferID:     m.TransferID,
		TransferNumber: m.TransferNumber,
		FromTreasuryID: m.FromTreasuryID,
		ToTreasuryID:   m.ToTreasuryID,
		CashAmount:     m.CashAmount,
		GoldWeight:     m.GoldWeight,
		Karat:          domain.Karat(m.Karat),
		StonesWeight:   m.StonesWeight,
		CostCenterID:   m.CostCenterID,
		Status:         domain.TransferStatus(m.Status),
		Notes:          m.Notes,
		TransferDate:   m.TransferDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
