package mapping

import (
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/models"
)

// ToModelWorkshop converts a domain Workshop to its model
func ToModelWorkshop(d domain.Workshop) models.Workshop {
	return models.Workshop{
		WorkshopID:       d.WorkshopID,
		Name:             d.Name,
		WorkshopType:     string(d.WorkshopType),
		GoldBalance18:    d.GoldBalances.K18,
		GoldBalance21:    d.GoldBalances.K21,
		GoldBalance24:    d.GoldBalances.K24,
		FilingsBalance18: d.FilingsBalances.K18,
		FilingsBalance21: d.FilingsBalances.K21,
		FilingsBalance24: d.FilingsBalances.K24,
		ScrapBalance18:   d.ScrapBalances.K18,
		ScrapBalance21:   d.ScrapBalances.K21,
		ScrapBalance24:   d.ScrapBalances.K24,
		LaborBalance:     d.LaborBalance,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkshop converts a model Workshop to its domain form
func ToDomainWorkshop(m models.Workshop) domain.Workshop {
	return domain.Workshop{
		WorkshopID:   m.WorkshopID,
		Name:         m.Name,
		WorkshopType: domain.WorkshopType(m.WorkshopType),
		GoldBalances: domain.KaratWeights{
			K18: m.GoldBalance18,
			K21: m.GoldBalance21,
			K24: m.GoldBalance24,
		},
		FilingsBalances: domain.KaratWeights{
			K18: m.FilingsBalance18,
			K21: m.FilingsBalance21,
			K24: m.FilingsBalance24,
		},
		ScrapBalances: domain.KaratWeights{
			K18: m.ScrapBalance18,
			K21: m.ScrapBalance21,
			K24: m.ScrapBalance24,
		},
		LaborBalance: m.LaborBalance,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWorkshopTransfer converts a domain WorkshopTransfer to its model
func ToModelWorkshopTransfer(d domain.WorkshopTransfer) models.WorkshopTransfer {
	return models.WorkshopTransfer{
		TransferID:     d.TransferID,
		TransferNumber: d.TransferNumber,
		FromWorkshopID: d.FromWorkshopID,
		ToWorkshopID:   d.ToWorkshopID,
		Karat:          string(d.Karat),
		Weight:         d.Weight,
		Status:         string(d.Status),
		Notes:          d.Notes,
		TransferDate:   d.TransferDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkshopTransfer converts a model WorkshopTransfer to its domain form
func ToDomainWorkshopTransfer(m models.WorkshopTransfer) domain.WorkshopTransfer {
	return domain.WorkshopTransfer{
		TransferID:     m.TransferID,
		TransferNumber: m.TransferNumber,
		FromWorkshopID: m.FromWorkshopID,
		ToWorkshopID:   m.ToWorkshopID,
		Karat:          domain.Karat(m.Karat),
		Weight:         m.Weight,
		Status:         domain.TransferStatus(m.Status),
		Notes:          m.Notes,
		TransferDate:   m.TransferDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWorkshopSettlement converts a domain WorkshopSettlement to its model
func ToModelWorkshopSettlement(d domain.WorkshopSettlement) models.WorkshopSettlement {
	return models.WorkshopSettlement{
		SettlementID:   d.SettlementID,
		WorkshopID:     d.WorkshopID,
		SettlementType: string(d.SettlementType),
		Amount:         d.Amount,
		Weight:         d.Weight,
		GrossWeight:    d.GrossWeight,
		Karat:          string(d.Karat),
		Reference:      d.Reference,
		Notes:          d.Notes,
		SettlementDate: d.SettlementDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkshopSettlement converts a model WorkshopSettlement to its domain form
func ToDomainWorkshopSettlement(m models.WorkshopSettlement) domain.WorkshopSettlement {
	return domain.WorkshopSettlement{
		SettlementID:   m.SettlementID,
		WorkshopID:     m.WorkshopID,
		SettlementType: domain.WorkshopSettlementType(m.SettlementType),
		Amount:         m.Amount,
		Weight:         m.Weight,
		GrossWeight:    m.GrossWeight,
		Karat:          domain.Karat(m.Karat),
		Reference:      m.Reference,
		Notes:          m.Notes,
		SettlementDate: m.SettlementDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
