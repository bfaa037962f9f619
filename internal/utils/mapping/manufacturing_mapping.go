package mapping

import (
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/models"
)

// ToModelManufacturingOrder converts a domain ManufacturingOrder to its model
func ToModelManufacturingOrder(d domain.ManufacturingOrder) models.ManufacturingOrder {
	return models.ManufacturingOrder{
		OrderID:          d.OrderID,
		OrderNumber:      d.OrderNumber,
		WorkshopID:       d.WorkshopID,
		Karat:            string(d.Karat),
		InputMaterialID:  d.InputMaterialID,
		InputWeight:      d.InputWeight,
		OutputWeight:     d.OutputWeight,
		PowderWeight:     d.PowderWeight,
		ScrapWeight:      d.ScrapWeight,
		TotalStoneWeight: d.TotalStoneWeight,
		LaborRate:        d.LaborRate,
		ManufacturingPay: d.ManufacturingPay,
		FactoryMargin:    d.FactoryMargin,
		AutoCreateItem:   d.AutoCreateItem,
		ItemNamePattern:  d.ItemNamePattern,
		ResultingItemID:  d.ResultingItemID,
		Status:           string(d.Status),
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainManufacturingOrder converts a model ManufacturingOrder to its domain form
func ToDomainManufacturingOrder(m models.ManufacturingOrder) domain.ManufacturingOrder {
	return domain.ManufacturingOrder{
		OrderID:          m.OrderID,
		OrderNumber:      m.OrderNumber,
		WorkshopID:       m.WorkshopID,
		Karat:            domain.Karat(m.Karat),
		InputMaterialID:  m.InputMaterialID,
		InputWeight:      m.InputWeight,
		OutputWeight:     m.OutputWeight,
		PowderWeight:     m.PowderWeight,
		ScrapWeight:      m.ScrapWeight,
		TotalStoneWeight: m.TotalStoneWeight,
		LaborRate:        m.LaborRate,
		ManufacturingPay: m.ManufacturingPay,
		FactoryMargin:    m.FactoryMargin,
		AutoCreateItem:   m.AutoCreateItem,
		ItemNamePattern:  m.ItemNamePattern,
		ResultingItemID:  m.ResultingItemID,
		Status:           domain.OrderStatus(m.Status),
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelProductionStage converts a domain ProductionStage to its model
func ToModelProductionStage(d domain.ProductionStage) models.ProductionStage {
	return models.ProductionStage{
		StageID:        d.StageID,
		OrderID:        d.OrderID,
		StageName:      string(d.StageName),
		WorkshopID:     d.WorkshopID,
		InputWeight:    d.InputWeight,
		OutputWeight:   d.OutputWeight,
		PowderWeight:   d.PowderWeight,
		LossWeight:     d.LossWeight,
		NextWorkshopID: d.NextWorkshopID,
		Transferred:    d.Transferred,
		Notes:          d.Notes,
		StartedAt:      d.StartedAt,
		EndedAt:        d.EndedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProductionStage converts a model ProductionStage to its domain form
func ToDomainProductionStage(m models.ProductionStage) domain.ProductionStage {
	return domain.ProductionStage{
		StageID:        m.StageID,
		OrderID:        m.OrderID,
		StageName:      domain.StageName(m.StageName),
		WorkshopID:     m.WorkshopID,
		InputWeight:    m.InputWeight,
		OutputWeight:   m.OutputWeight,
		PowderWeight:   m.PowderWeight,
		LossWeight:     m.LossWeight,
		NextWorkshopID: m.NextWorkshopID,
		Transferred:    m.Transferred,
		Notes:          m.Notes,
		StartedAt:      m.StartedAt,
		EndedAt:        m.EndedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderStone converts a domain OrderStone to its model
func ToModelOrderStone(d domain.OrderStone) models.OrderStone {
	return models.OrderStone{
		OrderStoneID: d.OrderStoneID,
		OrderID:      d.OrderID,
		StoneName:    d.StoneName,
		Unit:         string(d.Unit),
		Quantity:     d.Quantity,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrderStone converts a model OrderStone to its domain form
func ToDomainOrderStone(m models.OrderStone) domain.OrderStone {
	return domain.OrderStone{
		OrderStoneID: m.OrderStoneID,
		OrderID:      m.OrderID,
		StoneName:    m.StoneName,
		Unit:         domain.StoneUnit(m.Unit),
		Quantity:     m.Quantity,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRawMaterial converts a model RawMaterial to its domain form
func ToDomainRawMaterial(m models.RawMaterial) domain.RawMaterial {
	return domain.RawMaterial{
		MaterialID:    m.MaterialID,
		Name:          m.Name,
		Karat:         domain.Karat(m.Karat),
		CurrentWeight: m.CurrentWeight,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRawMaterial converts a domain RawMaterial to its model
func ToModelRawMaterial(d domain.RawMaterial) models.RawMaterial {
	return models.RawMaterial{
		MaterialID:    d.MaterialID,
		Name:          d.Name,
		Karat:         string(d.Karat),
		CurrentWeight: d.CurrentWeight,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToModelItem converts a domain Item to its model
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:        d.ItemID,
		Barcode:       d.Barcode,
		Name:          d.Name,
		Karat:         string(d.Karat),
		GrossWeight:   d.GrossWeight,
		NetGoldWeight: d.NetGoldWeight,
		StoneWeight:   d.StoneWeight,
		LaborValue:    d.LaborValue,
		SourceOrderID: d.SourceOrderID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainItem converts a model Item to its domain form
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:        m.ItemID,
		Barcode:       m.Barcode,
		Name:          m.Name,
		Karat:         domain.Karat(m.Karat),
		GrossWeight:   m.GrossWeight,
		NetGoldWeight: m.NetGoldWeight,
		StoneWeight:   m.StoneWeight,
		LaborValue:    m.LaborValue,
		SourceOrderID: m.SourceOrderID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGoldToolStock converts a model GoldToolStock to its domain form
func ToDomainGoldToolStock(m models.GoldToolStock) domain.GoldToolStock {
	return domain.GoldToolStock{
		StockID:     m.StockID,
		TreasuryID:  m.TreasuryID,
		Name:        m.Name,
		Karat:       domain.Karat(m.Karat),
		Weight:      m.Weight,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
