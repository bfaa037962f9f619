package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the manufacturing order state machine:
// draft -> {in_progress, casting, crafting, polishing, tribolish, qc_pending}
// -> completed | qc_failed | cancelled | merged.
type OrderStatus string

const (
	OrderDraft      OrderStatus = "draft"
	OrderInProgress OrderStatus = "in_progress"
	OrderCasting    OrderStatus = "casting"
	OrderCrafting   OrderStatus = "crafting"
	OrderPolishing  OrderStatus = "polishing"
	OrderTribolish  OrderStatus = "tribolish"
	OrderQCPending  OrderStatus = "qc_pending"
	OrderCompleted  OrderStatus = "completed"
	OrderQCFailed   OrderStatus = "qc_failed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderMerged     OrderStatus = "merged"
)

// Active reports whether the status is one of the in-production states.
func (s OrderStatus) Active() bool {
	switch s {
	case OrderInProgress, OrderCasting, OrderCrafting, OrderPolishing, OrderTribolish, OrderQCPending:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderCompleted, OrderCancelled, OrderMerged:
		return true
	}
	return false
}

// ManufacturingOrder models gold mass flowing through a workshop pipeline.
// Issuing the order moves InputWeight into workshop custody; completing it
// consumes (OutputWeight - stone gold equivalent) + PowderWeight and derives
// ScrapWeight as the irrecoverable remainder.
type ManufacturingOrder struct {
	OrderID          string          `json:"orderID"`
	OrderNumber      string          `json:"orderNumber"` // unique
	WorkshopID       *string         `json:"workshopID,omitempty"`
	Karat            Karat           `json:"karat"`
	InputMaterialID  *string         `json:"inputMaterialID,omitempty"`
	InputWeight      decimal.Decimal `json:"inputWeight"`
	OutputWeight     decimal.Decimal `json:"outputWeight"`
	PowderWeight     decimal.Decimal `json:"powderWeight"`
	ScrapWeight      decimal.Decimal `json:"scrapWeight"`      // derived
	TotalStoneWeight decimal.Decimal `json:"totalStoneWeight"` // derived, gold grams
	LaborRate        decimal.Decimal `json:"laborRate"`
	ManufacturingPay decimal.Decimal `json:"manufacturingPay"`
	FactoryMargin    decimal.Decimal `json:"factoryMargin"`
	AutoCreateItem   bool            `json:"autoCreateItem"`
	ItemNamePattern  string          `json:"itemNamePattern"`
	ResultingItemID  *string         `json:"resultingItemID,omitempty"`
	Status           OrderStatus     `json:"status"`
	StartDate        time.Time       `json:"startDate"`
	EndDate          *time.Time      `json:"endDate,omitempty"`
	AuditFields
}

// NetOutputWeight is the pure gold in the finished output: gross output minus
// the embedded stones' gold equivalence.
func (o ManufacturingOrder) NetOutputWeight() decimal.Decimal {
	return o.OutputWeight.Sub(o.TotalStoneWeight)
}

// StoneCaratWeight converts the order's stone gold equivalence back to carats.
func (o ManufacturingOrder) StoneCaratWeight() decimal.Decimal {
	return o.TotalStoneWeight.Div(caratToGram)
}

// TotalLaborValue is the labor cash the finished piece carries: workshop pay
// plus the factory margin.
func (o ManufacturingOrder) TotalLaborValue() decimal.Decimal {
	return o.ManufacturingPay.Add(o.FactoryMargin)
}

// ConsumedWeight is the gold drawn from workshop custody on completion.
func (o ManufacturingOrder) ConsumedWeight() decimal.Decimal {
	return o.NetOutputWeight().Add(o.PowderWeight)
}

// ComputeScrapWeight derives the loss: input - (net output + powder). A
// negative result (gain, e.g. laser solder added) is clamped to zero here; the
// gain itself is handled by the tool-stock draw.
func (o ManufacturingOrder) ComputeScrapWeight() decimal.Decimal {
	scrap := o.InputWeight.Sub(o.ConsumedWeight())
	if scrap.IsNegative() {
		return decimal.Zero
	}
	return scrap
}

// GainWeight is the excess of consumption over input (zero when none).
func (o ManufacturingOrder) GainWeight() decimal.Decimal {
	gain := o.ConsumedWeight().Sub(o.InputWeight)
	if gain.IsNegative() {
		return decimal.Zero
	}
	return gain
}

// StageName identifies a production step within an order.
type StageName string

const (
	StageDesign    StageName = "design"
	StageCasting   StageName = "casting"
	StageFiling    StageName = "filing"
	StageLaser     StageName = "laser"
	StageMounting  StageName = "mounting"
	StageSetting   StageName = "setting"
	StagePolishing StageName = "polishing"
	StagePlating   StageName = "plating"
	StageStamping  StageName = "stamping"
	StageQC        StageName = "qc"
)

// ProductionStage records one step of an order's pipeline. LossWeight =
// input - output - powder and may be negative (a gain, e.g. laser welding
// adds solder). Naming a NextWorkshopID chains stages: a completed workshop
// transfer is auto-created and the order's workshop pointer moves.
type ProductionStage struct {
	StageID        string          `json:"stageID"`
	OrderID        string          `json:"orderID"`
	StageName      StageName       `json:"stageName"`
	WorkshopID     *string         `json:"workshopID,omitempty"`
	InputWeight    decimal.Decimal `json:"inputWeight"`
	OutputWeight   decimal.Decimal `json:"outputWeight"`
	PowderWeight   decimal.Decimal `json:"powderWeight"`
	LossWeight     decimal.Decimal `json:"lossWeight"` // derived, may be negative
	NextWorkshopID *string         `json:"nextWorkshopID,omitempty"`
	Transferred    bool            `json:"transferred"`
	Notes          string          `json:"notes"`
	StartedAt      *time.Time      `json:"startedAt,omitempty"`
	EndedAt        *time.Time      `json:"endedAt,omitempty"`
	AuditFields
}

// ComputeLossWeight derives the stage loss from its weights.
func (s ProductionStage) ComputeLossWeight() decimal.Decimal {
	return s.InputWeight.Sub(s.OutputWeight).Sub(s.PowderWeight)
}

// OrderStone is a gemstone line on a manufacturing order. Its gold
// equivalence follows the tahyaaf rule for the stone's unit.
type OrderStone struct {
	OrderStoneID string          `json:"orderStoneID"`
	OrderID      string          `json:"orderID"`
	StoneName    string          `json:"stoneName"`
	Unit         StoneUnit       `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	AuditFields
}

// GoldEquivalent returns the stone line's tahyaaf gold grams.
func (s OrderStone) GoldEquivalent() decimal.Decimal {
	return StoneGoldEquivalent(s.Unit, s.Quantity)
}

// RawMaterial is a gold lot orders can draw their input weight from.
type RawMaterial struct {
	MaterialID    string          `json:"materialID"`
	Name          string          `json:"name"`
	Karat         Karat           `json:"karat"`
	CurrentWeight decimal.Decimal `json:"currentWeight"`
	AuditFields
}

// Item is a finished-goods inventory piece, optionally auto-created when a
// manufacturing order completes.
type Item struct {
	ItemID        string          `json:"itemID"`
	Barcode       string          `json:"barcode"` // unique
	Name          string          `json:"name"`
	Karat         Karat           `json:"karat"`
	GrossWeight   decimal.Decimal `json:"grossWeight"`
	NetGoldWeight decimal.Decimal `json:"netGoldWeight"`
	StoneWeight   decimal.Decimal `json:"stoneWeight"` // carats
	LaborValue    decimal.Decimal `json:"laborValue"`
	SourceOrderID *string         `json:"sourceOrderID,omitempty"`
	AuditFields
}

// GoldToolStock is a treasury-held consumable stock (wire, solder) keyed by
// karat. Laser-welding gains are drawn from here, not from order input.
type GoldToolStock struct {
	StockID    string          `json:"stockID"`
	TreasuryID string          `json:"treasuryID"`
	Name       string          `json:"name"`
	Karat      Karat           `json:"karat"`
	Weight     decimal.Decimal `json:"weight"`
	AuditFields
}
