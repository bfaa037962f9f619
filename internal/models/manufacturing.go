package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManufacturingOrder is the DB row shape for the manufacturing_orders table.
type ManufacturingOrder struct {
	OrderID          string          `db:"order_id"`
	OrderNumber      string          `db:"order_number"`
	WorkshopID       *string         `db:"workshop_id"`
	Karat            string          `db:"karat"`
	InputMaterialID  *string         `db:"input_material_id"`
	InputWeight      decimal.Decimal `db:"input_weight"`
	OutputWeight     decimal.Decimal `db:"output_weight"`
	PowderWeight     decimal.Decimal `db:"powder_weight"`
	ScrapWeight      decimal.Decimal `db:"scrap_weight"`
	TotalStoneWeight decimal.Decimal `db:"total_stone_weight"`
	LaborRate        decimal.Decimal `db:"labor_rate"`
	ManufacturingPay decimal.Decimal `db:"manufacturing_pay"`
	FactoryMargin    decimal.Decimal `db:"factory_margin"`
	AutoCreateItem   bool            `db:"auto_create_item"`
	ItemNamePattern  string          `db:"item_name_pattern"`
	ResultingItemID  *string         `db:"resulting_item_id"`
	Status           string          `db:"status"`
	StartDate        time.Time       `db:"start_date"`
	EndDate          *time.Time      `db:"end_date"`
	AuditFields
}

// ProductionStage is the DB row shape for the production_stages table.
type ProductionStage struct {
	StageID        string          `db:"stage_id"`
	OrderID        string          `db:"order_id"`
	StageName      string          `db:"stage_name"`
	WorkshopID     *string         `db:"workshop_id"`
	InputWeight    decimal.Decimal `db:"input_weight"`
	OutputWeight   decimal.Decimal `db:"output_weight"`
	PowderWeight   decimal.Decimal `db:"powder_weight"`
	LossWeight     decimal.Decimal `db:"loss_weight"`
	NextWorkshopID *string         `db:"next_workshop_id"`
	Transferred    bool            `db:"transferred"`
	Notes          string          `db:"notes"`
	StartedAt      *time.Time      `db:"started_at"`
	EndedAt        *time.Time      `db:"ended_at"`
	AuditFields
}

// OrderStone is the DB row shape for the order_stones table.
type OrderStone struct {
	OrderStoneID string          `db:"order_stone_id"`
	OrderID      string          `db:"order_id"`
	StoneName    string          `db:"stone_name"`
	Unit         string          `db:"unit"`
	Quantity     decimal.Decimal `db:"quantity"`
	AuditFields
}

// RawMaterial is the DB row shape for the raw_materials table.
type RawMaterial struct {
	MaterialID    string          `db:"material_id"`
	Name          string          `db:"name"`
	Karat         string          `db:"karat"`
	CurrentWeight decimal.Decimal `db:"current_weight"`
	AuditFields
}

// Item is the DB row shape for the items table.
type Item struct {
	ItemID        string          `db:"item_id"`
	Barcode       string          `db:"barcode"`
	Name          string          `db:"name"`
	Karat         string          `db:"karat"`
	GrossWeight   decimal.Decimal `db:"gross_weight"`
	NetGoldWeight decimal.Decimal `db:"net_gold_weight"`
	StoneWeight   decimal.Decimal `db:"stone_weight"`
	LaborValue    decimal.Decimal `db:"labor_value"`
	SourceOrderID *string         `db:"source_order_id"`
	AuditFields
}

// GoldToolStock is the DB row shape for the gold_tool_stocks table.
type GoldToolStock struct {
	StockID    string          `db:"stock_id"`
	TreasuryID string          `db:"treasury_id"`
	Name       string          `db:"name"`
	Karat      string          `db:"karat"`
	Weight     decimal.Decimal `db:"weight"`
	AuditFields
}
