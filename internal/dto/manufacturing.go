package dto

import (
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest opens a manufacturing order in draft state.
type CreateOrderRequest struct {
	WorkshopID      string          `json:"workshopID" binding:"required"`
	Karat           domain.Karat    `json:"karat" binding:"required"`
	InputMaterialID *string         `json:"inputMaterialID"`
	InputWeight     decimal.Decimal `json:"inputWeight" binding:"required"`
	LaborRate       decimal.Decimal `json:"laborRate"`
	FactoryMargin   decimal.Decimal `json:"factoryMargin"`
	AutoCreateItem  bool            `json:"autoCreateItem"`
	ItemNamePattern string          `json:"itemNamePattern"`
	StartDate       time.Time       `json:"startDate"`
}

// RecordStageRequest records one production stage on an active order.
type RecordStageRequest struct {
	StageName      domain.StageName `json:"stageName" binding:"required"`
	WorkshopID     *string          `json:"workshopID"`
	NextWorkshopID *string          `json:"nextWorkshopID"`
	InputWeight    decimal.Decimal  `json:"inputWeight" binding:"required"`
	OutputWeight   decimal.Decimal  `json:"outputWeight" binding:"required"`
	PowderWeight   decimal.Decimal  `json:"powderWeight"`
	Notes          string           `json:"notes"`
}

// CompleteOrderRequest finalizes an order and settles its weights.
type CompleteOrderRequest struct {
	OutputWeight     decimal.Decimal `json:"outputWeight" binding:"required"`
	PowderWeight     decimal.Decimal `json:"powderWeight"`
	ManufacturingPay decimal.Decimal `json:"manufacturingPay"`
}

// AddOrderStoneRequest attaches a stone line to an order.
type AddOrderStoneRequest struct {
	StoneName string           `json:"stoneName" binding:"required"`
	Unit      domain.StoneUnit `json:"unit" binding:"required,oneof=carat gram cm"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
}

// ListOrdersResponse is a page of manufacturing orders.
type ListOrdersResponse struct {
	Orders    []domain.ManufacturingOrder `json:"orders"`
	NextToken *string                     `json:"nextToken,omitempty"`
}
