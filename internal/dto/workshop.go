package dto

import (
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWorkshopRequest is the payload for registering a workshop.
type CreateWorkshopRequest struct {
	Name         string              `json:"name" binding:"required"`
	WorkshopType domain.WorkshopType `json:"workshopType" binding:"required,oneof=internal external"`
}

// CreateWorkshopTransferRequest opens a pending workshop-to-workshop transfer.
type CreateWorkshopTransferRequest struct {
	FromWorkshopID string          `json:"fromWorkshopID" binding:"required"`
	ToWorkshopID   string          `json:"toWorkshopID" binding:"required"`
	Karat          domain.Karat    `json:"karat" binding:"required"`
	Weight         decimal.Decimal `json:"weight" binding:"required"`
	Notes          string          `json:"notes"`
	Date           time.Time       `json:"date"`
}

// RecordSettlementRequest settles gold, labor, scrap or powder with a workshop.
type RecordSettlementRequest struct {
	WorkshopID     string                        `json:"workshopID" binding:"required"`
	SettlementType domain.WorkshopSettlementType `json:"settlementType" binding:"required,oneof=gold_payment labor_payment scrap_receive powder_receive"`
	Amount         decimal.Decimal               `json:"amount"`
	Weight         decimal.Decimal               `json:"weight"`
	GrossWeight    decimal.Decimal               `json:"grossWeight"`
	Karat          domain.Karat                  `json:"karat"`
	Reference      string                        `json:"reference"`
	Notes          string                        `json:"notes"`
	Date           time.Time                     `json:"date"`
}

// WorkshopResponse is the API shape of a workshop with its running balances.
type WorkshopResponse struct {
	WorkshopID       string              `json:"workshopID"`
	Name             string              `json:"name"`
	WorkshopType     domain.WorkshopType `json:"workshopType"`
	GoldBalance18    decimal.Decimal     `json:"goldBalance18"`
	GoldBalance21    decimal.Decimal     `json:"goldBalance21"`
	GoldBalance24    decimal.Decimal     `json:"goldBalance24"`
	FilingsBalance18 decimal.Decimal     `json:"filingsBalance18"`
	FilingsBalance21 decimal.Decimal     `json:"filingsBalance21"`
	FilingsBalance24 decimal.Decimal     `json:"filingsBalance24"`
	ScrapBalance18   decimal.Decimal     `json:"scrapBalance18"`
	ScrapBalance21   decimal.Decimal     `json:"scrapBalance21"`
	ScrapBalance24   decimal.Decimal     `json:"scrapBalance24"`
	LaborBalance     decimal.Decimal     `json:"laborBalance"`
	IsActive         bool                `json:"isActive"`
}

// ToWorkshopResponse converts a domain Workshop to its API shape.
func ToWorkshopResponse(w domain.Workshop) WorkshopResponse {
	return WorkshopResponse{
		WorkshopID:       w.WorkshopID,
		Name:             w.Name,
		WorkshopType:     w.WorkshopType,
		GoldBalance18:    w.GoldBalances.K18,
		GoldBalance21:    w.GoldBalances.K21,
		GoldBalance24:    w.GoldBalances.K24,
		FilingsBalance18: w.FilingsBalances.K18,
		FilingsBalance21: w.FilingsBalances.K21,
		FilingsBalance24: w.FilingsBalances.K24,
		ScrapBalance18:   w.ScrapBalances.K18,
		ScrapBalance21:   w.ScrapBalances.K21,
		ScrapBalance24:   w.ScrapBalances.K24,
		LaborBalance:     w.LaborBalance,
		IsActive:         w.IsActive,
	}
}
