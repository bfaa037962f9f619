package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Workshop is the DB row shape for the workshops table.
type Workshop struct {
	WorkshopID       string          `db:"workshop_id"`
	Name             string          `db:"name"`
	WorkshopType     string          `db:"workshop_type"`
	GoldBalance18    decimal.Decimal `db:"gold_balance_18"`
	GoldBalance21    decimal.Decimal `db:"gold_balance_21"`
	GoldBalance24    decimal.Decimal `db:"gold_balance_24"`
	FilingsBalance18 decimal.Decimal `db:"filings_balance_18"`
	FilingsBalance21 decimal.Decimal `db:"filings_balance_21"`
	FilingsBalance24 decimal.Decimal `db:"filings_balance_24"`
	ScrapBalance18   decimal.Decimal `db:"scrap_balance_18"`
	ScrapBalance21   decimal.Decimal `db:"scrap_balance_21"`
	ScrapBalance24   decimal.Decimal `db:"scrap_balance_24"`
	LaborBalance     decimal.Decimal `db:"labor_balance"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}

// WorkshopTransfer is the DB row shape for the workshop_transfers table.
type WorkshopTransfer struct {
	TransferID     string          `db:"transfer_id"`
	TransferNumber string          `db:"transfer_number"`
	FromWorkshopID string          `db:"from_workshop_id"`
	ToWorkshopID   string          `db:"to_workshop_id"`
	Karat          string          `db:"karat"`
	Weight         decimal.Decimal `db:"weight"`
	Status         string          `db:"status"`
	Notes          string          `db:"notes"`
	TransferDate   time.Time       `db:"transfer_date"`
	AuditFields
}

// WorkshopSettlement is the DB row shape for the workshop_settlements table.
type WorkshopSettlement struct {
	SettlementID   string          `db:"settlement_id"`
	WorkshopID     string          `db:"workshop_id"`
	SettlementType string          `db:"settlement_type"`
	Amount         decimal.Decimal `db:"amount"`
	Weight         decimal.Decimal `db:"weight"`
	GrossWeight    decimal.Decimal `db:"gross_weight"`
	Karat          string          `db:"karat"`
	Reference      string          `db:"reference"`
	Notes          string          `db:"notes"`
	SettlementDate time.Time       `db:"settlement_date"`
	AuditFields
}
