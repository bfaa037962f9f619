package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WorkshopType distinguishes in-house production floors from external
// subcontractors (which accrue a labor balance payable in currency).
type WorkshopType string

const (
	WorkshopInternal WorkshopType = "internal"
	WorkshopExternal WorkshopType = "external"
)

// Workshop is a production-custody node. It is not a GL account: its balances
// are physical weights (per karat) plus a currency labor balance, mutated only
// by the manufacturing lifecycle, workshop transfers and settlements. It never
// posts to the ledger directly.
type Workshop struct {
	WorkshopID      string          `json:"workshopID"`
	Name            string          `json:"name"`
	WorkshopType    WorkshopType    `json:"workshopType"`
	GoldBalances    KaratWeights    `json:"goldBalances"`
	FilingsBalances KaratWeights    `json:"filingsBalances"`
	ScrapBalances   KaratWeights    `json:"scrapBalances"`
	LaborBalance    decimal.Decimal `json:"laborBalance"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// WorkshopTransfer moves gold of one karat between two workshops. Unlike
// treasury transfers, completion blocks when the source balance is
// insufficient.
type WorkshopTransfer struct {
	TransferID     string          `json:"transferID"`
	TransferNumber string          `json:"transferNumber"` // unique
	FromWorkshopID string          `json:"fromWorkshopID"`
	ToWorkshopID   string          `json:"toWorkshopID"`
	Karat          Karat           `json:"karat"`
	Weight         decimal.Decimal `json:"weight"`
	Status         TransferStatus  `json:"status"`
	Notes          string          `json:"notes"`
	TransferDate   time.Time       `json:"transferDate"`
	AuditFields
}

// WorkshopSettlementType is the closed set of settlement kinds reconciling a
// workshop against the business.
type WorkshopSettlementType string

const (
	SettlementGoldPayment   WorkshopSettlementType = "gold_payment"
	SettlementLaborPayment  WorkshopSettlementType = "labor_payment"
	SettlementScrapReceive  WorkshopSettlementType = "scrap_receive"
	SettlementPowderReceive WorkshopSettlementType = "powder_receive"
)

// WorkshopSettlement records a reconciliation event against one workshop.
type WorkshopSettlement struct {
	SettlementID   string                 `json:"settlementID"`
	WorkshopID     string                 `json:"workshopID"`
	SettlementType WorkshopSettlementType `json:"settlementType"`
	Amount         decimal.Decimal        `json:"amount"`
	Weight         decimal.Decimal        `json:"weight"`
	GrossWeight    decimal.Decimal        `json:"grossWeight"`
	Karat          Karat                  `json:"karat,omitempty"`
	Reference      string                 `json:"reference"`
	Notes          string                 `json:"notes"`
	SettlementDate time.Time              `json:"settlementDate"`
	AuditFields
}

// ApplySettlement mutates the workshop balances per the settlement type:
// gold_payment adds gold owed to the workshop, labor_payment pays down the
// labor balance, scrap/powder receipts take gold back out of custody.
func (w *Workshop) ApplySettlement(s WorkshopSettlement) error {
	switch s.SettlementType {
	case SettlementGoldPayment:
		return w.GoldBalances.Add(s.Karat, s.Weight)
	case SettlementLaborPayment:
		w.LaborBalance = w.LaborBalance.Sub(s.Amount)
		return nil
	case SettlementScrapReceive, SettlementPowderReceive:
		return w.GoldBalances.Add(s.Karat, s.Weight.Neg())
	}
	return fmt.Errorf("unknown workshop settlement type %q", s.SettlementType)
}
