package dto

import (
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTreasuryRequest is the payload for creating a treasury.
type CreateTreasuryRequest struct {
	Code             string              `json:"code" binding:"required"`
	Name             string              `json:"name" binding:"required"`
	TreasuryType     domain.TreasuryType `json:"treasuryType" binding:"required"`
	ParentTreasuryID *string             `json:"parentTreasuryID"`
	LinkedAccountID  *string             `json:"linkedAccountID"`
	WorkshopID       *string             `json:"workshopID"`
}

// RecordTreasuryTransactionRequest records one balance-affecting event
// directly (adjustments, gold movements outside a transfer document).
type RecordTreasuryTransactionRequest struct {
	TreasuryID        string                         `json:"treasuryID" binding:"required"`
	TransactionType   domain.TreasuryTransactionType `json:"transactionType" binding:"required"`
	CashAmount        decimal.Decimal                `json:"cashAmount"`
	GoldWeight        decimal.Decimal                `json:"goldWeight"`
	Karat             domain.Karat                   `json:"karat"`
	GoldCastingWeight decimal.Decimal                `json:"goldCastingWeight"`
	StonesWeight      decimal.Decimal                `json:"stonesWeight"`
	CostCenterID      *string                        `json:"costCenterID"`
	ReferenceType     string                         `json:"referenceType"`
	ReferenceID       string                         `json:"referenceID"`
	Description       string                         `json:"description"`
	Date              time.Time                      `json:"date"`
}

// CreateTreasuryTransferRequest opens a pending two-sided transfer.
type CreateTreasuryTransferRequest struct {
	FromTreasuryID string          `json:"fromTreasuryID" binding:"required"`
	ToTreasuryID   string          `json:"toTreasuryID" binding:"required"`
	CashAmount     decimal.Decimal `json:"cashAmount"`
	GoldWeight     decimal.Decimal `json:"goldWeight"`
	Karat          domain.Karat    `json:"karat"`
	StonesWeight   decimal.Decimal `json:"stonesWeight"`
	CostCenterID   *string         `json:"costCenterID"`
	Notes          string          `json:"notes"`
	Date           time.Time       `json:"date"`
}

// TreasuryResponse is the API shape of a treasury with its balances.
type TreasuryResponse struct {
	TreasuryID         string              `json:"treasuryID"`
	Code               string              `json:"code"`
	Name               string              `json:"name"`
	TreasuryType       domain.TreasuryType `json:"treasuryType"`
	ParentTreasuryID   *string             `json:"parentTreasuryID,omitempty"`
	CashBalance        decimal.Decimal     `json:"cashBalance"`
	GoldBalance18      decimal.Decimal     `json:"goldBalance18"`
	GoldBalance21      decimal.Decimal     `json:"goldBalance21"`
	GoldBalance24      decimal.Decimal     `json:"goldBalance24"`
	GoldCastingBalance decimal.Decimal     `json:"goldCastingBalance"`
	StonesBalance      decimal.Decimal     `json:"stonesBalance"`
	LinkedAccountID    *string             `json:"linkedAccountID,omitempty"`
	WorkshopID         *string             `json:"workshopID,omitempty"`
	IsActive           bool                `json:"isActive"`
}

// ToTreasuryResponse converts a domain Treasury to its API shape.
func ToTreasuryResponse(t domain.Treasury) TreasuryResponse {
	return TreasuryResponse{
		TreasuryID:         t.TreasuryID,
		Code:               t.Code,
		Name:               t.Name,
		TreasuryType:       t.TreasuryType,
		ParentTreasuryID:   t.ParentTreasuryID,
		CashBalance:        t.CashBalance,
		GoldBalance18:      t.GoldBalances.K18,
		GoldBalance21:      t.GoldBalances.K21,
		GoldBalance24:      t.GoldBalances.K24,
		GoldCastingBalance: t.GoldCastingBalance,
		StonesBalance:      t.StonesBalance,
		LinkedAccountID:    t.LinkedAccountID,
		WorkshopID:         t.WorkshopID,
		IsActive:           t.IsActive,
	}
}

// ListTransfersResponse is a page of treasury transfers.
type ListTransfersResponse struct {
	Transfers []domain.TreasuryTransfer `json:"transfers"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ConfirmInvoiceRequest is the inbound invoice-confirmed event payload.
type ConfirmInvoiceRequest struct {
	InvoiceNumber         string          `json:"invoiceNumber" binding:"required"`
	CustomerPartyID       *string         `json:"customerPartyID"`
	PaymentMethod         string          `json:"paymentMethod" binding:"required,oneof=cash bank"`
	GrandTotal            decimal.Decimal `json:"grandTotal" binding:"required"`
	TotalTax              decimal.Decimal `json:"totalTax"`
	SoldGoldWeight        decimal.Decimal `json:"soldGoldWeight"`
	Karat                 domain.Karat    `json:"karat"`
	IsExchange            bool            `json:"isExchange"`
	ExchangeGoldWeight    decimal.Decimal `json:"exchangeGoldWeight"`
	ExchangeValueDeducted decimal.Decimal `json:"exchangeValueDeducted"`
	SalesRepID            *string         `json:"salesRepID"`
	SalesRepName          string          `json:"salesRepName"`
	CommissionAmount      decimal.Decimal `json:"commissionAmount"`
	InvoiceDate           time.Time       `json:"invoiceDate"`
}

// ConfirmInvoiceResponse reports whether the confirmed invoice produced a
// journal entry. Posted is false when the posting was skipped for missing
// finance settings.
type ConfirmInvoiceResponse struct {
	Posted          bool                  `json:"posted"`
	Entry           *JournalEntryResponse `json:"entry,omitempty"`
	CommissionEntry *JournalEntryResponse `json:"commissionEntry,omitempty"`
}

// ToDomainInvoice converts the inbound event payload to its domain form.
func (r ConfirmInvoiceRequest) ToDomainInvoice() domain.SalesInvoice {
	return domain.SalesInvoice{
		InvoiceNumber:        r.InvoiceNumber,
		CustomerPartyID:      r.CustomerPartyID,
		PaymentMethod:        r.PaymentMethod,
		GrandTotal:           r.GrandTotal,
		TotalTax:             r.TotalTax,
		SoldGoldWeight:       r.SoldGoldWeight,
		Karat:                r.Karat,
		IsExchange:           r.IsExchange,
		ExchangeGoldWeight:   r.ExchangeGoldWeight,
		ExchangeValueDeduced: r.ExchangeValueDeducted,
		SalesRepID:           r.SalesRepID,
		SalesRepName:         r.SalesRepName,
		CommissionAmount:     r.CommissionAmount,
		InvoiceDate:          r.InvoiceDate,
	}
}
