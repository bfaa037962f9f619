package dto

import (
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest registers a customer or supplier.
type CreatePartyRequest struct {
	Kind  domain.PartyKind `json:"kind" binding:"required,oneof=customer supplier"`
	Name  string           `json:"name" binding:"required"`
	Phone string           `json:"phone"`
}

// RecordPartyTransactionRequest appends one movement to a party sub-ledger.
type RecordPartyTransactionRequest struct {
	PartyID         string                      `json:"partyID" binding:"required"`
	TransactionType domain.PartyTransactionType `json:"transactionType" binding:"required"`
	CashDebit       decimal.Decimal             `json:"cashDebit"`
	CashCredit      decimal.Decimal             `json:"cashCredit"`
	GoldDebit       decimal.Decimal             `json:"goldDebit"`
	GoldCredit      decimal.Decimal             `json:"goldCredit"`
	Karat           domain.Karat                `json:"karat"`
	InvoiceRef      string                      `json:"invoiceRef"`
	Date            time.Time                   `json:"date"`
}

// PartyResponse is the API shape of a party with its replayed balances.
type PartyResponse struct {
	PartyID       string           `json:"partyID"`
	Kind          domain.PartyKind `json:"kind"`
	Name          string           `json:"name"`
	Phone         string           `json:"phone,omitempty"`
	CashBalance   decimal.Decimal  `json:"cashBalance"`
	GoldBalance18 decimal.Decimal  `json:"goldBalance18"`
	GoldBalance21 decimal.Decimal  `json:"goldBalance21"`
	GoldBalance24 decimal.Decimal  `json:"goldBalance24"`
	IsActive      bool             `json:"isActive"`
}

// ToPartyResponse converts a domain Party to its API shape.
func ToPartyResponse(p domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:       p.PartyID,
		Kind:          p.Kind,
		Name:          p.Name,
		Phone:         p.Phone,
		CashBalance:   p.CashBalance,
		GoldBalance18: p.GoldBalances.K18,
		GoldBalance21: p.GoldBalances.K21,
		GoldBalance24: p.GoldBalances.K24,
		IsActive:      p.IsActive,
	}
}
