package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoice is the inbound invoice-confirmed event payload consumed by the
// posting engine. The sales subsystem itself lives outside the ledger core;
// only the amounts that drive revenue recognition cross the boundary.
type SalesInvoice struct {
	InvoiceNumber        string          `json:"invoiceNumber"` // posting reference
	CustomerPartyID      *string         `json:"customerPartyID,omitempty"`
	PaymentMethod        string          `json:"paymentMethod"` // cash | bank
	GrandTotal           decimal.Decimal `json:"grandTotal"`
	TotalTax             decimal.Decimal `json:"totalTax"`
	SoldGoldWeight       decimal.Decimal `json:"soldGoldWeight"`
	Karat                Karat           `json:"karat,omitempty"`
	IsExchange           bool            `json:"isExchange"`
	ExchangeGoldWeight   decimal.Decimal `json:"exchangeGoldWeight"`
	ExchangeValueDeduced decimal.Decimal `json:"exchangeValueDeducted"`
	SalesRepID           *string         `json:"salesRepID,omitempty"`
	SalesRepName         string          `json:"salesRepName,omitempty"`
	CommissionAmount     decimal.Decimal `json:"commissionAmount"`
	InvoiceDate          time.Time       `json:"invoiceDate"`
}

// HasCommission reports whether the sale accrues a sales-rep commission.
func (inv SalesInvoice) HasCommission() bool {
	return inv.SalesRepID != nil && inv.CommissionAmount.IsPositive()
}

// CashReceived is the cash leg of the sale: the grand total net of any
// old-gold exchange value the customer traded in.
func (inv SalesInvoice) CashReceived() decimal.Decimal {
	return inv.GrandTotal.Sub(inv.ExchangeValueDeduced)
}

// RevenueAmount is the pre-tax revenue recognized on the sale.
func (inv SalesInvoice) RevenueAmount() decimal.Decimal {
	return inv.GrandTotal.Sub(inv.TotalTax)
}
