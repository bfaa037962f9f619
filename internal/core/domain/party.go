package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyKind distinguishes the two counterparty sub-ledgers.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartySupplier PartyKind = "supplier"
)

// Party is a counterparty (customer or supplier) with its own cash and
// per-karat gold running balances. The balances are never patched
// incrementally: they are fully recomputed from the party's transaction
// history whenever a transaction is appended.
type Party struct {
	PartyID      string          `json:"partyID"`
	Kind         PartyKind       `json:"kind"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	CashBalance  decimal.Decimal `json:"cashBalance"`
	GoldBalances KaratWeights    `json:"goldBalances"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// PartyTransactionType classifies a sub-ledger movement.
type PartyTransactionType string

const (
	PartySale       PartyTransactionType = "sale"
	PartyPayment    PartyTransactionType = "payment"
	PartyGoldIn     PartyTransactionType = "gold_in"
	PartyGoldOut    PartyTransactionType = "gold_out"
	PartyBarter     PartyTransactionType = "barter"
	PartyAdjustment PartyTransactionType = "adjustment"
)

// PartyTransaction is an immutable row in a party's sub-ledger. Debits
// increase what the party owes us; credits decrease it. Gold columns follow
// the same convention per karat.
type PartyTransaction struct {
	TransactionID   string               `json:"transactionID"`
	PartyID         string               `json:"partyID"`
	TransactionType PartyTransactionType `json:"transactionType"`
	CashDebit       decimal.Decimal      `json:"cashDebit"`
	CashCredit      decimal.Decimal      `json:"cashCredit"`
	GoldDebit       decimal.Decimal      `json:"goldDebit"`
	GoldCredit      decimal.Decimal      `json:"goldCredit"`
	Karat           Karat                `json:"karat,omitempty"`
	InvoiceRef      string               `json:"invoiceRef"`
	TransactionDate time.Time            `json:"transactionDate"`
	AuditFields
}

// ReplayPartyBalances folds a party's full transaction history from zero and
// returns the resulting cash and per-karat gold balances. This is the
// canonical balance algorithm; the stored balances are a cache of its result.
func ReplayPartyBalances(txns []PartyTransaction) (decimal.Decimal, KaratWeights) {
	cash := decimal.Zero
	var gold KaratWeights
	for _, txn := range txns {
		cash = cash.Add(txn.CashDebit).Sub(txn.CashCredit)
		if txn.Karat.Valid() {
			// Add cannot fail for a valid karat.
			_ = gold.Add(txn.Karat, txn.GoldDebit.Sub(txn.GoldCredit))
		}
	}
	return cash, gold
}
