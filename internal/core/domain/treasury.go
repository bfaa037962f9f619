package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TreasuryType classifies a custody node within the treasury hierarchy.
type TreasuryType string

const (
	TreasuryMain       TreasuryType = "main"
	TreasuryBranch     TreasuryType = "branch"
	TreasuryPetty      TreasuryType = "petty"
	TreasurySales      TreasuryType = "sales"
	TreasuryWorkshop   TreasuryType = "workshop"
	TreasuryGoldRaw    TreasuryType = "gold_raw"
	TreasuryStones     TreasuryType = "stones"
	TreasuryFinished   TreasuryType = "finished"
	TreasuryGoldTools  TreasuryType = "gold_tools"
	TreasuryProduction TreasuryType = "production"
	TreasuryCasting    TreasuryType = "casting"
	TreasuryLaser      TreasuryType = "laser"
)

// Treasury is a cash+gold+gemstone custody node. It may be linked 1:1 to a GL
// account (the posting engine uses that link) and/or to a workshop. Balances
// are mutated exclusively through TreasuryTransaction application.
type Treasury struct {
	TreasuryID         string          `json:"treasuryID"`
	Code               string          `json:"code"` // unique
	Name               string          `json:"name"`
	ParentTreasuryID   *string         `json:"parentTreasuryID,omitempty"`
	TreasuryType       TreasuryType    `json:"treasuryType"`
	CashBalance        decimal.Decimal `json:"cashBalance"`
	GoldBalances       KaratWeights    `json:"goldBalances"`
	GoldCastingBalance decimal.Decimal `json:"goldCastingBalance"`
	StonesBalance      decimal.Decimal `json:"stonesBalance"`
	LinkedAccountID    *string         `json:"linkedAccountID,omitempty"`
	WorkshopID         *string         `json:"workshopID,omitempty"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}

// TreasuryTransactionType is the closed set of balance-affecting event kinds.
type TreasuryTransactionType string

const (
	CashIn          TreasuryTransactionType = "cash_in"
	CashOut         TreasuryTransactionType = "cash_out"
	GoldIn          TreasuryTransactionType = "gold_in"
	GoldOut         TreasuryTransactionType = "gold_out"
	TransferIn      TreasuryTransactionType = "transfer_in"
	TransferOut     TreasuryTransactionType = "transfer_out"
	FinishedGoodsIn TreasuryTransactionType = "finished_goods_in"
	Adjustment      TreasuryTransactionType = "adjustment"
)

// TreasuryTransaction is an atomic balance-affecting event on one treasury.
// ReferenceType/ReferenceID link back to the triggering business record
// (transfer, voucher, manufacturing order, invoice). The BalanceAfter fields
// snapshot the treasury's balances immediately after application, for audit.
// Immutable once created.
type TreasuryTransaction struct {
	TransactionID      string                  `json:"transactionID"`
	TreasuryID         string                  `json:"treasuryID"`
	TransactionType    TreasuryTransactionType `json:"transactionType"`
	CashAmount         decimal.Decimal         `json:"cashAmount"`
	GoldWeight         decimal.Decimal         `json:"goldWeight"`
	Karat              Karat                   `json:"karat,omitempty"`
	GoldCastingWeight  decimal.Decimal         `json:"goldCastingWeight"`
	StonesWeight       decimal.Decimal         `json:"stonesWeight"`
	CostCenterID       *string                 `json:"costCenterID,omitempty"`
	ReferenceType      string                  `json:"referenceType"`
	ReferenceID        string                  `json:"referenceID"`
	Description        string                  `json:"description"`
	TransactionDate    time.Time               `json:"transactionDate"`
	BalanceAfterCash   decimal.Decimal         `json:"balanceAfterCash"`
	BalanceAfterGold   decimal.Decimal         `json:"balanceAfterGold"`
	BalanceAfterCast   decimal.Decimal         `json:"balanceAfterCast"`
	BalanceAfterStones decimal.Decimal         `json:"balanceAfterStones"`
	AuditFields
}

// direction returns the sign each balance axis moves for a transaction type:
// +1 inbound, -1 outbound, 0 untouched.
func (t TreasuryTransactionType) direction() (cash, gold int) {
	switch t {
	case CashIn, TransferIn, Adjustment, FinishedGoodsIn:
		return 1, 1
	case CashOut, TransferOut:
		return -1, -1
	case GoldIn:
		return 0, 1
	case GoldOut:
		return 0, -1
	}
	return 0, 0
}

// Apply mutates the treasury balances per the transaction's type and stamps
// the balance-after snapshot on txn. Insufficient balance is not blocking:
// negative balances are permitted by policy and only flagged by audit.
func (t *Treasury) Apply(txn *TreasuryTransaction) error {
	if txn.TreasuryID != t.TreasuryID {
		return fmt.Errorf("transaction %s targets treasury %s, not %s", txn.TransactionID, txn.TreasuryID, t.TreasuryID)
	}
	cashSign, goldSign := txn.TransactionType.direction()
	if cashSign == 0 && goldSign == 0 {
		return fmt.Errorf("unknown treasury transaction type %q", txn.TransactionType)
	}

	if cashSign != 0 && !txn.CashAmount.IsZero() {
		delta := txn.CashAmount
		if cashSign < 0 {
			delta = delta.Neg()
		}
		t.CashBalance = t.CashBalance.Add(delta)
	}
	if goldSign != 0 {
		if !txn.GoldWeight.IsZero() {
			delta := txn.GoldWeight
			if goldSign < 0 {
				delta = delta.Neg()
			}
			if err := t.GoldBalances.Add(txn.Karat, delta); err != nil {
				return err
			}
		}
		if !txn.GoldCastingWeight.IsZero() {
			delta := txn.GoldCastingWeight
			if goldSign < 0 {
				delta = delta.Neg()
			}
			t.GoldCastingBalance = t.GoldCastingBalance.Add(delta)
		}
		if !txn.StonesWeight.IsZero() {
			delta := txn.StonesWeight
			if goldSign < 0 {
				delta = delta.Neg()
			}
			t.StonesBalance = t.StonesBalance.Add(delta)
		}
	}

	txn.BalanceAfterCash = t.CashBalance
	if txn.Karat.Valid() {
		after, err := t.GoldBalances.Get(txn.Karat)
		if err != nil {
			return err
		}
		txn.BalanceAfterGold = after
	} else {
		txn.BalanceAfterGold = t.GoldBalances.Total()
	}
	txn.BalanceAfterCast = t.GoldCastingBalance
	txn.BalanceAfterStones = t.StonesBalance
	return nil
}

// TransferStatus is the lifecycle state of a two-sided transfer document.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferCompleted TransferStatus = "completed"
	TransferCancelled TransferStatus = "cancelled"
)

// TreasuryTransfer moves cash/gold/stones between two treasuries. Completing
// it (once) decomposes into exactly two TreasuryTransactions and exactly one
// journal entry, posted from the out leg only.
type TreasuryTransfer struct {
	TransferID     string          `json:"transferID"`
	TransferNumber string          `json:"transferNumber"` // unique, TRF-%05d
	FromTreasuryID string          `json:"fromTreasuryID"`
	ToTreasuryID   string          `json:"toTreasuryID"`
	CashAmount     decimal.Decimal `json:"cashAmount"`
	GoldWeight     decimal.Decimal `json:"goldWeight"`
	Karat          Karat           `json:"karat,omitempty"`
	StonesWeight   decimal.Decimal `json:"stonesWeight"`
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	Status         TransferStatus  `json:"status"`
	Notes          string          `json:"notes"`
	TransferDate   time.Time       `json:"transferDate"`
	AuditFields
}

// StonesWeightInGold returns the gold equivalent of the stones leg.
func (t TreasuryTransfer) StonesWeightInGold() decimal.Decimal {
	return StoneGoldEquivalent(UnitCarat, t.StonesWeight)
}

// NetGoldWeight is the pure gold weight moved plus the stones' equivalence.
func (t TreasuryTransfer) NetGoldWeight() decimal.Decimal {
	return t.GoldWeight.Add(t.StonesWeightInGold())
}
