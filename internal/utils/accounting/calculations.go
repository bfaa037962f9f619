package accounting

import (
	"fmt"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedCashAmount converts a ledger line's debit/credit pair into the signed
// balance change it applies to its account, per the accounting convention:
// DEBIT to ASSET/EXPENSE -> positive, CREDIT to ASSET/EXPENSE -> negative,
// DEBIT to LIABILITY/EQUITY/REVENUE -> negative, CREDIT -> positive.
func SignedCashAmount(line domain.LedgerLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
}

// SignedGoldAmount applies the same sign convention to the line's gold axis.
func SignedGoldAmount(line domain.LedgerLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.GoldDebit.Sub(line.GoldCredit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
}

// ComputeBalanceChanges folds an entry's lines into the net signed change per
// account, on both the cash and the gold axis.
func ComputeBalanceChanges(lines []domain.LedgerLine, accountTypes map[string]domain.AccountType) (map[string]domain.BalanceDelta, error) {
	changes := make(map[string]domain.BalanceDelta, len(accountTypes))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account %s", line.AccountID)
		}
		cash, err := SignedCashAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		gold, err := SignedGoldAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		delta := changes[line.AccountID]
		delta.Cash = delta.Cash.Add(cash)
		delta.Gold = delta.Gold.Add(gold)
		changes[line.AccountID] = delta
	}
	return changes, nil
}

// EntryAmount is the economic value of a balanced entry: the debit total.
func EntryAmount(lines []domain.LedgerLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}
