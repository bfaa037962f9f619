package domain_test

import (
	"testing"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateEntryBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.LedgerLine
		wantErr bool
	}{
		{
			name: "balanced two-line entry",
			lines: []domain.LedgerLine{
				{Debit: decimal.NewFromInt(100)},
				{Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "balanced multi-line entry",
			lines: []domain.LedgerLine{
				{Debit: decimal.NewFromInt(950)},
				{Debit: decimal.NewFromInt(200)},
				{Credit: decimal.NewFromInt(150)},
				{Credit: decimal.NewFromInt(1000)},
			},
		},
		{
			name: "gold columns are not required to net",
			lines: []domain.LedgerLine{
				{Debit: decimal.NewFromInt(100), GoldDebit: decimal.NewFromInt(5)},
				{Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "unbalanced entry",
			lines: []domain.LedgerLine{
				{Debit: decimal.NewFromInt(100)},
				{Credit: decimal.NewFromInt(90)},
			},
			wantErr: true,
		},
		{
			name: "single line",
			lines: []domain.LedgerLine{
				{Debit: decimal.NewFromInt(100)},
			},
			wantErr: true,
		},
		{
			name:    "no lines",
			lines:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateEntryBalance(tt.lines)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
