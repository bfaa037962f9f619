package mapping

import (
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/models"
)

// ToDomainFinanceSettings converts the model settings row to its domain value object
func ToDomainFinanceSettings(m models.FinanceSettings) domain.FinanceSettings {
	return domain.FinanceSettings{
		CashAccountID:              m.CashAccountID,
		BankAccountID:              m.BankAccountID,
		SalesRevenueAccountID:      m.SalesRevenueAccountID,
		InventoryGoldAccountID:     m.InventoryGoldAccountID,
		CostOfGoldAccountID:        m.CostOfGoldAccountID,
		VATAccountID:               m.VATAccountID,
		OldGoldAccountID:           m.OldGoldAccountID,
		CommissionExpenseAccountID: m.CommissionExpenseAccountID,
		CommissionPayableAccountID: m.CommissionPayableAccountID,
		SalesTreasuryID:            m.SalesTreasuryID,
		AuditFields:                ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFinanceSettings converts the domain value object to its model row
func ToModelFinanceSettings(d domain.FinanceSettings) models.FinanceSettings {
	return models.FinanceSettings{
		SettingsID:                 1,
		CashAccountID:              d.CashAccountID,
		BankAccountID:              d.BankAccountID,
		SalesRevenueAccountID:      d.SalesRevenueAccountID,
		InventoryGoldAccountID:     d.InventoryGoldAccountID,
		CostOfGoldAccountID:        d.CostOfGoldAccountID,
		VATAccountID:               d.VATAccountID,
		OldGoldAccountID:           d.OldGoldAccountID,
		CommissionExpenseAccountID: d.CommissionExpenseAccountID,
		CommissionPayableAccountID: d.CommissionPayableAccountID,
		SalesTreasuryID:            d.SalesTreasuryID,
		AuditFields:                ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNotification converts a model Notification to its domain form
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		Title:          m.Title,
		Message:        m.Message,
		Level:          domain.NotificationLevel(m.Level),
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelNotification converts a domain Notification to its model
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		Title:          d.Title,
		Message:        d.Message,
		Level:          string(d.Level),
		Read:           d.Read,
		CreatedAt:      d.CreatedAt,
	}
}
