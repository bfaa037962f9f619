package mapping

import (
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/models"
)

// ToModelExpenseVoucher converts a domain ExpenseVoucher to its model
func ToModelExpenseVoucher(d domain.ExpenseVoucher) models.ExpenseVoucher {
	return models.ExpenseVoucher{
		VoucherID:     d.VoucherID,
		VoucherNumber: d.VoucherNumber,
		Status:        string(d.Status),
		TreasuryID:    d.TreasuryID,
		Beneficiary:   d.Beneficiary,
		Amount:        d.Amount,
		Category:      string(d.Category),
		CostCenterID:  d.CostCenterID,
		Description:   d.Description,
		VoucherDate:   d.VoucherDate,
		PaidDate:      d.PaidDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpenseVoucher converts a model ExpenseVoucher to its domain form
func ToDomainExpenseVoucher(m models.ExpenseVoucher) domain.ExpenseVoucher {
	return domain.ExpenseVoucher{
		VoucherID:     m.VoucherID,
		VoucherNumber: m.VoucherNumber,
		Status:        domain.ExpenseVoucherStatus(m.Status),
		TreasuryID:    m.TreasuryID,
		Beneficiary:   m.Beneficiary,
		Amount:        m.Amount,
		Category:      domain.ExpenseCategory(m.Category),
		CostCenterID:  m.CostCenterID,
		Description:   m.Description,
		VoucherDate:   m.VoucherDate,
		PaidDate:      m.PaidDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReceiptVoucher converts a domain ReceiptVoucher to its model
func ToModelReceiptVoucher(d domain.ReceiptVoucher) models.ReceiptVoucher {
	return models.ReceiptVoucher{
		VoucherID:     d.VoucherID,
		VoucherNumber: d.VoucherNumber,
		Status:        string(d.Status),
		TreasuryID:    d.TreasuryID,
		PayerName:     d.PayerName,
		PaymentMethod: d.PaymentMethod,
		CashAmount:    d.CashAmount,
		GoldWeight:    d.GoldWeight,
		Karat:         string(d.Karat),
		CostCenterID:  d.CostCenterID,
		Description:   d.Description,
		VoucherDate:   d.VoucherDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceiptVoucher converts a model ReceiptVoucher to its domain form
func ToDomainReceiptVoucher(m models.ReceiptVoucher) domain.ReceiptVoucher {
	return domain.ReceiptVoucher{
		VoucherID:     m.VoucherID,
		VoucherNumber: m.VoucherNumber,
		Status:        domain.ReceiptVoucherStatus(m.Status),
		TreasuryID:    m.TreasuryID,
		PayerName:     m.PayerName,
		PaymentMethod: m.PaymentMethod,
		CashAmount:    m.CashAmount,
		GoldWeight:    m.GoldWeight,
		Karat:         domain.Karat(m.Karat),
		CostCenterID:  m.CostCenterID,
		Description:   m.Description,
		VoucherDate:   m.VoucherDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
