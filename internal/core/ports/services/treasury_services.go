package services

import (
	"context"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
)

// TreasurySvcFacade covers treasuries, their transactions and transfers.
type TreasurySvcFacade interface {
	CreateTreasury(ctx context.Context, req dto.CreateTreasuryRequest, creatorID string) (*domain.Treasury, error)
	GetTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error)
	ListTreasuries(ctx context.Context) ([]domain.Treasury, error)

	RecordTransaction(ctx context.Context, req dto.RecordTreasuryTransactionRequest, creatorID string) (*domain.TreasuryTransaction, error)
	ListTransactions(ctx context.Context, treasuryID string) ([]domain.TreasuryTransaction, error)

	CreateTransfer(ctx context.Context, req dto.CreateTreasuryTransferRequest, creatorID string) (*domain.TreasuryTransfer, error)
	GetTransferByID(ctx context.Context, transferID string) (*domain.TreasuryTransfer, error)
	ListTransfers(ctx context.Context, params dto.ListParams) (*dto.ListTransfersResponse, error)
	CompleteTransfer(ctx context.Context, transferID string, actorID string) (*domain.TreasuryTransfer, error)
	CancelTransfer(ctx context.Context, transferID string, actorID string) (*domain.TreasuryTransfer, error)
}

// VoucherSvcFacade covers expense and receipt voucher lifecycles.
type VoucherSvcFacade interface {
	CreateExpenseVoucher(ctx context.Context, req dto.CreateExpenseVoucherRequest, creatorID string) (*domain.ExpenseVoucher, error)
	ApproveExpenseVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ExpenseVoucher, error)
	RejectExpenseVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ExpenseVoucher, error)
	CancelExpenseVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ExpenseVoucher, error)
	PayExpenseVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ExpenseVoucher, error)
	GetExpenseVoucherByID(ctx context.Context, voucherID string) (*domain.ExpenseVoucher, error)
	ListExpenseVouchers(ctx context.Context, params dto.ListParams) (*dto.ListExpenseVouchersResponse, error)

	CreateReceiptVoucher(ctx context.Context, req dto.CreateReceiptVoucherRequest, creatorID string) (*domain.ReceiptVoucher, error)
	ConfirmReceiptVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ReceiptVoucher, error)
	CancelReceiptVoucher(ctx context.Context, voucherID string, actorID string) (*domain.ReceiptVoucher, error)
	GetReceiptVoucherByID(ctx context.Context, voucherID string) (*domain.ReceiptVoucher, error)
	ListReceiptVouchers(ctx context.Context, params dto.ListParams) (*dto.ListReceiptVouchersResponse, error)
}
