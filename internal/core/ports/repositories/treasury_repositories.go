package repositories

import (
	"context"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TreasuryRepositoryWithTx covers treasuries, their transactions and
// transfers. Balance-affecting writes happen inside a caller-controlled
// transaction so a transfer can lock both treasuries before applying its legs.
type TreasuryRepositoryWithTx interface {
	TxManager

	SaveTreasury(ctx context.Context, treasury domain.Treasury) error
	FindTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error)
	FindTreasuryByCode(ctx context.Context, code string) (*domain.Treasury, error)
	ListTreasuries(ctx context.Context) ([]domain.Treasury, error)

	FindTreasuryForUpdate(ctx context.Context, tx pgx.Tx, treasuryID string) (*domain.Treasury, error)
	UpdateTreasuryBalancesInTx(ctx context.Context, tx pgx.Tx, treasury domain.Treasury, updatedBy string, now time.Time) error
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.TreasuryTransaction) error

	ListTransactionsByTreasury(ctx context.Context, treasuryID string) ([]domain.TreasuryTransaction, error)
	FindTransactionsByReference(ctx context.Context, referenceType, referenceID string) ([]domain.TreasuryTransaction, error)

	SaveTransfer(ctx context.Context, transfer domain.TreasuryTransfer) error
	FindTransferByID(ctx context.Context, transferID string) (*domain.TreasuryTransfer, error)
	ListTransfers(ctx context.Context, limit int, nextToken *string) ([]domain.TreasuryTransfer, *string, error)
	NextTransferNumber(ctx context.Context) (string, error)

	// MarkTransferCompletedInTx flips a pending transfer to completed and
	// reports whether this call won the transition (false when the transfer
	// was already completed or cancelled).
	MarkTransferCompletedInTx(ctx context.Context, tx pgx.Tx, transferID string, updatedBy string, now time.Time) (bool, error)

	// MarkTransferCancelled flips a pending transfer to cancelled; false when
	// the transfer already left the pending state.
	MarkTransferCancelled(ctx context.Context, transferID string, updatedBy string, now time.Time) (bool, error)
}
