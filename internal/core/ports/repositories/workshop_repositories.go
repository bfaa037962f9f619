package repositories

import (
	"context"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WorkshopRepositoryWithTx covers workshops, workshop transfers and
// settlements. Balance writes happen under row locks inside a
// caller-controlled transaction, mirroring the treasury repository.
type WorkshopRepositoryWithTx interface {
	TxManager

	SaveWorkshop(ctx context.Context, workshop domain.Workshop) error
	FindWorkshopByID(ctx context.Context, workshopID string) (*domain.Workshop, error)
	ListWorkshops(ctx context.Context) ([]domain.Workshop, error)

	FindWorkshopForUpdate(ctx context.Context, tx pgx.Tx, workshopID string) (*domain.Workshop, error)
	UpdateWorkshopBalancesInTx(ctx context.Context, tx pgx.Tx, workshop domain.Workshop, updatedBy string, now time.Time) error

	SaveWorkshopTransfer(ctx context.Context, transfer domain.WorkshopTransfer) error
	NextWorkshopTransferNumber(ctx context.Context) (string, error)
	SaveWorkshopTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.WorkshopTransfer) error
	FindWorkshopTransferByID(ctx context.Context, transferID string) (*domain.WorkshopTransfer, error)
	ListWorkshopTransfers(ctx context.Context, workshopID string) ([]domain.WorkshopTransfer, error)
	MarkWorkshopTransferCompletedInTx(ctx context.Context, tx pgx.Tx, transferID string, updatedBy string, now time.Time) (bool, error)

	SaveSettlementInTx(ctx context.Context, tx pgx.Tx, settlement domain.WorkshopSettlement) error
	ListSettlementsByWorkshop(ctx context.Context, workshopID string) ([]domain.WorkshopSettlement, error)
}
