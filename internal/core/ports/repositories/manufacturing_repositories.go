package repositories

import (
	"context"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ManufacturingRepositoryWithTx covers manufacturing orders, production
// stages, stone lines, raw-material lots, finished items and the gold-tool
// stock the laser gain draws from.
type ManufacturingRepositoryWithTx interface {
	TxManager

	SaveOrder(ctx context.Context, order domain.ManufacturingOrder) error
	NextOrderNumber(ctx context.Context) (string, error)
	FindOrderByID(ctx context.Context, orderID string) (*domain.ManufacturingOrder, error)
	ListOrders(ctx context.Context, limit int, nextToken *string) ([]domain.ManufacturingOrder, *string, error)

	// UpdateOrderStatusInTx transitions the order from one of fromStatuses to
	// toStatus; false when the order was not in any of them (already
	// transitioned, guarding issue/complete idempotency).
	UpdateOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID string, fromStatuses []domain.OrderStatus, toStatus domain.OrderStatus, updatedBy string, now time.Time) (bool, error)
	UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order domain.ManufacturingOrder) error

	SaveStageInTx(ctx context.Context, tx pgx.Tx, stage domain.ProductionStage) error
	ListStagesByOrder(ctx context.Context, orderID string) ([]domain.ProductionStage, error)

	SaveOrderStone(ctx context.Context, stone domain.OrderStone) error
	ListOrderStones(ctx context.Context, orderID string) ([]domain.OrderStone, error)
	UpdateOrderStoneWeight(ctx context.Context, orderID string, totalStoneWeight decimal.Decimal, updatedBy string, now time.Time) error

	FindRawMaterialForUpdate(ctx context.Context, tx pgx.Tx, materialID string) (*domain.RawMaterial, error)
	UpdateRawMaterialWeightInTx(ctx context.Context, tx pgx.Tx, materialID string, newWeight decimal.Decimal, updatedBy string, now time.Time) error

	SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error

	FindToolStockForUpdate(ctx context.Context, tx pgx.Tx, treasuryID string, karat domain.Karat) (*domain.GoldToolStock, error)
	UpdateToolStockWeightInTx(ctx context.Context, tx pgx.Tx, stockID string, newWeight decimal.Decimal, updatedBy string, now time.Time) error
}
