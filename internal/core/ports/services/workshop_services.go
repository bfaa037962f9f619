package services

import (
	"context"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
)

// WorkshopSvcFacade covers workshops, workshop transfers and settlements.
type WorkshopSvcFacade interface {
	CreateWorkshop(ctx context.Context, req dto.CreateWorkshopRequest, creatorID string) (*domain.Workshop, error)
	GetWorkshopByID(ctx context.Context, workshopID string) (*domain.Workshop, error)
	ListWorkshops(ctx context.Context) ([]domain.Workshop, error)

	CreateWorkshopTransfer(ctx context.Context, req dto.CreateWorkshopTransferRequest, creatorID string) (*domain.WorkshopTransfer, error)
	CompleteWorkshopTransfer(ctx context.Context, transferID string, actorID string) (*domain.WorkshopTransfer, error)
	ListWorkshopTransfers(ctx context.Context, workshopID string) ([]domain.WorkshopTransfer, error)

	RecordSettlement(ctx context.Context, req dto.RecordSettlementRequest, creatorID string) (*domain.WorkshopSettlement, error)
	ListSettlements(ctx context.Context, workshopID string) ([]domain.WorkshopSettlement, error)
}

// ManufacturingSvcFacade covers the manufacturing order pipeline.
type ManufacturingSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorID string) (*domain.ManufacturingOrder, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.ManufacturingOrder, error)
	ListOrders(ctx context.Context, params dto.ListParams) (*dto.ListOrdersResponse, error)

	// IssueOrder moves the order out of draft and issues its input weight
	// into workshop custody (deducting a referenced raw-material lot).
	IssueOrder(ctx context.Context, orderID string, actorID string) (*domain.ManufacturingOrder, error)

	// RecordStage appends a production stage, derives its loss, and chains a
	// workshop transfer when the stage names a next workshop.
	RecordStage(ctx context.Context, orderID string, req dto.RecordStageRequest, creatorID string) (*domain.ProductionStage, error)
	ListStages(ctx context.Context, orderID string) ([]domain.ProductionStage, error)

	// CompleteOrder consumes workshop gold, settles labor and filings, draws
	// any laser gain from tool stock, and optionally creates the finished
	// item plus its finished_goods_in treasury transaction.
	CompleteOrder(ctx context.Context, orderID string, req dto.CompleteOrderRequest, actorID string) (*domain.ManufacturingOrder, error)

	AddOrderStone(ctx context.Context, orderID string, req dto.AddOrderStoneRequest, creatorID string) (*domain.OrderStone, error)
	ListOrderStones(ctx context.Context, orderID string) ([]domain.OrderStone, error)
}
