package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
)

var (
	ErrOrderNotDraft         = errors.New("manufacturing order is not draft")
	ErrOrderNotActive        = errors.New("manufacturing order is not active")
	ErrOrderInputInvalid     = errors.New("order input weight must be positive")
	ErrInsufficientRawLot    = errors.New("insufficient raw material lot weight")
	ErrInsufficientToolStock = errors.New("insufficient gold tool stock")
)

// lossAlertRatio flags a stage whose loss exceeds this share of its input.
var lossAlertRatio = decimal.New(5, -2)

// manufacturingService runs the order pipeline: issue moves input weight into
// workshop custody, stages track the weight through the floor (chaining
// workshop transfers), and completion settles consumption, labor, filings,
// scrap and any laser gain, optionally minting the finished item.
type manufacturingService struct {
	manufacturingRepo portsrepo.ManufacturingRepositoryWithTx
	workshopRepo      portsrepo.WorkshopRepositoryWithTx
	treasuryRepo      portsrepo.TreasuryRepositoryWithTx
	settingsRepo      portsrepo.SettingsRepositoryFacade
	notificationRepo  portsrepo.NotificationRepositoryFacade
	postingSvc        portssvc.PostingSvcFacade
}

// NewManufacturingService creates a new ManufacturingService.
func NewManufacturingService(
	manufacturingRepo portsrepo.ManufacturingRepositoryWithTx,
	workshopRepo portsrepo.WorkshopRepositoryWithTx,
	treasuryRepo portsrepo.TreasuryRepositoryWithTx,
	settingsRepo portsrepo.SettingsRepositoryFacade,
	notificationRepo portsrepo.NotificationRepositoryFacade,
	postingSvc portssvc.PostingSvcFacade,
) portssvc.ManufacturingSvcFacade {
	return &manufacturingService{
		manufacturingRepo: manufacturingRepo,
		workshopRepo:      workshopRepo,
		treasuryRepo:      treasuryRepo,
		settingsRepo:      settingsRepo,
		notificationRepo:  notificationRepo,
		postingSvc:        postingSvc,
	}
}

var _ portssvc.ManufacturingSvcFacade = (*manufacturingService)(nil)

func (s *manufacturingService) notify(ctx context.Context, level domain.NotificationLevel, title, message string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		Title:          title,
		Message:        message,
		Level:          level,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		logger.Error("Failed to save notification", slog.String("error", err.Error()), slog.String("title", title))
	}
}

// CreateOrder opens a manufacturing order in draft state.
func (s *manufacturingService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorID string) (*domain.ManufacturingOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.InputWeight.IsPositive() {
		return nil, ErrOrderInputInvalid
	}
	if !req.Karat.Valid() {
		return nil, domain.ErrUnsupportedKarat
	}
	if _, err := s.workshopRepo.FindWorkshopByID(ctx, req.WorkshopID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrWorkshopNotFound, req.WorkshopID)
		}
		return nil, fmt.Errorf("failed to fetch workshop: %w", err)
	}

	orderNumber, err := s.manufacturingRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}

	now := time.Now().UTC()
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	workshopID := req.WorkshopID
	order := domain.ManufacturingOrder{
		OrderID:         uuid.NewString(),
		OrderNumber:     orderNumber,
		WorkshopID:      &workshopID,
		Karat:           req.Karat,
		InputMaterialID: req.InputMaterialID,
		InputWeight:     req.InputWeight,
		LaborRate:       req.LaborRate,
		FactoryMargin:   req.FactoryMargin,
		AutoCreateItem:  req.AutoCreateItem,
		ItemNamePattern: req.ItemNamePattern,
		Status:          domain.OrderDraft,
		StartDate:       startDate,
		AuditFields:     domain.NewAuditFields(creatorID, now),
	}
	if err := s.manufacturingRepo.SaveOrder(ctx, order); err != nil {
		logger.Error("Failed to save order", slog.String("error", err.Error()), slog.String("order_number", orderNumber))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	logger.Info("Manufacturing order created", slog.String("order_id", order.OrderID), slog.String("order_number", orderNumber))
	return &order, nil
}

// GetOrderByID fetches one order.
func (s *manufacturingService) GetOrderByID(ctx context.Context, orderID string) (*domain.ManufacturingOrder, error) {
	order, err := s.manufacturingRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("manufacturing order %s not found", orderID))
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

// ListOrders returns a page of orders, newest first.
func (s *manufacturingService) ListOrders(ctx context.Context, params dto.ListParams) (*dto.ListOrdersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	orders, nextToken, err := s.manufacturingRepo.ListOrders(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return &dto.ListOrdersResponse{Orders: orders, NextToken: nextToken}, nil
}

// IssueOrder moves a draft order into production: it wins the draft ->
// in_progress flip, deducts the referenced raw-material lot and moves the
// input weight into workshop custody, all in one transaction. An order that
// already issued is returned unchanged.
func (s *manufacturingService) IssueOrder(ctx context.Context, orderID string, actorID string) (*domain.ManufacturingOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Active() {
		return order, nil
	}
	if order.Status != domain.OrderDraft {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotDraft, order.OrderNumber, order.Status)
	}
	if order.WorkshopID == nil {
		return nil, fmt.Errorf("%w: order %s has no workshop", apperrors.ErrValidation, order.OrderNumber)
	}

	now := time.Now().UTC()
	tx, err := s.manufacturingRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.manufacturingRepo.Rollback(ctx, tx)

	won, err := s.manufacturingRepo.UpdateOrderStatusInTx(ctx, tx, orderID, []domain.OrderStatus{domain.OrderDraft}, domain.OrderInProgress, actorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}
	if !won {
		return s.GetOrderByID(ctx, orderID)
	}

	if order.InputMaterialID != nil {
		lot, err := s.manufacturingRepo.FindRawMaterialForUpdate(ctx, tx, *order.InputMaterialID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock raw material lot: %w", err)
		}
		if lot.CurrentWeight.LessThan(order.InputWeight) {
			return nil, fmt.Errorf("%w: lot %s holds %s g, order needs %s g",
				ErrInsufficientRawLot, lot.Name, lot.CurrentWeight.String(), order.InputWeight.String())
		}
		newWeight := lot.CurrentWeight.Sub(order.InputWeight)
		if err := s.manufacturingRepo.UpdateRawMaterialWeightInTx(ctx, tx, lot.MaterialID, newWeight, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to update raw material lot: %w", err)
		}
	}

	workshop, err := s.workshopRepo.FindWorkshopForUpdate(ctx, tx, *order.WorkshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock workshop: %w", err)
	}
	if err := workshop.GoldBalances.Add(order.Karat, order.InputWeight); err != nil {
		return nil, err
	}
	if err := s.workshopRepo.UpdateWorkshopBalancesInTx(ctx, tx, *workshop, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update workshop balances: %w", err)
	}
	if err := s.manufacturingRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	order.Status = domain.OrderInProgress
	order.LastUpdatedAt = now
	order.LastUpdatedBy = actorID
	logger.Info("Manufacturing order issued", slog.String("order_id", orderID), slog.String("order_number", order.OrderNumber))
	return order, nil
}

// stageStatus maps a stage name to the order status it implies.
func stageStatus(name domain.StageName) domain.OrderStatus {
	switch name {
	case domain.StageCasting:
		return domain.OrderCasting
	case domain.StagePolishing:
		return domain.OrderPolishing
	case domain.StageQC:
		return domain.OrderQCPending
	default:
		return domain.OrderCrafting
	}
}

// RecordStage appends a production stage to an active order, derives its loss
// and, when the stage names a next workshop, chains a completed workshop
// transfer moving the stage output there.
func (s *manufacturingService) RecordStage(ctx context.Context, orderID string, req dto.RecordStageRequest, creatorID string) (*domain.ProductionStage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Active() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotActive, order.OrderNumber, order.Status)
	}

	now := time.Now().UTC()
	stageWorkshopID := req.WorkshopID
	if stageWorkshopID == nil {
		stageWorkshopID = order.WorkshopID
	}
	stage := domain.ProductionStage{
		StageID:        uuid.NewString(),
		OrderID:        orderID,
		StageName:      req.StageName,
		WorkshopID:     stageWorkshopID,
		InputWeight:    req.InputWeight,
		OutputWeight:   req.OutputWeight,
		PowderWeight:   req.PowderWeight,
		NextWorkshopID: req.NextWorkshopID,
		Notes:          req.Notes,
		EndedAt:        &now,
		AuditFields:    domain.NewAuditFields(creatorID, now),
	}
	stage.LossWeight = stage.ComputeLossWeight()

	tx, err := s.manufacturingRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.manufacturingRepo.Rollback(ctx, tx)

	if req.NextWorkshopID != nil && stageWorkshopID != nil && *req.NextWorkshopID != *stageWorkshopID {
		transferNumber, err := s.workshopRepo.NextWorkshopTransferNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate transfer number: %w", err)
		}

		firstID, secondID := *stageWorkshopID, *req.NextWorkshopID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		locked := make(map[string]*domain.Workshop, 2)
		for _, id := range []string{firstID, secondID} {
			workshop, err := s.workshopRepo.FindWorkshopForUpdate(ctx, tx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to lock workshop %s: %w", id, err)
			}
			locked[id] = workshop
		}
		from := locked[*stageWorkshopID]
		to := locked[*req.NextWorkshopID]

		available, err := from.GoldBalances.Get(order.Karat)
		if err != nil {
			return nil, err
		}
		if available.LessThan(req.OutputWeight) {
			return nil, fmt.Errorf("%w: workshop %s holds %s g of karat %s, stage output is %s g",
				ErrInsufficientWorkshopGold, from.Name, available.String(), order.Karat, req.OutputWeight.String())
		}
		if err := from.GoldBalances.Add(order.Karat, req.OutputWeight.Neg()); err != nil {
			return nil, err
		}
		if err := to.GoldBalances.Add(order.Karat, req.OutputWeight); err != nil {
			return nil, err
		}
		for _, workshop := range []*domain.Workshop{from, to} {
			if err := s.workshopRepo.UpdateWorkshopBalancesInTx(ctx, tx, *workshop, creatorID, now); err != nil {
				return nil, fmt.Errorf("failed to update workshop balances: %w", err)
			}
		}

		transfer := domain.WorkshopTransfer{
			TransferID:     uuid.NewString(),
			TransferNumber: transferNumber,
			FromWorkshopID: *stageWorkshopID,
			ToWorkshopID:   *req.NextWorkshopID,
			Karat:          order.Karat,
			Weight:         req.OutputWeight,
			Status:         domain.TransferCompleted,
			Notes:          fmt.Sprintf("Order %s stage %s handoff", order.OrderNumber, req.StageName),
			TransferDate:   now,
			AuditFields:    domain.NewAuditFields(creatorID, now),
		}
		if err := s.workshopRepo.SaveWorkshopTransferInTx(ctx, tx, transfer); err != nil {
			return nil, fmt.Errorf("failed to save chained workshop transfer: %w", err)
		}
		stage.Transferred = true
		order.WorkshopID = req.NextWorkshopID
	}

	if err := s.manufacturingRepo.SaveStageInTx(ctx, tx, stage); err != nil {
		return nil, fmt.Errorf("failed to save stage: %w", err)
	}

	order.Status = stageStatus(req.StageName)
	order.LastUpdatedAt = now
	order.LastUpdatedBy = creatorID
	if err := s.manufacturingRepo.UpdateOrderInTx(ctx, tx, *order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if err := s.manufacturingRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	if !req.InputWeight.IsZero() && stage.LossWeight.GreaterThan(req.InputWeight.Mul(lossAlertRatio)) {
		s.notify(ctx, domain.LevelWarning, "High production loss",
			fmt.Sprintf("Order %s stage %s lost %s g of %s g input", order.OrderNumber, req.StageName, stage.LossWeight.String(), req.InputWeight.String()))
	}

	logger.Info("Production stage recorded", slog.String("order_id", orderID), slog.String("stage", string(req.StageName)), slog.String("loss", stage.LossWeight.String()))
	return &stage, nil
}

// ListStages returns an order's stage history.
func (s *manufacturingService) ListStages(ctx context.Context, orderID string) ([]domain.ProductionStage, error) {
	if _, err := s.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	stages, err := s.manufacturingRepo.ListStagesByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	return stages, nil
}

// CompleteOrder finalizes an active order: it wins the -> completed flip,
// consumes (output - stone equivalence) + powder from workshop custody, adds
// powder to filings and the derived scrap to the scrap balance, accrues the
// manufacturing pay on the workshop labor balance, draws any gain from the
// gold-tool stock, and optionally mints the finished item with its
// finished_goods_in transaction on the sales treasury.
func (s *manufacturingService) CompleteOrder(ctx context.Context, orderID string, req dto.CompleteOrderRequest, actorID string) (*domain.ManufacturingOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderCompleted {
		return order, nil
	}
	if !order.Status.Active() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotActive, order.OrderNumber, order.Status)
	}
	if order.WorkshopID == nil {
		return nil, fmt.Errorf("%w: order %s has no workshop", apperrors.ErrValidation, order.OrderNumber)
	}

	stones, err := s.manufacturingRepo.ListOrderStones(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order stones: %w", err)
	}
	totalStoneWeight := decimal.Zero
	for _, stone := range stones {
		totalStoneWeight = totalStoneWeight.Add(stone.GoldEquivalent())
	}

	order.OutputWeight = req.OutputWeight
	order.PowderWeight = req.PowderWeight
	order.ManufacturingPay = req.ManufacturingPay
	order.TotalStoneWeight = totalStoneWeight
	order.ScrapWeight = order.ComputeScrapWeight()
	consumed := order.ConsumedWeight()
	gain := order.GainWeight()

	now := time.Now().UTC()
	activeStatuses := []domain.OrderStatus{
		domain.OrderInProgress, domain.OrderCasting, domain.OrderCrafting,
		domain.OrderPolishing, domain.OrderTribolish, domain.OrderQCPending,
	}

	tx, err := s.manufacturingRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.manufacturingRepo.Rollback(ctx, tx)

	won, err := s.manufacturingRepo.UpdateOrderStatusInTx(ctx, tx, orderID, activeStatuses, domain.OrderCompleted, actorID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}
	if !won {
		return s.GetOrderByID(ctx, orderID)
	}

	workshop, err := s.workshopRepo.FindWorkshopForUpdate(ctx, tx, *order.WorkshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock workshop: %w", err)
	}
	available, err := workshop.GoldBalances.Get(order.Karat)
	if err != nil {
		return nil, err
	}
	if available.LessThan(consumed) {
		return nil, fmt.Errorf("%w: workshop %s holds %s g of karat %s, completion consumes %s g",
			ErrInsufficientWorkshopGold, workshop.Name, available.String(), order.Karat, consumed.String())
	}
	if err := workshop.GoldBalances.Add(order.Karat, consumed.Neg()); err != nil {
		return nil, err
	}
	if !order.PowderWeight.IsZero() {
		if err := workshop.FilingsBalances.Add(order.Karat, order.PowderWeight); err != nil {
			return nil, err
		}
	}
	if !order.ScrapWeight.IsZero() {
		if err := workshop.ScrapBalances.Add(order.Karat, order.ScrapWeight); err != nil {
			return nil, err
		}
	}
	if workshop.WorkshopType == domain.WorkshopExternal && !order.ManufacturingPay.IsZero() {
		workshop.LaborBalance = workshop.LaborBalance.Add(order.ManufacturingPay)
	}
	if err := s.workshopRepo.UpdateWorkshopBalancesInTx(ctx, tx, *workshop, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update workshop balances: %w", err)
	}

	var toolDrawTxn *domain.TreasuryTransaction
	if gain.IsPositive() {
		toolDrawTxn, err = s.drawToolStock(ctx, tx, order, gain, actorID, now)
		if err != nil {
			return nil, err
		}
	}

	var finishedTxn, stoneDrawTxn *domain.TreasuryTransaction
	settings, err := s.settingsRepo.GetFinanceSettings(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load finance settings: %w", err)
	}
	if order.AutoCreateItem {
		if settings == nil || settings.SalesTreasuryID == nil {
			s.notify(ctx, domain.LevelWarning, "Finished item not created",
				fmt.Sprintf("Order %s completed but no sales treasury is configured", order.OrderNumber))
		} else {
			itemName := order.ItemNamePattern
			if itemName == "" {
				itemName = fmt.Sprintf("Order %s piece", order.OrderNumber)
			}
			item := domain.Item{
				ItemID:        uuid.NewString(),
				Barcode:       fmt.Sprintf("ITM-%s", order.OrderNumber),
				Name:          itemName,
				Karat:         order.Karat,
				GrossWeight:   order.OutputWeight,
				NetGoldWeight: order.NetOutputWeight(),
				StoneWeight:   order.StoneCaratWeight(),
				LaborValue:    order.TotalLaborValue(),
				SourceOrderID: &order.OrderID,
				AuditFields:   domain.NewAuditFields(actorID, now),
			}
			if err := s.manufacturingRepo.SaveItemInTx(ctx, tx, item); err != nil {
				return nil, fmt.Errorf("failed to save finished item: %w", err)
			}
			order.ResultingItemID = &item.ItemID

			salesTreasury, err := s.treasuryRepo.FindTreasuryForUpdate(ctx, tx, *settings.SalesTreasuryID)
			if err != nil {
				return nil, fmt.Errorf("failed to lock sales treasury: %w", err)
			}
			txn := domain.TreasuryTransaction{
				TransactionID:   uuid.NewString(),
				TreasuryID:      salesTreasury.TreasuryID,
				TransactionType: domain.FinishedGoodsIn,
				CashAmount:      order.TotalLaborValue(),
				GoldWeight:      order.OutputWeight,
				Karat:           order.Karat,
				ReferenceType:   "manufacturing_order",
				ReferenceID:     order.OrderID,
				Description:     fmt.Sprintf("Finished goods from order %s", order.OrderNumber),
				TransactionDate: now,
				AuditFields:     domain.NewAuditFields(actorID, now),
			}
			if err := salesTreasury.Apply(&txn); err != nil {
				return nil, err
			}
			if err := s.treasuryRepo.UpdateTreasuryBalancesInTx(ctx, tx, *salesTreasury, actorID, now); err != nil {
				return nil, fmt.Errorf("failed to update sales treasury balances: %w", err)
			}
			if err := s.treasuryRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
				return nil, fmt.Errorf("failed to save finished goods transaction: %w", err)
			}
			finishedTxn = &txn

			if order.TotalStoneWeight.IsPositive() {
				stoneDrawTxn, err = s.drawStoneStock(ctx, tx, order, actorID, now)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	order.Status = domain.OrderCompleted
	order.EndDate = &now
	order.LastUpdatedAt = now
	order.LastUpdatedBy = actorID
	if err := s.manufacturingRepo.UpdateOrderInTx(ctx, tx, *order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if err := s.manufacturingRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	for _, txn := range []*domain.TreasuryTransaction{toolDrawTxn, stoneDrawTxn, finishedTxn} {
		if txn == nil {
			continue
		}
		if _, err := s.postingSvc.PostTreasuryTransaction(ctx, *txn, nil); err != nil {
			logger.Error("GL posting failed for order transaction", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		}
	}

	logger.Info("Manufacturing order completed",
		slog.String("order_id", orderID),
		slog.String("order_number", order.OrderNumber),
		slog.String("consumed", consumed.String()),
		slog.String("scrap", order.ScrapWeight.String()))
	return order, nil
}

// drawToolStock covers a completion gain (consumption above input, e.g. laser
// solder) from the gold-tools treasury stock, recording the gold_out movement.
func (s *manufacturingService) drawToolStock(ctx context.Context, tx pgx.Tx, order *domain.ManufacturingOrder, gain decimal.Decimal, actorID string, now time.Time) (*domain.TreasuryTransaction, error) {
	treasuries, err := s.treasuryRepo.ListTreasuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasuries: %w", err)
	}
	var toolTreasuryID string
	for _, treasury := range treasuries {
		if treasury.TreasuryType == domain.TreasuryGoldTools && treasury.IsActive {
			toolTreasuryID = treasury.TreasuryID
			break
		}
	}
	if toolTreasuryID == "" {
		s.notify(ctx, domain.LevelWarning, "Gain not covered",
			fmt.Sprintf("Order %s gained %s g but no gold-tools treasury exists", order.OrderNumber, gain.String()))
		return nil, nil
	}

	stock, err := s.manufacturingRepo.FindToolStockForUpdate(ctx, tx, toolTreasuryID, order.Karat)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.notify(ctx, domain.LevelWarning, "Gain not covered",
				fmt.Sprintf("Order %s gained %s g but no karat %s tool stock exists", order.OrderNumber, gain.String(), order.Karat))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock tool stock: %w", err)
	}
	if stock.Weight.LessThan(gain) {
		return nil, fmt.Errorf("%w: stock %s holds %s g, gain is %s g",
			ErrInsufficientToolStock, stock.Name, stock.Weight.String(), gain.String())
	}
	if err := s.manufacturingRepo.UpdateToolStockWeightInTx(ctx, tx, stock.StockID, stock.Weight.Sub(gain), actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update tool stock: %w", err)
	}

	toolTreasury, err := s.treasuryRepo.FindTreasuryForUpdate(ctx, tx, toolTreasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock gold-tools treasury: %w", err)
	}
	txn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      toolTreasuryID,
		TransactionType: domain.GoldOut,
		GoldWeight:      gain,
		Karat:           order.Karat,
		ReferenceType:   "manufacturing_order",
		ReferenceID:     order.OrderID,
		Description:     fmt.Sprintf("Tool stock draw for order %s gain", order.OrderNumber),
		TransactionDate: now,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}
	if err := toolTreasury.Apply(&txn); err != nil {
		return nil, err
	}
	if err := s.treasuryRepo.UpdateTreasuryBalancesInTx(ctx, tx, *toolTreasury, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update gold-tools treasury balances: %w", err)
	}
	if err := s.treasuryRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save tool stock transaction: %w", err)
	}
	return &txn, nil
}

// drawStoneStock deducts the stones embedded in a minted item from the stones
// treasury, recording the carat movement on its stones balance.
func (s *manufacturingService) drawStoneStock(ctx context.Context, tx pgx.Tx, order *domain.ManufacturingOrder, actorID string, now time.Time) (*domain.TreasuryTransaction, error) {
	treasuries, err := s.treasuryRepo.ListTreasuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasuries: %w", err)
	}
	var stonesTreasuryID string
	for _, treasury := range treasuries {
		if treasury.TreasuryType == domain.TreasuryStones && treasury.IsActive {
			stonesTreasuryID = treasury.TreasuryID
			break
		}
	}
	if stonesTreasuryID == "" {
		s.notify(ctx, domain.LevelWarning, "Stone stock not deducted",
			fmt.Sprintf("Order %s consumed %s ct of stones but no stones treasury exists", order.OrderNumber, order.StoneCaratWeight().String()))
		return nil, nil
	}

	stonesTreasury, err := s.treasuryRepo.FindTreasuryForUpdate(ctx, tx, stonesTreasuryID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock stones treasury: %w", err)
	}
	txn := domain.TreasuryTransaction{
		TransactionID:   uuid.NewString(),
		TreasuryID:      stonesTreasuryID,
		TransactionType: domain.GoldOut,
		StonesWeight:    order.StoneCaratWeight(),
		ReferenceType:   "manufacturing_order",
		ReferenceID:     order.OrderID,
		Description:     fmt.Sprintf("Stones set into order %s item", order.OrderNumber),
		TransactionDate: now,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}
	if err := stonesTreasury.Apply(&txn); err != nil {
		return nil, err
	}
	if err := s.treasuryRepo.UpdateTreasuryBalancesInTx(ctx, tx, *stonesTreasury, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to update stones treasury balances: %w", err)
	}
	if err := s.treasuryRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save stone stock transaction: %w", err)
	}
	return &txn, nil
}

// AddOrderStone attaches a stone line to a non-terminal order and refreshes
// the order's total stone gold equivalence.
func (s *manufacturingService) AddOrderStone(ctx context.Context, orderID string, req dto.AddOrderStoneRequest, creatorID string) (*domain.OrderStone, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrConflict, order.OrderNumber, order.Status)
	}

	now := time.Now().UTC()
	stone := domain.OrderStone{
		OrderStoneID: uuid.NewString(),
		OrderID:      orderID,
		StoneName:    req.StoneName,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		AuditFields:  domain.NewAuditFields(creatorID, now),
	}
	if err := s.manufacturingRepo.SaveOrderStone(ctx, stone); err != nil {
		return nil, fmt.Errorf("failed to save order stone: %w", err)
	}

	stones, err := s.manufacturingRepo.ListOrderStones(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order stones: %w", err)
	}
	total := decimal.Zero
	for _, existing := range stones {
		total = total.Add(existing.GoldEquivalent())
	}
	if err := s.manufacturingRepo.UpdateOrderStoneWeight(ctx, orderID, total, creatorID, now); err != nil {
		return nil, fmt.Errorf("failed to update order stone weight: %w", err)
	}

	logger.Info("Order stone added", slog.String("order_id", orderID), slog.String("stone", req.StoneName), slog.String("total_equivalent", total.String()))
	return &stone, nil
}

// ListOrderStones returns an order's stone lines.
func (s *manufacturingService) ListOrderStones(ctx context.Context, orderID string) ([]domain.OrderStone, error) {
	if _, err := s.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	stones, err := s.manufacturingRepo.ListOrderStones(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order stones: %w", err)
	}
	return stones, nil
}
