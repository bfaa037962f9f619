package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	"github.com/aurumworks/gold_ledger_app/internal/models"
	"github.com/aurumworks/gold_ledger_app/internal/utils/mapping"
	"github.com/aurumworks/gold_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxManufacturingRepository struct {
	BaseRepository
}

// newPgxManufacturingRepository creates a new repository for manufacturing
// orders, production stages, stones, raw materials, items and tool stocks.
func newPgxManufacturingRepository(pool *pgxpool.Pool) portsrepo.ManufacturingRepositoryWithTx {
	return &PgxManufacturingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ManufacturingRepositoryWithTx = (*PgxManufacturingRepository)(nil)

const orderColumns = `order_id, order_number, workshop_id, karat, input_material_id, input_weight, output_weight, powder_weight, scrap_weight, total_stone_weight, labor_rate, manufacturing_pay, factory_margin, auto_create_item, item_name_pattern, resulting_item_id, status, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`
const stageColumns = `stage_id, order_id, stage_name, workshop_id, input_weight, output_weight, powder_weight, loss_weight, next_workshop_id, transferred, notes, started_at, ended_at, created_at, created_by, last_updated_at, last_updated_by`
const orderStoneColumns = `order_stone_id, order_id, stone_name, unit, quantity, created_at, created_by, last_updated_at, last_updated_by`
const rawMaterialColumns = `material_id, name, karat, current_weight, created_at, created_by, last_updated_at, last_updated_by`
const itemColumns = `item_id, barcode, name, karat, gross_weight, net_gold_weight, stone_weight, labor_value, source_order_id, created_at, created_by, last_updated_at, last_updated_by`
const toolStockColumns = `stock_id, treasury_id, name, karat, weight, created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (models.ManufacturingOrder, error) {
	var m models.ManufacturingOrder
	err := row.Scan(
		&m.OrderID,
		&m.OrderNumber,
		&m.WorkshopID,
		&m.Karat,
		&m.InputMaterialID,
		&m.InputWeight,
		&m.OutputWeight,
		&m.PowderWeight,
		&m.ScrapWeight,
		&m.TotalStoneWeight,
		&m.LaborRate,
		&m.ManufacturingPay,
		&m.FactoryMargin,
		&m.AutoCreateItem,
		&m.ItemNamePattern,
		&m.ResultingItemID,
		&m.Status,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanStage(row pgx.Row) (models.ProductionStage, error) {
	var m models.ProductionStage
	err := row.Scan(
		&m.StageID,
		&m.OrderID,
		&m.StageName,
		&m.WorkshopID,
		&m.InputWeight,
		&m.OutputWeight,
		&m.PowderWeight,
		&m.LossWeight,
		&m.NextWorkshopID,
		&m.Transferred,
		&m.Notes,
		&m.StartedAt,
		&m.EndedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxManufacturingRepository) SaveOrder(ctx context.Context, order domain.ManufacturingOrder) error {
	m := mapping.ToModelManufacturingOrder(order)

	query := `
		INSERT INTO manufacturing_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrderID,
		m.OrderNumber,
		m.WorkshopID,
		m.Karat,
		m.InputMaterialID,
		m.InputWeight,
		m.OutputWeight,
		m.PowderWeight,
		m.ScrapWeight,
		m.TotalStoneWeight,
		m.LaborRate,
		m.ManufacturingPay,
		m.FactoryMargin,
		m.AutoCreateItem,
		m.ItemNamePattern,
		m.ResultingItemID,
		m.Status,
		m.StartDate,
		m.EndDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order number %s already exists", apperrors.ErrDuplicate, m.OrderNumber)
		}
		return fmt.Errorf("failed to save manufacturing order %s: %w", m.OrderID, err)
	}
	return nil
}

func (r *PgxManufacturingRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('manufacturing_order_number_seq');`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate order number: %w", err)
	}
	return fmt.Sprintf("MFG-%05d", seq), nil
}

func (r *PgxManufacturingRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.ManufacturingOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM manufacturing_orders WHERE order_id = $1;`

	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find manufacturing order %s: %w", orderID, err)
	}
	d := mapping.ToDomainManufacturingOrder(m)
	return &d, nil
}

// ListOrders returns orders newest first using token based pagination on
// (start_date, created_at).
func (r *PgxManufacturingRepository) ListOrders(ctx context.Context, limit int, nextToken *string) ([]domain.ManufacturingOrder, *string, error) {
	query := `SELECT ` + orderColumns + ` FROM manufacturing_orders`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` WHERE (start_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += fmt.Sprintf(` ORDER BY start_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list manufacturing orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.ManufacturingOrder
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan manufacturing order row: %w", err)
		}
		orders = append(orders, mapping.ToDomainManufacturingOrder(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating manufacturing order rows: %w", err)
	}

	var newToken *string
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[len(orders)-1]
		token := pagination.EncodeToken(last.StartDate, last.CreatedAt)
		newToken = &token
	}
	return orders, newToken, nil
}

// UpdateOrderStatusInTx transitions the order out of one of fromStatuses.
// The conditional WHERE guards issue and complete against double submission.
func (r *PgxManufacturingRepository) UpdateOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID string, fromStatuses []domain.OrderStatus, toStatus domain.OrderStatus, updatedBy string, now time.Time) (bool, error) {
	from := make([]string, len(fromStatuses))
	for i, s := range fromStatuses {
		from[i] = string(s)
	}

	query := `
		UPDATE manufacturing_orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1 AND status = ANY($5);
	`
	tag, err := tx.Exec(ctx, query, orderID, string(toStatus), now, updatedBy, from)
	if err != nil {
		return false, fmt.Errorf("failed to update status for order %s: %w", orderID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateOrderInTx rewrites the order's mutable columns.
func (r *PgxManufacturingRepository) UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order domain.ManufacturingOrder) error {
	m := mapping.ToModelManufacturingOrder(order)

	query := `
		UPDATE manufacturing_orders
		SET workshop_id = $2, input_weight = $3, output_weight = $4, powder_weight = $5,
			scrap_weight = $6, total_stone_weight = $7, manufacturing_pay = $8,
			resulting_item_id = $9, status = $10, end_date = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE order_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.OrderID,
		m.WorkshopID,
		m.InputWeight,
		m.OutputWeight,
		m.PowderWeight,
		m.ScrapWeight,
		m.TotalStoneWeight,
		m.ManufacturingPay,
		m.ResultingItemID,
		m.Status,
		m.EndDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update manufacturing order %s: %w", m.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: manufacturing order %s not found during update", apperrors.ErrNotFound, m.OrderID)
	}
	return nil
}

func (r *PgxManufacturingRepository) SaveStageInTx(ctx context.Context, tx pgx.Tx, stage domain.ProductionStage) error {
	m := mapping.ToModelProductionStage(stage)

	query := `
		INSERT INTO production_stages (` + stageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		m.StageID,
		m.OrderID,
		m.StageName,
		m.WorkshopID,
		m.InputWeight,
		m.OutputWeight,
		m.PowderWeight,
		m.LossWeight,
		m.NextWorkshopID,
		m.Transferred,
		m.Notes,
		m.StartedAt,
		m.EndedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save production stage %s: %w", m.StageID, err)
	}
	return nil
}

func (r *PgxManufacturingRepository) ListStagesByOrder(ctx context.Context, orderID string) ([]domain.ProductionStage, error) {
	query := `SELECT ` + stageColumns + ` FROM production_stages WHERE order_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages for order %s: %w", orderID, err)
	}
	defer rows.Close()

	var stages []domain.ProductionStage
	for rows.Next() {
		m, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan production stage row: %w", err)
		}
		stages = append(stages, mapping.ToDomainProductionStage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating production stage rows: %w", err)
	}
	return stages, nil
}

func (r *PgxManufacturingRepository) SaveOrderStone(ctx context.Context, stone domain.OrderStone) error {
	m := mapping.ToModelOrderStone(stone)

	query := `
		INSERT INTO order_stones (` + orderStoneColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrderStoneID,
		m.OrderID,
		m.StoneName,
		m.Unit,
		m.Quantity,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save order stone %s: %w", m.OrderStoneID, err)
	}
	return nil
}

func (r *PgxManufacturingRepository) ListOrderStones(ctx context.Context, orderID string) ([]domain.OrderStone, error) {
	query := `SELECT ` + orderStoneColumns + ` FROM order_stones WHERE order_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stones for order %s: %w", orderID, err)
	}
	defer rows.Close()

	var stones []domain.OrderStone
	for rows.Next() {
		var m models.OrderStone
		if err := rows.Scan(&m.OrderStoneID, &m.OrderID, &m.StoneName, &m.Unit, &m.Quantity, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan order stone row: %w", err)
		}
		stones = append(stones, mapping.ToDomainOrderStone(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order stone rows: %w", err)
	}
	return stones, nil
}

func (r *PgxManufacturingRepository) UpdateOrderStoneWeight(ctx context.Context, orderID string, totalStoneWeight decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE manufacturing_orders
		SET total_stone_weight = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, orderID, totalStoneWeight, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update stone weight for order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: manufacturing order %s not found during stone weight update", apperrors.ErrNotFound, orderID)
	}
	return nil
}

// FindRawMaterialForUpdate locks the raw material lot within tx.
func (r *PgxManufacturingRepository) FindRawMaterialForUpdate(ctx context.Context, tx pgx.Tx, materialID string) (*domain.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE material_id = $1 FOR UPDATE;`

	var m models.RawMaterial
	err := tx.QueryRow(ctx, query, materialID).Scan(&m.MaterialID, &m.Name, &m.Karat, &m.CurrentWeight, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock raw material %s: %w", materialID, err)
	}
	d := mapping.ToDomainRawMaterial(m)
	return &d, nil
}

func (r *PgxManufacturingRepository) UpdateRawMaterialWeightInTx(ctx context.Context, tx pgx.Tx, materialID string, newWeight decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE raw_materials
		SET current_weight = $2, last_updated_at = $3, last_updated_by = $4
		WHERE material_id = $1;
	`
	tag, err := tx.Exec(ctx, query, materialID, newWeight, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update weight for raw material %s: %w", materialID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: raw material %s not found during weight update", apperrors.ErrNotFound, materialID)
	}
	return nil
}

func (r *PgxManufacturingRepository) SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error {
	m := mapping.ToModelItem(item)

	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.ItemID,
		m.Barcode,
		m.Name,
		m.Karat,
		m.GrossWeight,
		m.NetGoldWeight,
		m.StoneWeight,
		m.LaborValue,
		m.SourceOrderID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item barcode %s already exists", apperrors.ErrDuplicate, m.Barcode)
		}
		return fmt.Errorf("failed to save item %s: %w", m.ItemID, err)
	}
	return nil
}

// FindToolStockForUpdate locks the tool stock row for the treasury and karat
// within tx.
func (r *PgxManufacturingRepository) FindToolStockForUpdate(ctx context.Context, tx pgx.Tx, treasuryID string, karat domain.Karat) (*domain.GoldToolStock, error) {
	query := `SELECT ` + toolStockColumns + ` FROM gold_tool_stocks WHERE treasury_id = $1 AND karat = $2 FOR UPDATE;`

	var m models.GoldToolStock
	err := tx.QueryRow(ctx, query, treasuryID, string(karat)).Scan(&m.StockID, &m.TreasuryID, &m.Name, &m.Karat, &m.Weight, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock tool stock for treasury %s karat %s: %w", treasuryID, karat, err)
	}
	d := mapping.ToDomainGoldToolStock(m)
	return &d, nil
}

func (r *PgxManufacturingRepository) UpdateToolStockWeightInTx(ctx context.Context, tx pgx.Tx, stockID string, newWeight decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE gold_tool_stocks
		SET weight = $2, last_updated_at = $3, last_updated_by = $4
		WHERE stock_id = $1;
	`
	tag, err := tx.Exec(ctx, query, stockID, newWeight, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update weight for tool stock %s: %w", stockID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tool stock %s not found during weight update", apperrors.ErrNotFound, stockID)
	}
	return nil
}
