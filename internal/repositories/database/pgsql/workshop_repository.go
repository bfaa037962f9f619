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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWorkshopRepository struct {
	BaseRepository
}

// newPgxWorkshopRepository creates a new repository for workshops, workshop
// transfers and settlements.
func newPgxWorkshopRepository(pool *pgxpool.Pool) portsrepo.WorkshopRepositoryWithTx {
	return &PgxWorkshopRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkshopRepositoryWithTx = (*PgxWorkshopRepository)(nil)

const workshopColumns = `workshop_id, name, workshop_type, gold_balance_18, gold_balance_21, gold_balance_24, filings_balance_18, filings_balance_21, filings_balance_24, scrap_balance_18, scrap_balance_21, scrap_balance_24, labor_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`
const workshopTransferColumns = `transfer_id, transfer_number, from_workshop_id, to_workshop_id, karat, weight, status, notes, transfer_date, created_at, created_by, last_updated_at, last_updated_by`
const workshopSettlementColumns = `settlement_id, workshop_id, settlement_type, amount, weight, gross_weight, karat, reference, notes, settlement_date, created_at, created_by, last_updated_at, last_updated_by`

func scanWorkshop(row pgx.Row) (models.Workshop, error) {
	var m models.Workshop
	err := row.Scan(
		&m.WorkshopID,
		&m.Name,
		&m.WorkshopType,
		&m.GoldBalance18,
		&m.GoldBalance21,
		&m.GoldBalance24,
		&m.FilingsBalance18,
		&m.FilingsBalance21,
		&m.FilingsBalance24,
		&m.ScrapBalance18,
		&m.ScrapBalance21,
		&m.ScrapBalance24,
		&m.LaborBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanWorkshopTransfer(row pgx.Row) (models.WorkshopTransfer, error) {
	var m models.WorkshopTransfer
	err := row.Scan(
		&m.TransferID,
		&m.TransferNumber,
		&m.FromWorkshopID,
		&m.ToWorkshopID,
		&m.Karat,
		&m.Weight,
		&m.Status,
		&m.Notes,
		&m.TransferDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanWorkshopSettlement(row pgx.Row) (models.WorkshopSettlement, error) {
	var m models.WorkshopSettlement
	err := row.Scan(
		&m.SettlementID,
		&m.WorkshopID,
		&m.SettlementType,
		&m.Amount,
		&m.Weight,
		&m.GrossWeight,
		&m.Karat,
		&m.Reference,
		&m.Notes,
		&m.SettlementDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxWorkshopRepository) SaveWorkshop(ctx context.Context, workshop domain.Workshop) error {
	m := mapping.ToModelWorkshop(workshop)

	query := `
		INSERT INTO workshops (` + workshopColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WorkshopID,
		m.Name,
		m.WorkshopType,
		m.GoldBalance18,
		m.GoldBalance21,
		m.GoldBalance24,
		m.FilingsBalance18,
		m.FilingsBalance21,
		m.FilingsBalance24,
		m.ScrapBalance18,
		m.ScrapBalance21,
		m.ScrapBalance24,
		m.LaborBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: workshop %s already exists", apperrors.ErrDuplicate, m.WorkshopID)
		}
		return fmt.Errorf("failed to save workshop %s: %w", m.WorkshopID, err)
	}
	return nil
}

func (r *PgxWorkshopRepository) FindWorkshopByID(ctx context.Context, workshopID string) (*domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE workshop_id = $1;`

	m, err := scanWorkshop(r.Pool.QueryRow(ctx, query, workshopID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workshop %s: %w", workshopID, err)
	}
	d := mapping.ToDomainWorkshop(m)
	return &d, nil
}

func (r *PgxWorkshopRepository) ListWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	defer rows.Close()

	var workshops []domain.Workshop
	for rows.Next() {
		m, err := scanWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workshop row: %w", err)
		}
		workshops = append(workshops, mapping.ToDomainWorkshop(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workshop rows: %w", err)
	}
	return workshops, nil
}

// FindWorkshopForUpdate locks the workshop row within tx.
func (r *PgxWorkshopRepository) FindWorkshopForUpdate(ctx context.Context, tx pgx.Tx, workshopID string) (*domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE workshop_id = $1 FOR UPDATE;`

	m, err := scanWorkshop(tx.QueryRow(ctx, query, workshopID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock workshop %s: %w", workshopID, err)
	}
	d := mapping.ToDomainWorkshop(m)
	return &d, nil
}

func (r *PgxWorkshopRepository) UpdateWorkshopBalancesInTx(ctx context.Context, tx pgx.Tx, workshop domain.Workshop, updatedBy string, now time.Time) error {
	m := mapping.ToModelWorkshop(workshop)

	query := `
		UPDATE workshops
		SET gold_balance_18 = $2, gold_balance_21 = $3, gold_balance_24 = $4,
			filings_balance_18 = $5, filings_balance_21 = $6, filings_balance_24 = $7,
			scrap_balance_18 = $8, scrap_balance_21 = $9, scrap_balance_24 = $10,
			labor_balance = $11, last_updated_at = $12, last_updated_by = $13
		WHERE workshop_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.WorkshopID,
		m.GoldBalance18,
		m.GoldBalance21,
		m.GoldBalance24,
		m.FilingsBalance18,
		m.FilingsBalance21,
		m.FilingsBalance24,
		m.ScrapBalance18,
		m.ScrapBalance21,
		m.ScrapBalance24,
		m.LaborBalance,
		now,
		updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update balances for workshop %s: %w", m.WorkshopID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: workshop %s not found during balance update", apperrors.ErrNotFound, m.WorkshopID)
	}
	return nil
}

func (r *PgxWorkshopRepository) SaveWorkshopTransfer(ctx context.Context, transfer domain.WorkshopTransfer) error {
	return r.saveWorkshopTransfer(ctx, r.Pool, transfer)
}

func (r *PgxWorkshopRepository) SaveWorkshopTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.WorkshopTransfer) error {
	return r.saveWorkshopTransfer(ctx, tx, transfer)
}

// execer abstracts over a pool and a transaction so the insert can run in
// either.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *PgxWorkshopRepository) saveWorkshopTransfer(ctx context.Context, q execer, transfer domain.WorkshopTransfer) error {
	m := mapping.ToModelWorkshopTransfer(transfer)

	query := `
		INSERT INTO workshop_transfers (` + workshopTransferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := q.Exec(ctx, query,
		m.TransferID,
		m.TransferNumber,
		m.FromWorkshopID,
		m.ToWorkshopID,
		m.Karat,
		m.Weight,
		m.Status,
		m.Notes,
		m.TransferDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: workshop transfer number %s already exists", apperrors.ErrDuplicate, m.TransferNumber)
		}
		return fmt.Errorf("failed to save workshop transfer %s: %w", m.TransferID, err)
	}
	return nil
}

func (r *PgxWorkshopRepository) FindWorkshopTransferByID(ctx context.Context, transferID string) (*domain.WorkshopTransfer, error) {
	query := `SELECT ` + workshopTransferColumns + ` FROM workshop_transfers WHERE transfer_id = $1;`

	m, err := scanWorkshopTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workshop transfer %s: %w", transferID, err)
	}
	d := mapping.ToDomainWorkshopTransfer(m)
	return &d, nil
}

// ListWorkshopTransfers returns transfers touching the workshop on either
// side, newest first.
func (r *PgxWorkshopRepository) ListWorkshopTransfers(ctx context.Context, workshopID string) ([]domain.WorkshopTransfer, error) {
	query := `SELECT ` + workshopTransferColumns + ` FROM workshop_transfers WHERE from_workshop_id = $1 OR to_workshop_id = $1 ORDER BY transfer_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers for workshop %s: %w", workshopID, err)
	}
	defer rows.Close()

	var transfers []domain.WorkshopTransfer
	for rows.Next() {
		m, err := scanWorkshopTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workshop transfer row: %w", err)
		}
		transfers = append(transfers, mapping.ToDomainWorkshopTransfer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workshop transfer rows: %w", err)
	}
	return transfers, nil
}

func (r *PgxWorkshopRepository) NextWorkshopTransferNumber(ctx context.Context) (string, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('workshop_transfer_number_seq');`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate workshop transfer number: %w", err)
	}
	return fmt.Sprintf("WTR-%05d", seq), nil
}

func (r *PgxWorkshopRepository) MarkWorkshopTransferCompletedInTx(ctx context.Context, tx pgx.Tx, transferID string, updatedBy string, now time.Time) (bool, error) {
	query := `
		UPDATE workshop_transfers
		SET status = 'completed', last_updated_at = $2, last_updated_by = $3
		WHERE transfer_id = $1 AND status = 'pending';
	`
	tag, err := tx.Exec(ctx, query, transferID, now, updatedBy)
	if err != nil {
		return false, fmt.Errorf("failed to mark workshop transfer %s completed: %w", transferID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxWorkshopRepository) SaveSettlementInTx(ctx context.Context, tx pgx.Tx, settlement domain.WorkshopSettlement) error {
	m := mapping.ToModelWorkshopSettlement(settlement)

	query := `
		INSERT INTO workshop_settlements (` + workshopSettlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.SettlementID,
		m.WorkshopID,
		m.SettlementType,
		m.Amount,
		m.Weight,
		m.GrossWeight,
		m.Karat,
		m.Reference,
		m.Notes,
		m.SettlementDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save workshop settlement %s: %w", m.SettlementID, err)
	}
	return nil
}

func (r *PgxWorkshopRepository) ListSettlementsByWorkshop(ctx context.Context, workshopID string) ([]domain.WorkshopSettlement, error) {
	query := `SELECT ` + workshopSettlementColumns + ` FROM workshop_settlements WHERE workshop_id = $1 ORDER BY settlement_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements for workshop %s: %w", workshopID, err)
	}
	defer rows.Close()

	var settlements []domain.WorkshopSettlement
	for rows.Next() {
		m, err := scanWorkshopSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workshop settlement row: %w", err)
		}
		settlements = append(settlements, mapping.ToDomainWorkshopSettlement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workshop settlement rows: %w", err)
	}
	return settlements, nil
}
