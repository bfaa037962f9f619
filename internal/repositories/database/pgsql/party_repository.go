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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for customer and supplier
// sub-ledgers.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryWithTx {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepositoryWithTx = (*PgxPartyRepository)(nil)

const partyColumns = `party_id, kind, name, phone, cash_balance, gold_balance_18, gold_balance_21, gold_balance_24, is_active, created_at, created_by, last_updated_at, last_updated_by`
const partyTxnColumns = `transaction_id, party_id, transaction_type, cash_debit, cash_credit, gold_debit, gold_credit, karat, invoice_ref, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

func scanParty(row pgx.Row) (models.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID,
		&m.Kind,
		&m.Name,
		&m.Phone,
		&m.CashBalance,
		&m.GoldBalance18,
		&m.GoldBalance21,
		&m.GoldBalance24,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPartyTransaction(row pgx.Row) (models.PartyTransaction, error) {
	var m models.PartyTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.PartyID,
		&m.TransactionType,
		&m.CashDebit,
		&m.CashCredit,
		&m.GoldDebit,
		&m.GoldCredit,
		&m.Karat,
		&m.InvoiceRef,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Kind,
		m.Name,
		m.Phone,
		m.CashBalance,
		m.GoldBalance18,
		m.GoldBalance21,
		m.GoldBalance24,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: party %s already exists", apperrors.ErrDuplicate, m.PartyID)
		}
		return fmt.Errorf("failed to save party %s: %w", m.PartyID, err)
	}
	return nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1;`

	m, err := scanParty(r.Pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	d := mapping.ToDomainParty(m)
	return &d, nil
}

// ListParties returns parties of the given kind, or all parties when kind is
// empty.
func (r *PgxPartyRepository) ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, string(kind))
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var parties []domain.Party
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, mapping.ToDomainParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}
	return parties, nil
}

// FindPartyForUpdate locks the party row within tx.
func (r *PgxPartyRepository) FindPartyForUpdate(ctx context.Context, tx pgx.Tx, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1 FOR UPDATE;`

	m, err := scanParty(tx.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock party %s: %w", partyID, err)
	}
	d := mapping.ToDomainParty(m)
	return &d, nil
}

func (r *PgxPartyRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.PartyTransaction) error {
	m := mapping.ToModelPartyTransaction(txn)

	query := `
		INSERT INTO party_transactions (` + partyTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.PartyID,
		m.TransactionType,
		m.CashDebit,
		m.CashCredit,
		m.GoldDebit,
		m.GoldCredit,
		m.Karat,
		m.InvoiceRef,
		m.TransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save party transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// ListTransactionsByPartyInTx returns the party's full history oldest first
// for balance replay, inside the caller's transaction.
func (r *PgxPartyRepository) ListTransactionsByPartyInTx(ctx context.Context, tx pgx.Tx, partyID string) ([]domain.PartyTransaction, error) {
	query := `SELECT ` + partyTxnColumns + ` FROM party_transactions WHERE party_id = $1 ORDER BY transaction_date, created_at;`

	rows, err := tx.Query(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for party %s: %w", partyID, err)
	}
	defer rows.Close()

	var txns []models.PartyTransaction
	for rows.Next() {
		m, err := scanPartyTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party transaction rows: %w", err)
	}
	return mapping.ToDomainPartyTransactionSlice(txns), nil
}

func (r *PgxPartyRepository) UpdatePartyBalancesInTx(ctx context.Context, tx pgx.Tx, party domain.Party, updatedBy string, now time.Time) error {
	m := mapping.ToModelParty(party)

	query := `
		UPDATE parties
		SET cash_balance = $2, gold_balance_18 = $3, gold_balance_21 = $4, gold_balance_24 = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE party_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.PartyID,
		m.CashBalance,
		m.GoldBalance18,
		m.GoldBalance21,
		m.GoldBalance24,
		now,
		updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update balances for party %s: %w", m.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: party %s not found during balance update", apperrors.ErrNotFound, m.PartyID)
	}
	return nil
}

// ListTransactionsByParty returns the party's transactions newest first.
func (r *PgxPartyRepository) ListTransactionsByParty(ctx context.Context, partyID string) ([]domain.PartyTransaction, error) {
	query := `SELECT ` + partyTxnColumns + ` FROM party_transactions WHERE party_id = $1 ORDER BY transaction_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for party %s: %w", partyID, err)
	}
	defer rows.Close()

	var txns []models.PartyTransaction
	for rows.Next() {
		m, err := scanPartyTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party transaction rows: %w", err)
	}
	return mapping.ToDomainPartyTransactionSlice(txns), nil
}
