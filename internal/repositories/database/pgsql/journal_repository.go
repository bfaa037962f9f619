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
)

type PgxJournalRepository struct {
	pool        *pgxpool.Pool
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entries. It
// needs the account repository to lock and adjust account balances inside the
// same transaction that inserts the entry.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool, accountRepo: accountRepo}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalEntryColumns = `entry_id, reference, entry_date, description, source_type, source_id, created_at, created_by, last_updated_at, last_updated_by`
const ledgerLineColumns = `line_id, entry_id, account_id, cost_center_id, debit, credit, gold_debit, gold_credit, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.Reference,
		&m.EntryDate,
		&m.Description,
		&m.SourceType,
		&m.SourceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLedgerLine(row pgx.Row) (models.LedgerLine, error) {
	var m models.LedgerLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.CostCenterID,
		&m.Debit,
		&m.Credit,
		&m.GoldDebit,
		&m.GoldCredit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists a journal entry, its lines and the account balance
// changes in one transaction. A reference collision surfaces as
// apperrors.ErrDuplicate so the caller can treat the entry as already posted.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine, balanceChanges map[string]domain.BalanceDelta) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for entry save: %w", err)
	}
	defer tx.Rollback(ctx)

	entryModel := mapping.ToModelJournalEntry(entry)

	insertEntry := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertEntry,
		entryModel.EntryID,
		entryModel.Reference,
		entryModel.EntryDate,
		entryModel.Description,
		entryModel.SourceType,
		entryModel.SourceID,
		entryModel.CreatedAt,
		entryModel.CreatedBy,
		entryModel.LastUpdatedAt,
		entryModel.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry with reference %s already exists", apperrors.ErrDuplicate, entryModel.Reference)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", entryModel.EntryID, err)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for entry %s: %w", entryModel.EntryID, err)
	}
	if len(locked) != len(accountIDs) {
		return fmt.Errorf("%w: one or more accounts missing for entry %s", apperrors.ErrNotFound, entryModel.EntryID)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.CreatedBy, entry.CreatedAt); err != nil {
		return fmt.Errorf("failed to apply balance changes for entry %s: %w", entryModel.EntryID, err)
	}

	insertLine := `
		INSERT INTO ledger_lines (` + ledgerLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelLedgerLine(line)
		batch.Queue(insertLine,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.CostCenterID,
			m.Debit,
			m.Credit,
			m.GoldDebit,
			m.GoldCredit,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert ledger line for entry %s: %w", entryModel.EntryID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close line batch for entry %s: %w", entryModel.EntryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", entryModel.EntryID, err)
	}
	return nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanJournalEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE reference = $1;`

	m, err := scanJournalEntry(r.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by reference %s: %w", reference, err)
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error) {
	query := `SELECT ` + ledgerLineColumns + ` FROM ledger_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`

	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		m, err := scanLedgerLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainLedgerLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger line rows: %w", err)
	}
	return lines, nil
}

// ListEntries returns entries newest first using token based pagination on
// (entry_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newToken = &token
	}
	return entries, newToken, nil
}

// ListLinesByAccountID returns an account's ledger lines newest first using
// token based pagination on (created_at, line_id).
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	query := `SELECT ` + ledgerLineColumns + ` FROM ledger_lines WHERE account_id = $1`
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, line_id) < ($2::timestamptz, $3)`
		args = append(args, fields[0], fields[1])
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, line_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		m, err := scanLedgerLine(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainLedgerLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating ledger line rows: %w", err)
	}

	var newToken *string
	if len(lines) > limit {
		lines = lines[:limit]
		last := lines[len(lines)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.LineID)
		newToken = &token
	}
	return lines, newToken, nil
}

// ListEntryReferences returns every entry reference starting with prefix.
func (r *PgxJournalRepository) ListEntryReferences(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT reference FROM journal_entries WHERE reference LIKE $1 || '%';`

	rows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry references: %w", err)
	}
	defer rows.Close()

	var references []string
	for rows.Next() {
		var reference string
		if err := rows.Scan(&reference); err != nil {
			return nil, fmt.Errorf("failed to scan reference row: %w", err)
		}
		references = append(references, reference)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reference rows: %w", err)
	}
	return references, nil
}

func (r *PgxJournalRepository) CountLines(ctx context.Context) (int64, int64, error) {
	query := `SELECT COUNT(*), COUNT(cost_center_id) FROM ledger_lines;`

	var total, withCostCenter int64
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &withCostCenter); err != nil {
		return 0, 0, fmt.Errorf("failed to count ledger lines: %w", err)
	}
	return total, withCostCenter, nil
}
