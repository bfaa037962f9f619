package repositories

import (
	"context"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
)

// JournalRepositoryFacade covers the append-only ledger log. SaveEntry runs
// its own database transaction: it inserts the entry and its lines, locks the
// affected accounts and applies the balance changes atomically. A reference
// collision (the posting idempotency key) surfaces as apperrors.ErrDuplicate.
type JournalRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine, balanceChanges map[string]domain.BalanceDelta) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error)
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)

	// Read-only enumeration for the audit surface.
	ListEntryReferences(ctx context.Context, prefix string) ([]string, error)
	CountLines(ctx context.Context) (total int64, withCostCenter int64, err error)
}
