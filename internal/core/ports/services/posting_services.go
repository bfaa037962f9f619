package services

import (
	"context"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
)

// PostingSvcFacade is the posting engine: it maps business events to balanced
// journal entries. A nil entry with a nil error means the posting was skipped
// for missing configuration; the originating business event must still
// complete.
type PostingSvcFacade interface {
	// PostTreasuryTransaction posts the GL entry for one treasury
	// transaction. For transfer legs the transfer record is required to
	// resolve the peer treasury's account; transfer_in legs never post.
	PostTreasuryTransaction(ctx context.Context, txn domain.TreasuryTransaction, transfer *domain.TreasuryTransfer) (*domain.JournalEntry, error)

	// PostInvoice posts revenue recognition for a confirmed sales invoice,
	// keyed by the invoice number.
	PostInvoice(ctx context.Context, invoice domain.SalesInvoice, creatorID string) (*domain.JournalEntry, error)

	// PostCommission accrues the sales-rep commission on a confirmed
	// invoice, keyed COMM-<invoice_number>.
	PostCommission(ctx context.Context, invoice domain.SalesInvoice, creatorID string) (*domain.JournalEntry, error)
}
