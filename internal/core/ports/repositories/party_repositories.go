package repositories

import (
	"context"
	"time"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PartyRepositoryWithTx covers customer/supplier sub-ledgers. Recording a
// transaction and replaying the party's balances share one transaction under
// a row lock on the party.
type PartyRepositoryWithTx interface {
	TxManager

	SaveParty(ctx context.Context, party domain.Party) error
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error)

	FindPartyForUpdate(ctx context.Context, tx pgx.Tx, partyID string) (*domain.Party, error)
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.PartyTransaction) error
	ListTransactionsByPartyInTx(ctx context.Context, tx pgx.Tx, partyID string) ([]domain.PartyTransaction, error)
	UpdatePartyBalancesInTx(ctx context.Context, tx pgx.Tx, party domain.Party, updatedBy string, now time.Time) error

	ListTransactionsByParty(ctx context.Context, partyID string) ([]domain.PartyTransaction, error)
}
