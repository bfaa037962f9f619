package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager exposes transaction lifecycle control so services can span one
// database transaction across multiple repository calls.
type TxManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
