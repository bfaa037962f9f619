package pgsql

import (
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository against the shared
// connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		AccountRepo:       accountRepo,
		JournalRepo:       newPgxJournalRepository(dbPool, accountRepo),
		TreasuryRepo:      newPgxTreasuryRepository(dbPool),
		VoucherRepo:       newPgxVoucherRepository(dbPool),
		WorkshopRepo:      newPgxWorkshopRepository(dbPool),
		ManufacturingRepo: newPgxManufacturingRepository(dbPool),
		PartyRepo:         newPgxPartyRepository(dbPool),
		SettingsRepo:      newPgxSettingsRepository(dbPool),
		NotificationRepo:  newPgxNotificationRepository(dbPool),
	}
}
