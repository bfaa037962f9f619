package services

import (
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The posting engine comes first since the treasury, voucher and
	// manufacturing services post through it.
	container.Posting = NewPostingService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.TreasuryRepo,
		repos.SettingsRepo,
		repos.NotificationRepo,
	)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Treasury = NewTreasuryService(repos.TreasuryRepo, container.Posting)
	container.Voucher = NewVoucherService(repos.VoucherRepo, repos.TreasuryRepo, container.Posting)
	container.Workshop = NewWorkshopService(repos.WorkshopRepo)
	container.Manufacturing = NewManufacturingService(
		repos.ManufacturingRepo,
		repos.WorkshopRepo,
		repos.TreasuryRepo,
		repos.SettingsRepo,
		repos.NotificationRepo,
		container.Posting,
	)
	container.Party = NewPartyService(repos.PartyRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo, repos.AccountRepo, repos.TreasuryRepo)
	container.Audit = NewAuditService(repos.JournalRepo, repos.AccountRepo, repos.TreasuryRepo, repos.SettingsRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo)

	return container
}
