package repositories

// RepositoryProvider bundles all repository facades for service wiring.
type RepositoryProvider struct {
	AccountRepo       AccountRepositoryFacade
	JournalRepo       JournalRepositoryFacade
	TreasuryRepo      TreasuryRepositoryWithTx
	VoucherRepo       VoucherRepositoryFacade
	WorkshopRepo      WorkshopRepositoryWithTx
	ManufacturingRepo ManufacturingRepositoryWithTx
	PartyRepo         PartyRepositoryWithTx
	SettingsRepo      SettingsRepositoryFacade
	NotificationRepo  NotificationRepositoryFacade
}
