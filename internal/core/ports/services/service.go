package services

// ServiceContainer holds all service facades for handler wiring.
type ServiceContainer struct {
	Account       AccountSvcFacade
	Journal       JournalSvcFacade
	Posting       PostingSvcFacade
	Treasury      TreasurySvcFacade
	Voucher       VoucherSvcFacade
	Workshop      WorkshopSvcFacade
	Manufacturing ManufacturingSvcFacade
	Party         PartySvcFacade
	Settings      SettingsSvcFacade
	Audit         AuditSvcFacade
	Notification  NotificationSvcFacade
}
