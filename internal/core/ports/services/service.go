package services

// ServiceContainer holds all service interfaces needed by the web layer.
type ServiceContainer struct {
	Customer  CustomerSvcFacade
	Product   ProductSvcFacade
	Ledger    LedgerSvcFacade
	Donation  DonationSvcFacade
	User      UserSvcFacade
	Auth      AuthSvcFacade
	Reporting ReportingSvcFacade
	Settings  SettingsSvcFacade
	Backup    BackupSvcFacade
}
