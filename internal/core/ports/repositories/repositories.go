package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	CustomerRepo  CustomerRepository
	ProductRepo   ProductRepository
	LedgerRepo    LedgerRepository
	DonationRepo  DonationRepository
	UserRepo      UserRepository
	AuditRepo     AuditRepository
	SettingsRepo  SettingsRepository
	ReportingRepo ReportingRepository
	BackupRepo    BackupRepository
}
