package services

import (
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(repos.CustomerRepo, cfg.DefaultCreditLimit)
	container.Product = NewProductService(repos.ProductRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.CustomerRepo)
	container.Donation = NewDonationService(repos.DonationRepo, repos.CustomerRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AuditRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo)
	container.Backup = NewBackupService(repos.BackupRepo)

	return container
}
