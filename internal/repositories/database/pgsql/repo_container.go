package pgsql

import (
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:  newPgxCustomerRepository(dbPool),
		ProductRepo:   newPgxProductRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		DonationRepo:  newPgxDonationRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		SettingsRepo:  newPgxSettingsRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		BackupRepo:    newPgxBackupRepository(dbPool),
	}
}
