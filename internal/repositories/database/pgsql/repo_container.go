package pgsql

import (
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		PeriodRepo:    newPgxPeriodRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		DocumentRepo:  newPgxDocumentRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
	}
}
