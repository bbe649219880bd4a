package services

import (
	portsrepo "github.com/finbooks/ledger/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Registry and periods first; the ledger writer depends on both.
	container.Registry = NewRegistryService(repos.AccountRepo)
	container.Periods = NewPeriodService(repos.PeriodRepo)

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.DocumentRepo, container.Registry, container.Periods)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Registry)
	container.Documents = NewDocumentService(repos.DocumentRepo)
	container.Audit = NewAuditService(repos.AuditRepo)

	return container
}
