package pgsql

import (
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer bundles all pgsql repositories behind their ports.
type RepositoryContainer struct {
	Account   portsrepo.AccountRepositoryFacade
	Archive   portsrepo.ArchiveRepository
	Allocator portsrepo.AllocatorRepository
	Operation portsrepo.OperationRepository
	Reporting portsrepo.ReportingRepository
}

// NewRepositoryContainer wires every repository onto one shared pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		Account:   newPgxAccountRepository(pool),
		Archive:   newPgxArchiveRepository(pool),
		Allocator: newPgxAllocatorRepository(pool),
		Operation: newPgxOperationRepository(pool),
		Reporting: newPgxReportingRepository(pool),
	}
}
