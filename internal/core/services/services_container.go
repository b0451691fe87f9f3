package services

import (
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/bankgold/bankgold/internal/platform/config"
	"github.com/bankgold/bankgold/internal/repositories/database/pgsql"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Ledger    portssvc.LedgerSvc
	Archive   portssvc.ArchiveSvc
	Allocator portssvc.AllocatorSvc
	Authz     portssvc.AuthzSvc
	Sessions  portssvc.SessionSvc
	Settings  portssvc.SettingsSvc
	Reporting portssvc.ReportingSvc
}

// NewContainer creates a new service container with properly initialized dependencies.
func NewContainer(cfg *config.Config, repos *pgsql.RepositoryContainer) *Container {
	container := &Container{}

	// Stateless in-memory services first, the ledger depends on them.
	container.Sessions = NewSessionService()
	container.Authz = NewAuthzService(cfg.SuperAdminID)
	container.Settings = NewSettingsService(cfg)

	container.Allocator = NewAllocatorService(repos.Allocator)
	container.Archive = NewArchiveService(repos.Archive)
	container.Reporting = NewReportingService(repos.Reporting)

	container.Ledger = NewLedgerService(
		repos.Account,
		repos.Archive,
		repos.Operation,
		container.Allocator,
		container.Sessions,
		container.Authz,
		cfg,
	)

	return container
}
