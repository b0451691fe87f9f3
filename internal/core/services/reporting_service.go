package services

import (
	"context"

	"github.com/bankgold/bankgold/internal/core/domain"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
)

// reportingService computes the super-admin aggregate views.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the aggregate reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) SystemTotals(ctx context.Context) (*domain.SystemTotals, error) {
	return s.reportingRepo.SystemTotals(ctx)
}

func (s *reportingService) TopAccounts(ctx context.Context, limit int) ([]domain.Account, error) {
	return s.reportingRepo.TopAccounts(ctx, limit)
}
