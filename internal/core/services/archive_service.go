package services

import (
	"context"
	"fmt"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
)

// archiveService exposes the read-only historical snapshot for browsing.
type archiveService struct {
	BaseService
	archiveRepo portsrepo.ArchiveRepository
}

// NewArchiveService creates the archive browsing service.
func NewArchiveService(archiveRepo portsrepo.ArchiveRepository) portssvc.ArchiveSvc {
	return &archiveService{archiveRepo: archiveRepo}
}

var _ portssvc.ArchiveSvc = (*archiveService)(nil)

// FindInArchive looks a code up in its archive page.
func (s *archiveService) FindInArchive(ctx context.Context, code string) (*domain.Account, error) {
	canonical, err := domain.NormalizeCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return s.archiveRepo.FindAccount(ctx, canonical)
}

// ListPage slices a page's account list for display. pageIndex is 1-based.
// The slice boundaries are computed from the total count so the same index
// always yields the same accounts.
func (s *archiveService) ListPage(ctx context.Context, series string, number, pageIndex int) (*portssvc.ArchivePageView, error) {
	if pageIndex < 1 {
		return nil, fmt.Errorf("%w: page index %d out of range", apperrors.ErrValidation, pageIndex)
	}

	page, err := s.archiveRepo.FindPage(ctx, series, number)
	if err != nil {
		return nil, err
	}

	total, totalGold, err := s.archiveRepo.PageTotals(ctx, series, number)
	if err != nil {
		return nil, err
	}

	totalPages := (total + portssvc.ArchiveListPageSize - 1) / portssvc.ArchiveListPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if pageIndex > totalPages {
		return nil, fmt.Errorf("%w: page index %d out of range, only %d pages", apperrors.ErrValidation, pageIndex, totalPages)
	}

	offset := (pageIndex - 1) * portssvc.ArchiveListPageSize
	accounts, _, err := s.archiveRepo.ListPageAccounts(ctx, series, number, portssvc.ArchiveListPageSize, offset)
	if err != nil {
		return nil, err
	}

	return &portssvc.ArchivePageView{
		Page:          *page,
		Accounts:      accounts,
		PageIndex:     pageIndex,
		TotalPages:    totalPages,
		TotalAccounts: total,
		TotalGold:     totalGold,
	}, nil
}

// AvailablePages lists the page headers of a series.
func (s *archiveService) AvailablePages(ctx context.Context, series string) ([]domain.ArchivePage, error) {
	return s.archiveRepo.AvailablePages(ctx, series)
}
