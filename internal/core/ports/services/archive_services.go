package services

import (
	"context"

	"github.com/bankgold/bankgold/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ArchiveListPageSize is the chat-friendly slice size for archive browsing.
const ArchiveListPageSize = 50

// ArchivePageView is one deterministic slice of an archive page listing.
type ArchivePageView struct {
	Page          domain.ArchivePage
	Accounts      []domain.Account
	PageIndex     int // 1-based
	TotalPages    int
	TotalAccounts int
	TotalGold     decimal.Decimal
}

// ArchiveSvc exposes the read-only historical snapshot.
type ArchiveSvc interface {
	// FindInArchive looks a code up in its archive page.
	FindInArchive(ctx context.Context, code string) (*domain.Account, error)

	// ListPage slices a page's account list for display. pageIndex is
	// 1-based; an out-of-range index is a validation error, not a crash.
	ListPage(ctx context.Context, series string, number, pageIndex int) (*ArchivePageView, error)

	// AvailablePages lists the page headers of a series.
	AvailablePages(ctx context.Context, series string) ([]domain.ArchivePage, error)
}
