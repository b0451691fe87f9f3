package repositories

import (
	"context"

	"github.com/bankgold/bankgold/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ArchiveRepository exposes the read-only historical snapshot.
// Archive rows are never mutated at runtime; activation copies an account
// into the live store instead.
type ArchiveRepository interface {
	// FindPage retrieves one archive page header.
	FindPage(ctx context.Context, series string, number int) (*domain.ArchivePage, error)

	// FindAccount retrieves an archived account snapshot by code, tagged with
	// Source=archive and its page reference.
	FindAccount(ctx context.Context, code string) (*domain.Account, error)

	// ListPageAccounts returns a deterministic slice of a page's account list
	// (ordered by position) plus the total number of accounts on the page.
	ListPageAccounts(ctx context.Context, series string, number int, limit, offset int) ([]domain.Account, int, error)

	// PageTotals sums balances over a whole archive page.
	PageTotals(ctx context.Context, series string, number int) (count int, total decimal.Decimal, err error)

	// AvailablePages lists the page headers of a series in order.
	AvailablePages(ctx context.Context, series string) ([]domain.ArchivePage, error)
}
