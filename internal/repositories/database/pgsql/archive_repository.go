package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankgold/bankgold/internal/apperrors"
	"github.com/bankgold/bankgold/internal/core/domain"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	"github.com/bankgold/bankgold/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxArchiveRepository struct {
	BaseRepository
}

// newPgxArchiveRepository creates a new repository over the read-only archive tables.
func newPgxArchiveRepository(pool *pgxpool.Pool) portsrepo.ArchiveRepository {
	return &PgxArchiveRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ArchiveRepository = (*PgxArchiveRepository)(nil)

// toDomainArchiveAccount tags a snapshot row as an archive-sourced account.
// Archive snapshots carry no owner or credential; those are supplied on
// activation.
func toDomainArchiveAccount(m models.ArchiveAccount) domain.Account {
	return domain.Account{
		Code:       m.Code,
		Username:   m.Username,
		Balance:    m.Balance,
		Status:     domain.StatusActive,
		Source:     domain.SourceArchive,
		ArchiveRef: fmt.Sprintf("%s%d", m.Series, m.Number),
	}
}

// FindPage retrieves one archive page header.
func (r *PgxArchiveRepository) FindPage(ctx context.Context, series string, number int) (*domain.ArchivePage, error) {
	query := `
		SELECT series, number, name, start_code, end_code
		FROM archive_pages
		WHERE series = $1 AND number = $2;
	`
	var m models.ArchivePage
	err := r.Pool.QueryRow(ctx, query, series, number).Scan(&m.Series, &m.Number, &m.Name, &m.StartCode, &m.EndCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find archive page %s%d: %w", series, number, err)
	}
	return &domain.ArchivePage{
		Series:    m.Series,
		Number:    m.Number,
		Name:      m.Name,
		StartCode: m.StartCode,
		EndCode:   m.EndCode,
	}, nil
}

// FindAccount retrieves an archived account snapshot by code.
func (r *PgxArchiveRepository) FindAccount(ctx context.Context, code string) (*domain.Account, error) {
	query := `
		SELECT code, series, number, position, username, balance
		FROM archive_accounts
		WHERE code = $1;
	`
	var m models.ArchiveAccount
	err := r.Pool.QueryRow(ctx, query, code).Scan(&m.Code, &m.Series, &m.Number, &m.Position, &m.Username, &m.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find archived account %s: %w", code, err)
	}
	acc := toDomainArchiveAccount(m)
	return &acc, nil
}

// ListPageAccounts returns an ordered slice of a page's account list plus the
// total count on the page. Ordering by position keeps slices deterministic.
func (r *PgxArchiveRepository) ListPageAccounts(ctx context.Context, series string, number int, limit, offset int) ([]domain.Account, int, error) {
	countQuery := `SELECT COUNT(*) FROM archive_accounts WHERE series = $1 AND number = $2;`
	var total int
	if err := r.Pool.QueryRow(ctx, countQuery, series, number).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count archive page %s%d: %w", series, number, err)
	}

	query := `
		SELECT code, series, number, position, username, balance
		FROM archive_accounts
		WHERE series = $1 AND number = $2
		ORDER BY position
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, series, number, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list archive page %s%d: %w", series, number, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var m models.ArchiveAccount
		if err := rows.Scan(&m.Code, &m.Series, &m.Number, &m.Position, &m.Username, &m.Balance); err != nil {
			return nil, 0, fmt.Errorf("failed to scan archive account row: %w", err)
		}
		accounts = append(accounts, toDomainArchiveAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating archive account rows: %w", err)
	}
	return accounts, total, nil
}

// PageTotals sums balances over a whole archive page.
func (r *PgxArchiveRepository) PageTotals(ctx context.Context, series string, number int) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(balance), 0)
		FROM archive_accounts
		WHERE series = $1 AND number = $2;
	`
	var count int
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, series, number).Scan(&count, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to total archive page %s%d: %w", series, number, err)
	}
	return count, total, nil
}

// AvailablePages lists the page headers of a series in order.
func (r *PgxArchiveRepository) AvailablePages(ctx context.Context, series string) ([]domain.ArchivePage, error) {
	query := `
		SELECT series, number, name, start_code, end_code
		FROM archive_pages
		WHERE series = $1
		ORDER BY number;
	`
	rows, err := r.Pool.Query(ctx, query, series)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive pages for series %s: %w", series, err)
	}
	defer rows.Close()

	pages := []domain.ArchivePage{}
	for rows.Next() {
		var m models.ArchivePage
		if err := rows.Scan(&m.Series, &m.Number, &m.Name, &m.StartCode, &m.EndCode); err != nil {
			return nil, fmt.Errorf("failed to scan archive page row: %w", err)
		}
		pages = append(pages, domain.ArchivePage{
			Series:    m.Series,
			Number:    m.Number,
			Name:      m.Name,
			StartCode: m.StartCode,
			EndCode:   m.EndCode,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archive page rows: %w", err)
	}
	return pages, nil
}
