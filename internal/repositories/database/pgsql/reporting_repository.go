package pgsql

import (
	"context"
	"fmt"

	"github.com/bankgold/bankgold/internal/core/domain"
	portsrepo "github.com/bankgold/bankgold/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository aggregates over live accounts plus the unshadowed
// remainder of the archives. An archive row whose code exists live is
// excluded; the live copy is authoritative once activated.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

const combinedAccountsCTE = `
	WITH combined AS (
		SELECT code, username, balance, status, source FROM accounts
		UNION ALL
		SELECT a.code, a.username, a.balance, 'active' AS status, 'archive' AS source
		FROM archive_accounts a
		WHERE NOT EXISTS (SELECT 1 FROM accounts l WHERE l.code = a.code)
	)
`

// SystemTotals computes whole-system balance statistics.
func (r *PgxReportingRepository) SystemTotals(ctx context.Context) (*domain.SystemTotals, error) {
	query := combinedAccountsCTE + `
		SELECT COALESCE(SUM(balance), 0),
		       COUNT(*),
		       COUNT(*) FILTER (WHERE balance > 0 AND status <> 'banned'),
		       COUNT(*) FILTER (WHERE source = 'archive'),
		       COUNT(*) FILTER (WHERE source <> 'archive')
		FROM combined;
	`
	var t domain.SystemTotals
	err := r.Pool.QueryRow(ctx, query).Scan(&t.TotalGold, &t.AccountCount, &t.ActiveCount, &t.ArchiveCount, &t.LiveCount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute system totals: %w", err)
	}
	return &t, nil
}

// TopAccounts returns the highest non-banned, non-empty accounts by balance.
// Ties are broken by code so the ordering is stable.
func (r *PgxReportingRepository) TopAccounts(ctx context.Context, limit int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 10
	}
	query := combinedAccountsCTE + `
		SELECT code, username, balance, status, source
		FROM combined
		WHERE balance > 0 AND status <> 'banned'
		ORDER BY balance DESC, code
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var acc domain.Account
		var status, source string
		if err := rows.Scan(&acc.Code, &acc.Username, &acc.Balance, &status, &source); err != nil {
			return nil, fmt.Errorf("failed to scan top account row: %w", err)
		}
		acc.Status = domain.AccountStatus(status)
		acc.Source = domain.AccountSource(source)
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top account rows: %w", err)
	}
	return accounts, nil
}
