package domain

import "github.com/shopspring/decimal"

// SystemTotals aggregates balances across the live store and the
// not-yet-activated remainder of the archives.
type SystemTotals struct {
	TotalGold    decimal.Decimal `json:"totalGold"`
	AccountCount int             `json:"accountCount"`
	ActiveCount  int             `json:"activeCount"` // balance > 0 and not banned
	ArchiveCount int             `json:"archiveCount"`
	LiveCount    int             `json:"liveCount"`
}
