package models

import (
	"github.com/shopspring/decimal"
)

// Account is the DB-layer shape of a live account row.
type Account struct {
	Code         string          `db:"code"`
	OwnerID      string          `db:"owner_id"` // Nullable
	Username     string          `db:"username"`
	Balance      decimal.Decimal `db:"balance"`
	Status       string          `db:"status"`
	Source       string          `db:"source"`
	ArchiveRef   string          `db:"archive_ref"` // Nullable
	PasswordHash string          `db:"password_hash"`
	AuditFields
}

// ArchiveAccount is the DB-layer shape of an immutable archive snapshot row.
type ArchiveAccount struct {
	Code     string          `db:"code"`
	Series   string          `db:"series"`
	Number   int             `db:"number"`
	Position int             `db:"position"`
	Username string          `db:"username"`
	Balance  decimal.Decimal `db:"balance"`
}
