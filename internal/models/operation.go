package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is one append-only audit log row.
type Operation struct {
	OperationID string          `db:"operation_id"`
	Kind        string          `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	FromCode    string          `db:"from_code"` // Nullable
	ToCode      string          `db:"to_code"`
	Note        string          `db:"note"`
	ActorID     string          `db:"actor_id"`
	CreatedAt   time.Time       `db:"created_at"`
}
