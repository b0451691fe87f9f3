package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind classifies entries of the admin operation log.
type OperationKind string

const (
	OpTransfer OperationKind = "transfer"
	OpDeduct   OperationKind = "deduct"
	OpAdd      OperationKind = "add"
	OpModify   OperationKind = "modify"
	OpBan      OperationKind = "ban"
	OpUnban    OperationKind = "unban"
	OpLink     OperationKind = "link"
)

// Operation is one append-only audit record of a balance or status mutation.
type Operation struct {
	OperationID string          `json:"operationID"`
	Kind        OperationKind   `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	FromCode    string          `json:"fromCode"` // Empty for single-account operations
	ToCode      string          `json:"toCode"`
	Note        string          `json:"note"`
	ActorID     string          `json:"actorID"`
	CreatedAt   time.Time       `json:"createdAt"`
}
