package repositories

import (
	"context"

	"github.com/bankgold/bankgold/internal/core/domain"
)

// OperationRepository appends to the audit log of balance/status mutations.
type OperationRepository interface {
	SaveOperation(ctx context.Context, op domain.Operation) error
}
