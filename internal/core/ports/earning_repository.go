package ports

import (
	"context"

	"gasfill/internal/core/domain/model/earning"
)

// EarningRepository appends to the rider commission ledger.
type EarningRepository interface {
	Add(ctx context.Context, aggregate *earning.Earning) error
}
