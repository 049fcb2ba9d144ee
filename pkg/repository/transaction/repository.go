// Package transaction defines the Ledger Store contract: append-only
// purchase records, kept both per-user and in a flat global collection.
package transaction

import (
	"context"

	"github.com/kingstore/api/pkg/dto"
)

// Repository is the Ledger Store. The two Create methods are independent
// writes over separate collections; a purchase calls both with the same
// denormalized record and neither is rolled back if the other fails.
type Repository interface {
	CreateGlobal(ctx context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error)
	CreateForUser(ctx context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error)
	ListGlobal(ctx context.Context) ([]*dto.TransactionRead, error)
	ListForUser(ctx context.Context, userID string) ([]*dto.TransactionRead, error)
}
