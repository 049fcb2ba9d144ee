// Package offer defines the Catalog Store contract.
package offer

import (
	"context"

	"github.com/kingstore/api/pkg/dto"
)

// Repository is the Catalog Store. Get returns (nil, nil) when the offer id
// is unknown.
type Repository interface {
	Create(ctx context.Context, create *dto.OfferCreate) error
	Get(ctx context.Context, id string) (*dto.OfferRead, error)
	List(ctx context.Context) ([]*dto.OfferRead, error)
	Update(ctx context.Context, id string, update *dto.OfferUpdate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
