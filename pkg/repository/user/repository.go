// Package user defines the Profile Store contract: the mapping of identity
// ids to user profiles in the document store.
package user

import (
	"context"

	"github.com/kingstore/api/pkg/dto"
)

// Repository is the Profile Store. Get returns (nil, nil) when no profile
// exists for the id, so callers can distinguish "absent" from a store error.
type Repository interface {
	Create(ctx context.Context, create *dto.UserCreate) error
	Get(ctx context.Context, id string) (*dto.UserRead, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)
	List(ctx context.Context) ([]*dto.UserRead, error)
	Update(ctx context.Context, id string, update *dto.UserUpdate) error
	Delete(ctx context.Context, id string) error
	CreateAdminRole(ctx context.Context, userID string) error
	HasAdminRole(ctx context.Context, userID string) (bool, error)
}
