package domain

import (
	"errors"
	"strings"
)

// GameOffer is a purchasable catalog entry: a game name, a variant label
// (bundle size) and a price. The id is an opaque string that stays stable
// across edits; seeded offers keep their well-known ids ("pubg-1", ...).
type GameOffer struct {
	ID          string
	Name        string
	Description string
	Price       int64
	ImageURL    string
}

var (
	// ErrOfferNameRequired is returned when an offer has no game name.
	ErrOfferNameRequired = errors.New("offer name is required")
	// ErrOfferDescriptionRequired is returned when an offer has no variant label.
	ErrOfferDescriptionRequired = errors.New("offer description is required")
)

// NewGameOffer validates and builds a catalog offer. Price must be strictly
// positive; a zero-price offer would debit nothing and is always a mistake.
func NewGameOffer(id, name, description string, price int64, imageURL string) (*GameOffer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrOfferNameRequired
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrOfferDescriptionRequired
	}
	if price <= 0 {
		return nil, ErrOfferPriceMustBePositive
	}
	return &GameOffer{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}, nil
}
