package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingstore/api/pkg/domain"
)

func TestNewGameOffer(t *testing.T) {
	t.Parallel()
	offer, err := domain.NewGameOffer("pubg-1", "PUBG", "60 شدة", 3500, "")
	require.NoError(t, err)
	assert.Equal(t, "pubg-1", offer.ID)
	assert.EqualValues(t, 3500, offer.Price)
}

func TestNewGameOffer_Validation(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name        string
		offerName   string
		description string
		price       int64
		want        error
	}{
		{"missing name", "", "60 شدة", 3500, domain.ErrOfferNameRequired},
		{"missing description", "PUBG", "", 3500, domain.ErrOfferDescriptionRequired},
		{"zero price", "PUBG", "60 شدة", 0, domain.ErrOfferPriceMustBePositive},
		{"negative price", "PUBG", "60 شدة", -100, domain.ErrOfferPriceMustBePositive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewGameOffer("id", tc.offerName, tc.description, tc.price, "")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
