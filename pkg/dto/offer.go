package dto

// OfferCreate represents the data needed to add a catalog offer.
type OfferCreate struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	ImageURL    string `json:"imageUrl"`
}

// OfferUpdate represents the offer fields that can change after creation.
type OfferUpdate struct {
	Price    *int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// OfferRead is a read-optimized view of a catalog offer.
type OfferRead struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
}
