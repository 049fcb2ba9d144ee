package store

// PurchaseInput is the request body for buying a catalog offer.
type PurchaseInput struct {
	GameOfferID string `json:"gameOfferId" validate:"required"`
	PlayerID    string `json:"playerId" validate:"required"`
}

// ViewInput is the request body for explicit screen navigation.
type ViewInput struct {
	View string `json:"view" validate:"required,oneof=login register user_dashboard admin_dashboard settings"`
}
