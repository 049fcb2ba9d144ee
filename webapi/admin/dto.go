package admin

// BalanceInput is the request body for an admin balance write.
type BalanceInput struct {
	Balance *int64 `json:"balance" validate:"required,gte=0"`
}

// PriceInput is the request body for repricing a catalog offer.
type PriceInput struct {
	Price int64 `json:"price" validate:"required,gt=0"`
}
