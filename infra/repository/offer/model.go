package offer

import "time"

// GameOffer is the gorm model behind the `game_offers` collection. Seeded
// offers keep their well-known string ids; admin-added ones get UUIDs.
type GameOffer struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string `gorm:"not null"`
	Price       int64  `gorm:"not null"`
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (GameOffer) TableName() string { return "game_offers" }
