package user

import "time"

// User is the gorm model behind the `users` collection. The primary key is
// the identity provider's account id.
type User struct {
	ID        string `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	Balance   int64  `gorm:"not null;default:0"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the collection name from the original store layout.
func (User) TableName() string { return "users" }

// AdminRole is the explicit role-assignment record written at registration
// for admin accounts.
type AdminRole struct {
	UserID    string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (AdminRole) TableName() string { return "roles_admin" }
