// Package entity defines the domain entities for the account feature.
package entity

import "time"

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered user of the pet store.
// It contains authentication credentials and profile data.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// FirstName and LastName form the user's display name.
	FirstName string `gorm:"size:255;not null"`
	LastName  string `gorm:"size:255;not null"`

	// Age and Phone are profile attributes with no uniqueness constraints.
	Age   int    `gorm:"not null"`
	Phone string `gorm:"size:32;not null"`

	// Role controls authorization. One of RoleUser or RoleAdmin.
	Role string `gorm:"size:16;not null;default:user"`

	// Email is the user's login identity. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	Password string `gorm:"size:255;not null"`

	// Token is the most recently issued access token, persisted on login.
	Token string `gorm:"size:512"`

	// Addresses are the user's shipping addresses. Deleting the user
	// cascades to its addresses.
	Addresses []Address `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Address represents a shipping address owned by a user.
type Address struct {
	ID     uint   `gorm:"primaryKey"`
	Unit   string `gorm:"size:255;not null"`
	Road   string `gorm:"size:255;not null"`
	City   string `gorm:"size:255;not null"`
	UserID uint   `gorm:"not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
