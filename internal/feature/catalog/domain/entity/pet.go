// Package entity defines the domain entities for the catalog feature.
package entity

import "time"

// PetStatus is the lifecycle status of a pet.
// Transitions happen through the order workflow (available -> pending -> sold)
// or through an explicit catalog update.
type PetStatus string

const (
	StatusAvailable PetStatus = "available"
	StatusPending   PetStatus = "pending"
	StatusSold      PetStatus = "sold"
)

// Valid returns true if s is one of the known pet statuses.
func (s PetStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

// Category groups pets. Categories are created lazily on first reference.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag labels pets. Tags are created lazily on first reference and linked
// to pets through the pet_tags join table.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pet is a catalog entry. Deleting the category cascades to its pets;
// deleting a pet cascades to its photos and tag links.
type Pet struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"uniqueIndex;size:255;not null"`
	CategoryID uint      `gorm:"not null"`
	Category   Category  `gorm:"constraint:OnDelete:CASCADE"`
	Status     PetStatus `gorm:"type:varchar(16);not null;index"`
	Tags       []Tag     `gorm:"many2many:pet_tags;constraint:OnDelete:CASCADE"`
	Photos     []Photo   `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Photo is an uploaded image attached to a pet.
type Photo struct {
	ID    uint   `gorm:"primaryKey"`
	URL   string `gorm:"size:512;not null"`
	PetID uint   `gorm:"not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
