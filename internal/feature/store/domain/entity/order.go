// Package entity defines the domain entities for the store feature.
package entity

import (
	"time"

	accountentity "petstore_backend/internal/feature/account/domain/entity"
	catalogentity "petstore_backend/internal/feature/catalog/domain/entity"
)

// OrderStatus is the fulfillment status of an order.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusApproved  OrderStatus = "approved"
	StatusDelivered OrderStatus = "delivered"
)

// Valid returns true if s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPlaced, StatusApproved, StatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
// The fulfillment path is strictly placed -> approved -> delivered.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPlaced:
		return next == StatusApproved
	case StatusApproved:
		return next == StatusDelivered
	}
	return false
}

// Order is a purchase of a pet by a user. Placing an order moves the pet to
// pending; delivery marks the order complete and the pet sold. Complete is
// true only once the status has reached delivered.
type Order struct {
	ID       uint                `gorm:"primaryKey"`
	UserID   uint                `gorm:"not null;index"`
	User     accountentity.User  `gorm:"constraint:OnDelete:CASCADE"`
	PetID    uint                `gorm:"not null;index"`
	Pet      catalogentity.Pet   `gorm:"constraint:OnDelete:CASCADE"`
	Quantity int                 `gorm:"not null"`
	ShipDate time.Time           `gorm:"not null"`
	Status   OrderStatus         `gorm:"type:varchar(16);not null"`
	Complete bool                `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
