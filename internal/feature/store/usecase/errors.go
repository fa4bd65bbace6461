// Package usecase implements the business logic for the store feature.
package usecase

import "petstore_backend/internal/shared/apperr"

var (
	// ErrOrderNotFound is returned when an order cannot be found by ID.
	ErrOrderNotFound = apperr.New(apperr.NotFound, "order not found")

	// ErrPetNotAvailable is returned when placing an order for a pet that is
	// missing, pending, or already sold. The conditional status update makes
	// no distinction: either the pet row matched with status available, or
	// the order cannot be placed.
	ErrPetNotAvailable = apperr.New(apperr.Conflict, "pet is not available")

	// ErrInvalidStatus is returned when a status value is not one of placed/approved/delivered.
	ErrInvalidStatus = apperr.New(apperr.Validation, "invalid order status")

	// ErrInvalidTransition is returned when a status update does not follow
	// the placed -> approved -> delivered path.
	ErrInvalidTransition = apperr.New(apperr.Conflict, "illegal order status transition")
)
