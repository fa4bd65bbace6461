// Package usecase implements the business logic for the catalog feature.
package usecase

import "petstore_backend/internal/shared/apperr"

var (
	// ErrPetNotFound is returned when a pet cannot be found by ID.
	ErrPetNotFound = apperr.New(apperr.NotFound, "no pet found")

	// ErrPetNameTaken is returned when a pet with the same name already exists.
	ErrPetNameTaken = apperr.New(apperr.Conflict, "pet name already exists")

	// ErrPetNotAvailable is returned when deleting a pet whose status is not available.
	// Pets that are mid-order (pending) or sold must not be removed from the catalog.
	ErrPetNotAvailable = apperr.New(apperr.Conflict, "pet is not available")

	// ErrCategoryRequired is returned when creating a pet without a category name.
	ErrCategoryRequired = apperr.New(apperr.Validation, "category must be specified")

	// ErrNameRequired is returned when creating a pet without a name.
	ErrNameRequired = apperr.New(apperr.Validation, "name must be specified")

	// ErrStatusRequired is returned when the findByStatus query parameter is missing.
	ErrStatusRequired = apperr.New(apperr.Validation, "status must be specified")

	// ErrInvalidStatus is returned when a status value is not one of available/pending/sold.
	ErrInvalidStatus = apperr.New(apperr.Validation, "invalid pet status")

	// ErrNoImages is returned when an upload request carries no image files.
	ErrNoImages = apperr.New(apperr.Validation, "images must be provided")
)
