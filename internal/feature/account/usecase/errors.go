// Package usecase implements the business logic for the account feature.
package usecase

import "petstore_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperr.New(apperr.NotFound, "user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = apperr.New(apperr.Conflict, "email already exists")

	// ErrInvalidCredentials is returned when login email or password is incorrect.
	ErrInvalidCredentials = apperr.New(apperr.Unauthorized, "invalid email or password")

	// ErrInvalidRefreshToken is returned when a refresh token is malformed,
	// expired, or does not match the stored session (revoked or rotated).
	ErrInvalidRefreshToken = apperr.New(apperr.Unauthorized, "invalid refresh token")

	// ErrSessionNotFound is returned when no refresh session exists for a user.
	ErrSessionNotFound = apperr.New(apperr.Unauthorized, "session not found")

	// ErrEmailChangeNotAllowed is returned when a self-update tries to change the email.
	ErrEmailChangeNotAllowed = apperr.New(apperr.Validation, "cannot change email")

	// ErrAddressNotFound is returned when an address does not exist or is not owned by the acting user.
	ErrAddressNotFound = apperr.New(apperr.NotFound, "address not found")
)
