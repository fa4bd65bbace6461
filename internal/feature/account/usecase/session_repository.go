package usecase

import "context"

// SessionRepository abstracts the refresh-session store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/session).
// The store holds the currently valid refresh token per user email; Set
// overwrites any previous entry, which is how rotation and revocation work.
type SessionRepository interface {
	// Set stores the refresh token for the given email, replacing any existing one.
	Set(ctx context.Context, email, refreshToken string) error

	// Get returns the stored refresh token for the given email.
	// Returns ErrSessionNotFound when no session exists.
	Get(ctx context.Context, email string) (string, error)

	// Del removes the session for the given email.
	Del(ctx context.Context, email string) error
}
