package session

import "context"

// Repository defines the session record store contract.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Create inserts a new session record and returns its ID.
	Create(ctx context.Context, s *Session) (string, error)

	// Save persists a mutated session record.
	// Returns shared.ErrSessionNotFound if the record does not exist.
	Save(ctx context.Context, s *Session) error

	// FindActive returns the owner's in-progress session, or
	// shared.ErrNoActiveSession if there is none.
	FindActive(ctx context.Context, ownerID string) (*Session, error)

	// ListByOwner returns all of the owner's sessions ordered by
	// start time, most recent first. The result is a snapshot.
	ListByOwner(ctx context.Context, ownerID string) ([]*Session, error)
}
